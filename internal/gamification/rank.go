package gamification

// Rank assigns 1-based dense ranks to items already sorted best first.
// Items with equal keys share a rank and the next distinct key gets the
// following rank.
func Rank[T any](items []T, key func(T) int) []int {
	ranks := make([]int, len(items))
	rank := 0
	for i, it := range items {
		if i == 0 || key(it) != key(items[i-1]) {
			rank++
		}
		ranks[i] = rank
	}
	return ranks
}
