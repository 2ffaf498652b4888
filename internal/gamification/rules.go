// Package gamification holds the streak and points accounting rules.
//
// Streak counts successful day advancements and nothing else. Points come
// from two sources: a flat AdvancePoints per advancement, and
// PointsPerCorrect for every correct answer of the latest quiz submission
// on a topic. Resubmitting a quiz replaces its contribution rather than
// adding to it.
package gamification

const (
	// AdvancePoints is awarded for each successful day advancement.
	AdvancePoints = 10

	// PointsPerCorrect is awarded per correct quiz answer.
	PointsPerCorrect = 5

	// CelebrationThreshold is the quiz score (0-100) at or above which a
	// submission is celebrated.
	CelebrationThreshold = 80.0
)

// QuizPoints returns the points a submission with correct answers is worth.
func QuizPoints(correct int) int {
	if correct < 0 {
		return 0
	}
	return correct * PointsPerCorrect
}

// QuizPointsDelta returns the points change when a topic's submission moves
// from prevCorrect to newCorrect correct answers. prevCorrect is 0 for a
// first submission.
func QuizPointsDelta(prevCorrect, newCorrect int) int {
	return QuizPoints(newCorrect) - QuizPoints(prevCorrect)
}

// Celebrate reports whether a quiz score earns a celebration.
func Celebrate(score float64) bool {
	return score >= CelebrationThreshold
}
