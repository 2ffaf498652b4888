package gamification

import "fmt"

// BaseStreakThreshold is the first streak milestone.
const BaseStreakThreshold = 5

var fixedThresholds = []int{5, 10, 15, 20}

// NextStreakThreshold returns the next streak milestone above current.
func NextStreakThreshold(current int) int {
	for _, t := range fixedThresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

// IsMilestone reports whether streak is exactly a milestone.
func IsMilestone(streak int) bool {
	return streak >= BaseStreakThreshold && streak%5 == 0
}

// Tier grades a streak milestone.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	default:
		return string(t)
	}
}

// StreakTier returns the tier for a streak length.
func StreakTier(length int) Tier {
	switch {
	case length >= 20:
		return TierPlatinum
	case length >= 15:
		return TierGold
	case length >= 10:
		return TierSilver
	default:
		return TierBronze
	}
}

// Milestone is reached when a day advancement lands the streak on a
// threshold.
type Milestone struct {
	Streak int
	Tier   Tier
	Reason string
}

// MilestoneFor returns the milestone reached at streak, or nil.
func MilestoneFor(streak int) *Milestone {
	if !IsMilestone(streak) {
		return nil
	}
	return &Milestone{
		Streak: streak,
		Tier:   StreakTier(streak),
		Reason: fmt.Sprintf("%d days completed!", streak),
	}
}
