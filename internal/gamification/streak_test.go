package gamification

import (
	"fmt"
	"testing"
)

func TestNextStreakThreshold(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{14, 15},
		{19, 20},
		{20, 25},
		{24, 25},
		{25, 30},
	}

	for _, tt := range tests {
		if got := NextStreakThreshold(tt.current); got != tt.want {
			t.Errorf("NextStreakThreshold(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestMilestoneFor(t *testing.T) {
	tests := []struct {
		streak   int
		wantTier Tier
	}{
		{5, TierBronze},
		{10, TierSilver},
		{15, TierGold},
		{20, TierPlatinum},
		{35, TierPlatinum},
	}
	for _, tt := range tests {
		m := MilestoneFor(tt.streak)
		if m == nil {
			t.Fatalf("MilestoneFor(%d) = nil", tt.streak)
		}
		if m.Tier != tt.wantTier || m.Streak != tt.streak {
			t.Errorf("MilestoneFor(%d) = %+v", tt.streak, m)
		}
		if want := fmt.Sprintf("%d days completed!", tt.streak); m.Reason != want {
			t.Errorf("MilestoneFor(%d).Reason = %q, want %q", tt.streak, m.Reason, want)
		}
	}

	for _, s := range []int{0, 1, 4, 6, 11, 21} {
		if m := MilestoneFor(s); m != nil {
			t.Errorf("MilestoneFor(%d) = %+v, want nil", s, m)
		}
	}
}

func TestTierDisplayName(t *testing.T) {
	if TierGold.DisplayName() != "Gold" {
		t.Errorf("DisplayName = %q", TierGold.DisplayName())
	}
	if Tier("x").DisplayName() != "x" {
		t.Error("unknown tier should display raw value")
	}
}
