package gamification

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRank(t *testing.T) {
	type entry struct {
		name   string
		points int
	}
	entries := []entry{{"a", 50}, {"b", 40}, {"c", 40}, {"d", 10}}

	got := Rank(entries, func(e entry) int { return e.points })
	if diff := cmp.Diff([]int{1, 2, 2, 3}, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}

	if got := Rank([]entry{}, func(e entry) int { return e.points }); len(got) != 0 {
		t.Errorf("empty input gave %v", got)
	}
}
