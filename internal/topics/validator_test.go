package topics

import (
	"strings"
	"testing"
)

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Topic)
		wantMsg string
	}{
		{"valid", func(*Topic) {}, ""},
		{"empty topic", func(tp *Topic) { tp.Title = "" }, "topic is empty"},
		{"long topic", func(tp *Topic) { tp.Title = strings.Repeat("a", 201) }, "topic exceeds 200 characters"},
		{"empty reason", func(tp *Topic) { tp.Reason = "" }, "reason is empty"},
		{"empty journey title", func(tp *Topic) { tp.JourneyTitle = " " }, "journeyTitle is empty"},
		{"zero days", func(tp *Topic) { tp.TotalDays = 0 }, "totalDays must be at least 1"},
		{"too many days", func(tp *Topic) { tp.TotalDays = MaxTotalDays + 1 }, "totalDays exceeds 90"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := firstDay()
			tt.mutate(&tp)
			verr := v.Validate(&tp, Input{})
			if tt.wantMsg == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil || verr.Message != tt.wantMsg {
				t.Fatalf("got %v, want %q", verr, tt.wantMsg)
			}
			if !verr.Retryable {
				t.Error("structural failures should be retryable")
			}
		})
	}
}

func TestTitleValidator(t *testing.T) {
	tests := []struct {
		title      string
		continuing bool
		wantErr    bool
	}{
		{"Cosmic Curiosities", false, false},
		{"Black Holes in 7 Days", false, true},
		{"A 30-day Tour of Rust", false, true},
		{"Two weeks of jazz", false, false},
		{"Learn SQL in 3 weeks", false, true},
		{"Black Holes in 7 Days", true, false},
	}

	v := &TitleValidator{}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			tp := firstDay()
			tp.JourneyTitle = tt.title
			in := Input{Interests: []string{"x"}}
			if tt.continuing {
				in.JourneyTitle = tt.title
			}
			if got := v.Validate(&tp, in) != nil; got != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, want %v", tt.title, got, tt.wantErr)
			}
		})
	}
}
