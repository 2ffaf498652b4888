package topics

import "context"

// Input is the context the next topic is generated from. A non-empty
// JourneyTitle means the journey already exists and the generator is asked
// for the following day.
type Input struct {
	Interests    []string
	JourneyTitle string
	TotalDays    int
}

// Continuing reports whether the input extends an existing journey.
func (in Input) Continuing() bool { return in.JourneyTitle != "" }

// Topic is one generated day of a journey.
type Topic struct {
	Title        string `json:"topic"`
	Reason       string `json:"reason"`
	JourneyTitle string `json:"journeyTitle"`
	IsFirstDay   bool   `json:"isFirstDay"`
	IsLastDay    bool   `json:"isLastDay"`
	TotalDays    int    `json:"totalDays"`
}

// Generator produces the next topic of a learning journey.
type Generator interface {
	Generate(ctx context.Context, input Input) (*Topic, error)
}
