package quiz

import "context"

// Input is what a quiz is built from.
type Input struct {
	Topic           string
	ReadingMaterial string
}

// Question is one multiple-choice question.
type Question struct {
	Question           string   `json:"question"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Quiz is the micro-quiz for one topic.
type Quiz struct {
	Questions []Question `json:"quiz"`
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Questions)
}

// Builder produces a quiz for a topic.
type Builder interface {
	Build(ctx context.Context, input Input) (*Quiz, error)
}
