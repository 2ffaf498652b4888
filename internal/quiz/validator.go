package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/openmind/internal/llm"
)

// Validator checks a generated quiz.
type Validator interface {
	Name() string
	Validate(q *Quiz, input Input) *llm.ValidationError
}

// StructuralValidator checks question text, answer counts and the correct
// answer index.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, _ Input) *llm.ValidationError {
	if q.Len() == 0 {
		return v.fail("quiz has no questions")
	}
	for i, question := range q.Questions {
		n := i + 1
		switch {
		case strings.TrimSpace(question.Question) == "":
			return v.fail(fmt.Sprintf("question %d: text is empty", n))
		case len(question.Answers) < 2:
			return v.fail(fmt.Sprintf("question %d: needs at least 2 answers, got %d", n, len(question.Answers)))
		case question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(question.Answers):
			return v.fail(fmt.Sprintf("question %d: correctAnswerIndex %d out of range", n, question.CorrectAnswerIndex))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *llm.ValidationError {
	return &llm.ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

// AnswerValidator rejects blank or duplicate answers, which make a
// question ambiguous.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answers" }

func (v *AnswerValidator) Validate(q *Quiz, _ Input) *llm.ValidationError {
	for i, question := range q.Questions {
		seen := make(map[string]bool, len(question.Answers))
		for _, a := range question.Answers {
			key := strings.ToLower(strings.TrimSpace(a))
			if key == "" {
				return v.fail(fmt.Sprintf("question %d: blank answer", i+1))
			}
			if seen[key] {
				return v.fail(fmt.Sprintf("question %d: duplicate answer %q", i+1, a))
			}
			seen[key] = true
		}
	}
	return nil
}

func (v *AnswerValidator) fail(msg string) *llm.ValidationError {
	return &llm.ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
