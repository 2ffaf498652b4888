package quiz

import (
	"errors"
	"fmt"
)

// Unanswered marks a question with no selection yet.
const Unanswered = -1

// ErrIncompleteAnswers is returned when a selection is missing or out of
// range, or the number of selections does not match the quiz.
var ErrIncompleteAnswers = errors.New("every question must be answered")

// NewSelections returns an answer set with every question unanswered.
func NewSelections(q *Quiz) []int {
	sel := make([]int, q.Len())
	for i := range sel {
		sel[i] = Unanswered
	}
	return sel
}

// Complete reports whether selections answers every question of q with an
// in-range index.
func Complete(q *Quiz, selections []int) bool {
	return checkSelections(q, selections) == nil
}

func checkSelections(q *Quiz, selections []int) error {
	if q.Len() == 0 {
		return fmt.Errorf("%w: quiz has no questions", ErrIncompleteAnswers)
	}
	if len(selections) != q.Len() {
		return fmt.Errorf("%w: got %d selections for %d questions", ErrIncompleteAnswers, len(selections), q.Len())
	}
	for i, s := range selections {
		if s < 0 || s >= len(q.Questions[i].Answers) {
			return fmt.Errorf("%w: question %d has selection %d", ErrIncompleteAnswers, i+1, s)
		}
	}
	return nil
}

// Result is the outcome of grading one submission.
type Result struct {
	Correct int
	Total   int
	Score   float64 // 100 * Correct / Total
}

// Score grades selections against q.
func Score(q *Quiz, selections []int) (Result, error) {
	if err := checkSelections(q, selections); err != nil {
		return Result{}, err
	}
	correct := 0
	for i, s := range selections {
		if s == q.Questions[i].CorrectAnswerIndex {
			correct++
		}
	}
	total := q.Len()
	return Result{
		Correct: correct,
		Total:   total,
		Score:   100 * float64(correct) / float64(total),
	}, nil
}

// CorrectFor converts a stored percentage back to a correct-answer count
// for a quiz with total questions.
func CorrectFor(score float64, total int) int {
	if total <= 0 {
		return 0
	}
	n := int(score*float64(total)/100 + 0.5)
	return min(max(n, 0), total)
}
