package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/openmind/internal/llm"
)

func threeQuestions() Quiz {
	return Quiz{Questions: []Question{
		{Question: "What can escape an event horizon?", Answers: []string{"Light", "Nothing", "Neutrinos"}, CorrectAnswerIndex: 1},
		{Question: "Who predicted black hole radiation?", Answers: []string{"Hawking", "Einstein", "Newton"}, CorrectAnswerIndex: 0},
		{Question: "Time near a black hole runs...", Answers: []string{"Faster", "Slower", "Backwards"}, CorrectAnswerIndex: 1},
	}}
}

func TestBuild(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(threeQuestions()))
	b := New(mock, DefaultConfig())

	q, err := b.Build(context.Background(), Input{Topic: "Event Horizons", ReadingMaterial: "A\nB\n\nC\nD"})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 1, q.Questions[0].CorrectAnswerIndex)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "Topic: Event Horizons")
	assert.Contains(t, msg, "Reading material:\nA\nB\n\nC\nD")
	assert.Contains(t, msg, "Generate 3 multiple-choice questions")
}

func TestBuild_NoMaterial(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(threeQuestions()))
	_, err := New(mock, DefaultConfig()).Build(context.Background(), Input{Topic: "Knots"})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "No reading material was found")
}

func TestBuild_TruncatesMaterial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxMaterialChars = 10
	msg := buildUserMessage(Input{Topic: "x", ReadingMaterial: strings.Repeat("a", 50)}, cfg)
	assert.Contains(t, msg, strings.Repeat("a", 10)+"...")
	assert.NotContains(t, msg, strings.Repeat("a", 11))
}

func TestBuild_RegeneratesOnOutOfRangeIndex(t *testing.T) {
	bad := threeQuestions()
	bad.Questions[2].CorrectAnswerIndex = 7
	mock := llm.NewMockProvider(llm.MockJSON(bad), llm.MockJSON(threeQuestions()))

	q, err := New(mock, DefaultConfig()).Build(context.Background(), Input{Topic: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Questions[2].CorrectAnswerIndex)
	assert.Equal(t, 2, mock.CallCount())
}

func TestBuild_SchemaRejectsEmptyQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(Quiz{Questions: []Question{}}))
	_, err := New(mock, DefaultConfig()).Build(context.Background(), Input{Topic: "x"})
	var inv *llm.ErrInvalidResponse
	require.True(t, errors.As(err, &inv), "got %v", err)
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		question  Question
		wantErr   bool
	}{
		{"ok", &StructuralValidator{}, threeQuestions().Questions[0], false},
		{"blank text", &StructuralValidator{}, Question{Question: " ", Answers: []string{"a", "b"}}, true},
		{"one answer", &StructuralValidator{}, Question{Question: "q", Answers: []string{"a"}}, true},
		{"negative index", &StructuralValidator{}, Question{Question: "q", Answers: []string{"a", "b"}, CorrectAnswerIndex: -1}, true},
		{"index past end", &StructuralValidator{}, Question{Question: "q", Answers: []string{"a", "b"}, CorrectAnswerIndex: 2}, true},
		{"distinct answers", &AnswerValidator{}, Question{Answers: []string{"Yes", "No"}}, false},
		{"duplicate answers", &AnswerValidator{}, Question{Answers: []string{"Paris", " paris"}}, true},
		{"blank answer", &AnswerValidator{}, Question{Answers: []string{"Paris", ""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Quiz{Questions: []Question{tt.question}}
			if got := tt.validator.Validate(q, Input{}) != nil; got != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", got, tt.wantErr)
			}
		})
	}
}
