package quiz

import "github.com/abhisek/openmind/internal/llm"

// QuizSchema defines the JSON schema for micro-quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "daily-quiz",
	Description: "A multiple-choice micro-quiz testing understanding of the day's reading",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type":        "array",
				"minItems":    1,
				"description": "The quiz questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"description": "3-5 possible answers, exactly one of them correct",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "0-based index of the correct answer in answers",
						},
					},
					"required":             []any{"question", "answers", "correctAnswerIndex"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quiz"},
		"additionalProperties": false,
	},
}
