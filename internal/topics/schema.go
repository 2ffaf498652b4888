package topics

import "github.com/abhisek/openmind/internal/llm"

// TopicSchema defines the JSON schema for daily topic generation.
var TopicSchema = &llm.Schema{
	Name:        "daily-topic",
	Description: "The next daily topic of a personalized learning journey",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "A relevant and engaging topic that can be learned in a single day",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "Why this topic was selected, based on the user's interests (1-3 sentences)",
			},
			"journeyTitle": map[string]any{
				"type":        "string",
				"description": "Title of the overall learning journey, without any duration",
			},
			"isFirstDay": map[string]any{
				"type":        "boolean",
				"description": "Whether this is the first topic of the journey",
			},
			"isLastDay": map[string]any{
				"type":        "boolean",
				"description": "Whether this topic concludes the journey",
			},
			"totalDays": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"description": "Total number of days planned for the journey",
			},
		},
		"required":             []any{"topic", "reason", "journeyTitle", "isFirstDay", "isLastDay", "totalDays"},
		"additionalProperties": false,
	},
}
