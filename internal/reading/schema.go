package reading

import "github.com/abhisek/openmind/internal/llm"

// MaterialSchema defines the JSON schema for reading curation.
var MaterialSchema = &llm.Schema{
	Name:        "reading-material",
	Description: "Curated articles for a learning topic, each explained through the learner's interests",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"articles": map[string]any{
				"type":        "array",
				"description": "Relevant articles and resources for the topic",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Title of the article or resource",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "The core concept of the resource explained with an analogy drawn from the user's interests",
						},
						"link": map[string]any{
							"type":        "string",
							"description": "Absolute http(s) URL of the resource",
						},
					},
					"required":             []any{"title", "explanation", "link"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"articles"},
		"additionalProperties": false,
	},
}
