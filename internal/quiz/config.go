package quiz

// Config controls the behavior of the LLMBuilder.
type Config struct {
	Validators []Validator

	// Attempts bounds regeneration after a retryable validation failure.
	Attempts int

	// Questions is how many questions the model is asked for.
	Questions int

	// MaxMaterialChars truncates the reading material in the prompt.
	MaxMaterialChars int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
		},
		Attempts:         2,
		Questions:        3,
		MaxMaterialChars: 6000,
		MaxTokens:        1024,
		Temperature:      0.3,
	}
}
