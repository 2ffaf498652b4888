package topics

// MaxTotalDays caps how long a generated journey may be planned.
const MaxTotalDays = 90

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every decoded topic; the first failure
	// stops the pipeline.
	Validators []Validator

	// Attempts bounds regeneration after a retryable validation failure.
	Attempts int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&TitleValidator{},
		},
		Attempts:    2,
		MaxTokens:   512,
		Temperature: 0.7,
	}
}
