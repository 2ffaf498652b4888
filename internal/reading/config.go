package reading

// Config controls the behavior of the LLMCurator.
type Config struct {
	// Validators run in order on every decoded article set.
	Validators []Validator

	// Attempts bounds regeneration after a retryable validation failure.
	Attempts int

	// Articles is how many resources the model is asked for.
	Articles int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&LinkValidator{},
		},
		Attempts:    2,
		Articles:    3,
		MaxTokens:   2048,
		Temperature: 0.5,
	}
}
