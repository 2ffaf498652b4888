package topics

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/openmind/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces the next topic. Retryable validation failures trigger
// a fresh generation up to the configured number of attempts.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Topic, error) {
	if len(input.Interests) == 0 && !input.Continuing() {
		return nil, errors.New("topics: interests are required for a new journey")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeTopic)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input)),
		Schema:      TopicSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < g.config.Attempts; attempt++ {
		t, err := g.generateOnce(ctx, req, input)
		if err == nil {
			return t, nil
		}
		lastErr = err

		var verr *llm.ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req llm.Request, input Input) (*Topic, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("topic generation failed: %w", err)
	}

	var t Topic
	if err := llm.Decode(resp, &t); err != nil {
		return nil, fmt.Errorf("failed to parse topic: %w", err)
	}
	normalize(&t, input)

	for _, v := range g.config.Validators {
		if verr := v.Validate(&t, input); verr != nil {
			return nil, verr
		}
	}
	return &t, nil
}

// normalize fixes fields the caller already knows the answer to.
func normalize(t *Topic, input Input) {
	t.IsFirstDay = !input.Continuing()
	if input.Continuing() {
		t.JourneyTitle = input.JourneyTitle
		if t.TotalDays < input.TotalDays {
			t.TotalDays = input.TotalDays
		}
	}
	if !input.Continuing() {
		t.IsLastDay = t.TotalDays == 1
	}
}
