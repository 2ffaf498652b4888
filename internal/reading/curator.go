package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/openmind/internal/llm"
)

// LLMCurator implements Curator using an LLM provider.
type LLMCurator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMCurator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMCurator {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &LLMCurator{provider: provider, config: cfg}
}

// Curate produces reading material for the topic.
func (c *LLMCurator) Curate(ctx context.Context, input Input) (*Material, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, errors.New("reading: topic is required")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeReading)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, c.config)),
		Schema:      MaterialSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < c.config.Attempts; attempt++ {
		m, err := c.curateOnce(ctx, req, input)
		if err == nil {
			return m, nil
		}
		lastErr = err

		var verr *llm.ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, lastErr
}

func (c *LLMCurator) curateOnce(ctx context.Context, req llm.Request, input Input) (*Material, error) {
	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reading curation failed: %w", err)
	}

	var m Material
	if err := llm.Decode(resp, &m); err != nil {
		return nil, fmt.Errorf("failed to parse reading material: %w", err)
	}
	if m.Articles == nil {
		m.Articles = []Article{}
	}

	for _, v := range c.config.Validators {
		if verr := v.Validate(&m, input); verr != nil {
			return nil, verr
		}
	}
	return &m, nil
}
