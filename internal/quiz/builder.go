package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/openmind/internal/llm"
)

// LLMBuilder implements Builder using an LLM provider.
type LLMBuilder struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMBuilder with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMBuilder {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &LLMBuilder{provider: provider, config: cfg}
}

// Build produces a quiz from the topic and its reading material.
func (b *LLMBuilder) Build(ctx context.Context, input Input) (*Quiz, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, errors.New("quiz: topic is required")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, b.config)),
		Schema:      QuizSchema,
		MaxTokens:   b.config.MaxTokens,
		Temperature: b.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < b.config.Attempts; attempt++ {
		q, err := b.buildOnce(ctx, req, input)
		if err == nil {
			return q, nil
		}
		lastErr = err

		var verr *llm.ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, lastErr
}

func (b *LLMBuilder) buildOnce(ctx context.Context, req llm.Request, input Input) (*Quiz, error) {
	resp, err := b.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var q Quiz
	if err := llm.Decode(resp, &q); err != nil {
		return nil, fmt.Errorf("failed to parse quiz: %w", err)
	}

	for _, v := range b.config.Validators {
		if verr := v.Validate(&q, input); verr != nil {
			return nil, verr
		}
	}
	return &q, nil
}
