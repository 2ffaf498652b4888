package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration and wraps it with the
// standard middleware: caller → timeout → retry → rate limit → logging → base.
// recorder may be nil.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, recorder, logger), nil
}

// Wrap applies the standard middleware stack to an existing provider.
func Wrap(base Provider, cfg Config, recorder EventRecorder, logger *zap.Logger) Provider {
	logged := WithLogging(base, cfg.Provider, recorder, logger)
	limited := WithRateLimit(logged, cfg.RateLimit)
	return WithTimeout(WithRetry(limited, cfg.Retry, logger), cfg.Timeout)
}
