package llm

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles requests with a token bucket shared by all
// callers of the provider.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
	every   time.Duration
}

// WithRateLimit wraps p with a limiter. A non-positive rate returns p as is.
func WithRateLimit(p Provider, cfg RateLimitConfig) Provider {
	if cfg.RequestsPerMinute <= 0 {
		return p
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	every := time.Duration(float64(time.Minute) / cfg.RequestsPerMinute)
	return &RateLimitedProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Every(every), burst),
		every:   every,
	}
}

func (p *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Wait fails early when the deadline is closer than the next token.
		return nil, &ErrRateLimit{RetryAfter: p.every, Err: errors.Join(errLocalLimit, err)}
	}
	return p.inner.Generate(ctx, req)
}

func (p *RateLimitedProvider) ModelID() string {
	return p.inner.ModelID()
}

var errLocalLimit = errors.New("local request budget exhausted")
