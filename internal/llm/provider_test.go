package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/openmind/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(map[string]int{"b": 2}),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: UserMessage("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` || resp1.Usage.InputTokens != 10 {
		t.Fatalf("first response = %s %+v", resp1.Content, resp1.Usage)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: UserMessage("second")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
	if mock.CallCount() != 2 || mock.Calls[1].Messages[0].Content != "second" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}

	mock.Fallback = func(req Request) MockResponse {
		return MockJSON(map[string]string{"echo": req.System})
	}
	resp, err := mock.Generate(context.Background(), Request{System: "hi"})
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if string(resp.Content) != `{"echo":"hi"}` {
		t.Fatalf("fallback content = %s", resp.Content)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"name":"x"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

type recorderFunc func(context.Context, store.LLMRequestEventData) error

func (f recorderFunc) AppendLLMRequest(ctx context.Context, d store.LLMRequestEventData) error {
	return f(ctx, d)
}

func TestLogging_RecordsEvents(t *testing.T) {
	var got []store.LLMRequestEventData
	rec := recorderFunc(func(_ context.Context, d store.LLMRequestEventData) error {
		got = append(got, d)
		return nil
	})
	core, logs := observer.New(zap.DebugLevel)

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, "mock", rec, zap.New(core))

	ctx := WithPurpose(context.Background(), PurposeQuiz)
	req := Request{System: "sys", Messages: UserMessage("hello"), Schema: &Schema{Name: "s", Definition: map[string]any{"type": "object"}}}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error on second call")
	}

	if len(got) != 2 {
		t.Fatalf("recorded %d events, want 2", len(got))
	}
	first := got[0]
	if first.Purpose != PurposeQuiz || !first.Success || first.InputTokens != 7 || first.Provider != "mock" {
		t.Errorf("first event = %+v", first)
	}
	if !strings.Contains(first.RequestBody, "[system]\nsys") || !strings.Contains(first.RequestBody, "[schema: s]") {
		t.Errorf("request body = %q", first.RequestBody)
	}
	if got[1].Success || got[1].ErrorMessage != "boom" {
		t.Errorf("second event = %+v", got[1])
	}
	if n := logs.FilterMessage("llm request failed").Len(); n != 1 {
		t.Errorf("warn logs = %d, want 1", n)
	}
}

func TestLogging_RecorderFailureDoesNotFailRequest(t *testing.T) {
	rec := recorderFunc(func(context.Context, store.LLMRequestEventData) error { return errors.New("db gone") })
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", rec, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		mock := NewMockProvider()
		if p := WithRateLimit(mock, RateLimitConfig{}); p != Provider(mock) {
			t.Fatal("expected provider to be returned unwrapped")
		}
	})

	t.Run("deadline before next token", func(t *testing.T) {
		mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}, MockResponse{Content: json.RawMessage(`{}`)})
		p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 1, Burst: 1})

		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("first: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := p.Generate(ctx, Request{})
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %v", err)
		}
		if mock.CallCount() != 1 {
			t.Fatalf("inner called %d times, want 1", mock.CallCount())
		}
	})
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("mock provider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	cfg.Provider = "nope"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	cfg.Provider = ProviderOpenRouter
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for missing openrouter key")
	}
}

func TestPricing(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("unknown-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
