package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMEventRepo records and aggregates LLM request events.
type LLMEventRepo struct {
	c conn
}

var llmEventColumns = []string{
	"sequence", "created_at", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

// AppendLLMRequest records an LLM API call event.
func (r *LLMEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.c.seq.Next(ctx, r.c.q)
	if err != nil {
		return err
	}
	ins := r.c.builder().Insert("llm_request_events").
		Columns(llmEventColumns...).
		Values(seq, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody)
	if _, err := r.c.exec(ctx, ins); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first.
func (r *LLMEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	b := r.c.builder()
	sel := b.Select(llmEventColumns...).From(b.Table("llm_request_events"))
	if preds := sequencePredicates(opts); len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.list(ctx, sel)
}

// GetLLMEvent returns the event with the given sequence number, or nil.
func (r *LLMEventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	b := r.c.builder()
	sel := b.Select(llmEventColumns...).
		From(b.Table("llm_request_events")).
		Where(entsql.EQ("sequence", id))
	events, err := r.list(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// LLMUsageByPurpose aggregates token usage per purpose label.
func (r *LLMEventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "purpose", func(u *LLMUsage, key string) { u.Purpose = key })
}

// LLMUsageByModel aggregates token usage per model.
func (r *LLMEventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "model", func(u *LLMUsage, key string) { u.Model = key })
}

func (r *LLMEventRepo) usageBy(ctx context.Context, column string, setKey func(*LLMUsage, string)) ([]LLMUsage, error) {
	b := r.c.builder()
	sel := b.Select(
		column,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("SUM(CASE WHEN success THEN 0 ELSE 1 END)", "failures"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(b.Table("llm_request_events")).
		GroupBy(column).
		OrderBy(column)

	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u       LLMUsage
			key     string
			latency sql.NullFloat64
		)
		if err := rows.Scan(&key, &u.Calls, &u.Failures, &u.InputTokens, &u.OutputTokens, &latency); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		setKey(&u, key)
		u.AvgLatencyMs = int64(latency.Float64)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *LLMEventRepo) list(ctx context.Context, sel *entsql.Selector) ([]LLMRequestEvent, error) {
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
			&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
