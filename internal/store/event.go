package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global sequence shared by activity and LLM
// events so that both tables can be merged into one ordered timeline.
//
// The UPDATE ... RETURNING statement is atomic at the database level. Callers
// inside a transaction pass the transaction so the increment commits or
// rolls back with the event it numbers.
type sequenceCounter struct{}

func newSequenceCounter(ctx context.Context, drv dialect.ExecQuerier) (*sequenceCounter, error) {
	err := drv.Exec(ctx,
		`INSERT INTO global_sequence (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`,
		[]any{}, nil)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context, q dialect.ExecQuerier) (int64, error) {
	var rows entsql.Rows
	err := q.Query(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, &rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}

// ActivityRepo appends and reads progress events.
type ActivityRepo struct {
	c conn
}

var activityColumns = []string{"sequence", "created_at", "user_id", "kind", "journey_id", "topic_id", "detail"}

// Append stores e and fills in its sequence number. A zero timestamp is
// replaced with the current time.
func (r *ActivityRepo) Append(ctx context.Context, e *ActivityEvent) error {
	seq, err := r.c.seq.Next(ctx, r.c.q)
	if err != nil {
		return err
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Sequence = seq

	ins := r.c.builder().Insert("activity_events").
		Columns(activityColumns...).
		Values(seq, e.Timestamp.UTC(), e.UserID, e.Kind, e.JourneyID, e.TopicID, e.Detail)
	if _, err := r.c.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

// Query returns the user's events in sequence order. An empty userID matches
// every user.
func (r *ActivityRepo) Query(ctx context.Context, userID string, opts QueryOpts) ([]ActivityEvent, error) {
	b := r.c.builder()
	sel := b.Select(activityColumns...).From(b.Table("activity_events"))

	preds := sequencePredicates(opts)
	if userID != "" {
		preds = append(preds, entsql.EQ("user_id", userID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy("sequence")
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var out []ActivityEvent
	for rows.Next() {
		var e ActivityEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.UserID, &e.Kind, &e.JourneyID, &e.TopicID, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByKind returns how many events of each kind the user has.
func (r *ActivityRepo) CountByKind(ctx context.Context, userID string) (map[string]int, error) {
	b := r.c.builder()
	sel := b.Select("kind", entsql.As(entsql.Count("*"), "n")).
		From(b.Table("activity_events")).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("kind")

	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("count activity events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

func sequencePredicates(opts QueryOpts) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UTC()))
	}
	return preds
}
