package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// JourneyRepo reads and writes journeys.
type JourneyRepo struct {
	c conn
}

var journeyColumns = []string{"id", "user_id", "title", "interests", "topic_ids", "total_days", "started_at"}

// Create inserts a new journey.
func (r *JourneyRepo) Create(ctx context.Context, j *Journey) error {
	interests, err := encodeStrings(j.Interests)
	if err != nil {
		return err
	}
	topicIDs, err := encodeStrings(j.TopicIDs)
	if err != nil {
		return err
	}

	ins := r.c.builder().Insert("journeys").
		Columns(journeyColumns...).
		Values(j.ID, j.UserID, j.Title, interests, topicIDs, j.TotalDays, j.StartedAt.UTC())
	if _, err := r.c.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert journey: %w", err)
	}
	return nil
}

// Get returns the journey with the given id, or ErrNotFound.
func (r *JourneyRepo) Get(ctx context.Context, id string) (*Journey, error) {
	b := r.c.builder()
	sel := b.Select(journeyColumns...).
		From(b.Table("journeys")).
		Where(entsql.EQ("id", id))

	js, err := r.list(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(js) == 0 {
		return nil, fmt.Errorf("journey %s: %w", id, ErrNotFound)
	}
	return &js[0], nil
}

// Latest returns the user's most recently started journey, or nil if the
// user has none.
func (r *JourneyRepo) Latest(ctx context.Context, userID string) (*Journey, error) {
	b := r.c.builder()
	sel := b.Select(journeyColumns...).
		From(b.Table("journeys")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("started_at")).
		Limit(1)

	js, err := r.list(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(js) == 0 {
		return nil, nil
	}
	return &js[0], nil
}

// ListByUser returns the user's journeys, newest first.
func (r *JourneyRepo) ListByUser(ctx context.Context, userID string) ([]Journey, error) {
	b := r.c.builder()
	sel := b.Select(journeyColumns...).
		From(b.Table("journeys")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("started_at"))
	return r.list(ctx, sel)
}

// UpdateProgress replaces the ordered topic ids and the total day count.
// Title, owner and start time are never changed.
func (r *JourneyRepo) UpdateProgress(ctx context.Context, id string, topicIDs []string, totalDays int) error {
	encoded, err := encodeStrings(topicIDs)
	if err != nil {
		return err
	}
	upd := r.c.builder().Update("journeys").
		Set("topic_ids", encoded).
		Set("total_days", totalDays).
		Where(entsql.EQ("id", id))
	res, err := r.c.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update journey: %w", err)
	}
	return expectAffected(res, "journey "+id)
}

func (r *JourneyRepo) list(ctx context.Context, sel *entsql.Selector) ([]Journey, error) {
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query journeys: %w", err)
	}
	defer rows.Close()

	var out []Journey
	for rows.Next() {
		var (
			j                   Journey
			interests, topicIDs string
		)
		if err := rows.Scan(&j.ID, &j.UserID, &j.Title, &interests, &topicIDs, &j.TotalDays, &j.StartedAt); err != nil {
			return nil, fmt.Errorf("scan journey: %w", err)
		}
		if j.Interests, err = decodeStrings(interests); err != nil {
			return nil, fmt.Errorf("journey %s interests: %w", j.ID, err)
		}
		if j.TopicIDs, err = decodeStrings(topicIDs); err != nil {
			return nil, fmt.Errorf("journey %s topic ids: %w", j.ID, err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	var v []string
	if s == "" {
		return v, nil
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
