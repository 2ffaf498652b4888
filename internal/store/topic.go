package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// TopicRepo reads and writes the daily topics of journeys.
type TopicRepo struct {
	c conn
}

var topicColumns = []string{
	"id", "journey_id", "day", "title", "reason", "is_first_day", "is_last_day",
	"reading_material", "quiz", "quiz_score", "created_at",
}

// Create inserts a topic. The (journey, day) pair must be unused.
func (r *TopicRepo) Create(ctx context.Context, t *Topic) error {
	var score any
	if t.QuizScore != nil {
		score = *t.QuizScore
	}
	ins := r.c.builder().Insert("topics").
		Columns(topicColumns...).
		Values(t.ID, t.JourneyID, t.Day, t.Title, t.Reason, t.IsFirstDay, t.IsLastDay,
			nullableJSON(t.ReadingMaterial), nullableJSON(t.Quiz), score, t.CreatedAt.UTC())
	if _, err := r.c.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert topic: %w", err)
	}
	return nil
}

// Get returns the topic with the given id, or ErrNotFound.
func (r *TopicRepo) Get(ctx context.Context, id string) (*Topic, error) {
	b := r.c.builder()
	sel := b.Select(topicColumns...).
		From(b.Table("topics")).
		Where(entsql.EQ("id", id))

	ts, err := r.list(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("topic %s: %w", id, ErrNotFound)
	}
	return &ts[0], nil
}

// Latest returns the highest-day topic of the journey, or nil if the
// journey has no topics.
func (r *TopicRepo) Latest(ctx context.Context, journeyID string) (*Topic, error) {
	b := r.c.builder()
	sel := b.Select(topicColumns...).
		From(b.Table("topics")).
		Where(entsql.EQ("journey_id", journeyID)).
		OrderBy(entsql.Desc("day")).
		Limit(1)

	ts, err := r.list(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, nil
	}
	return &ts[0], nil
}

// ListByJourney returns the journey's topics ordered by day.
func (r *TopicRepo) ListByJourney(ctx context.Context, journeyID string) ([]Topic, error) {
	b := r.c.builder()
	sel := b.Select(topicColumns...).
		From(b.Table("topics")).
		Where(entsql.EQ("journey_id", journeyID)).
		OrderBy("day")
	return r.list(ctx, sel)
}

// SetQuizScore merges a quiz score onto an existing topic. No other column
// is touched.
func (r *TopicRepo) SetQuizScore(ctx context.Context, id string, score float64) error {
	upd := r.c.builder().Update("topics").
		Set("quiz_score", score).
		Where(entsql.EQ("id", id))
	res, err := r.c.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update quiz score: %w", err)
	}
	return expectAffected(res, "topic "+id)
}

func (r *TopicRepo) list(ctx context.Context, sel *entsql.Selector) ([]Topic, error) {
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var out []Topic
	for rows.Next() {
		var (
			t              Topic
			material, quiz sql.NullString
			score          sql.NullFloat64
		)
		err := rows.Scan(&t.ID, &t.JourneyID, &t.Day, &t.Title, &t.Reason, &t.IsFirstDay, &t.IsLastDay,
			&material, &quiz, &score, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		if material.Valid {
			t.ReadingMaterial = json.RawMessage(material.String)
		}
		if quiz.Valid {
			t.Quiz = json.RawMessage(quiz.String)
		}
		if score.Valid {
			s := score.Float64
			t.QuizScore = &s
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
