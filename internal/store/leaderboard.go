package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LeaderboardRepo maintains the per-journey-title leaderboard. Entries are
// only written inside the transactions that change the underlying progress,
// so the board never drifts from profiles and journeys.
type LeaderboardRepo struct {
	c conn
}

// Ensure creates a zeroed entry for (title, userID) if none exists.
func (r *LeaderboardRepo) Ensure(ctx context.Context, title, userID string, now time.Time) error {
	b := r.c.builder()
	sel := b.Select(entsql.Count("*")).
		From(b.Table("leaderboard_entries")).
		Where(entsql.And(
			entsql.EQ("journey_title", title),
			entsql.EQ("user_id", userID),
		))

	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return fmt.Errorf("query leaderboard entry: %w", err)
	}
	n, err := scanCount(rows)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	ins := b.Insert("leaderboard_entries").
		Columns("journey_title", "user_id", "streak", "points", "updated_at").
		Values(title, userID, 0, 0, now.UTC())
	if _, err := r.c.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert leaderboard entry: %w", err)
	}
	return nil
}

// Add applies streak and points deltas to the entry, creating it if needed.
// Points never drop below zero, matching ProfileRepo.AddProgress.
func (r *LeaderboardRepo) Add(ctx context.Context, title, userID string, streak, points int, now time.Time) error {
	if err := r.Ensure(ctx, title, userID, now); err != nil {
		return err
	}
	if points < 0 {
		cur, err := r.points(ctx, title, userID)
		if err != nil {
			return err
		}
		points = max(points, -cur)
	}
	upd := r.c.builder().Update("leaderboard_entries").
		Add("streak", streak).
		Add("points", points).
		Set("updated_at", now.UTC()).
		Where(entsql.And(
			entsql.EQ("journey_title", title),
			entsql.EQ("user_id", userID),
		))
	if _, err := r.c.exec(ctx, upd); err != nil {
		return fmt.Errorf("update leaderboard entry: %w", err)
	}
	return nil
}

// TopForJourney returns up to limit entries for the journey title ordered by
// streak, highest first. Names come from the users' profiles.
func (r *LeaderboardRepo) TopForJourney(ctx context.Context, title string, limit int) ([]LeaderboardEntry, error) {
	b := r.c.builder()
	e := b.Table("leaderboard_entries").As("e")
	p := b.Table("profiles").As("p")
	sel := b.Select(
		e.C("journey_title"), e.C("user_id"), p.C("name"),
		e.C("streak"), e.C("points"), e.C("updated_at"),
	).
		From(e).
		LeftJoin(p).On(e.C("user_id"), p.C("user_id")).
		Where(entsql.EQ(e.C("journey_title"), title)).
		OrderBy(entsql.Desc(e.C("streak")), entsql.Desc(e.C("points")), e.C("user_id"))
	if limit > 0 {
		sel.Limit(limit)
	}

	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var (
			le   LeaderboardEntry
			name sql.NullString
		)
		if err := rows.Scan(&le.JourneyTitle, &le.UserID, &name, &le.Streak, &le.Points, &le.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		le.Name = name.String
		out = append(out, le)
	}
	return out, rows.Err()
}

func (r *LeaderboardRepo) points(ctx context.Context, title, userID string) (int, error) {
	b := r.c.builder()
	sel := b.Select("points").
		From(b.Table("leaderboard_entries")).
		Where(entsql.And(
			entsql.EQ("journey_title", title),
			entsql.EQ("user_id", userID),
		))
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return 0, fmt.Errorf("query leaderboard points: %w", err)
	}
	return scanCount(rows)
}

func scanCount(rows *entsql.Rows) (int, error) {
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}
