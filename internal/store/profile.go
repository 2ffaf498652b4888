package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ProfileRepo manages per-user gamification counters.
type ProfileRepo struct {
	c conn
}

var profileColumns = []string{"user_id", "name", "streak", "points", "created_at", "updated_at"}

// Ensure returns the user's profile, creating an empty one first if needed.
func (r *ProfileRepo) Ensure(ctx context.Context, userID string, now time.Time) (*Profile, error) {
	p, err := r.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	p = &Profile{UserID: userID, CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
	ins := r.c.builder().Insert("profiles").
		Columns(profileColumns...).
		Values(p.UserID, p.Name, p.Streak, p.Points, p.CreatedAt, p.UpdatedAt)
	if _, err := r.c.exec(ctx, ins); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

// Get returns the user's profile, or ErrNotFound.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	b := r.c.builder()
	sel := b.Select(profileColumns...).
		From(b.Table("profiles")).
		Where(entsql.EQ("user_id", userID))

	ps, err := r.list(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return &ps[0], nil
}

// SetName updates the display name.
func (r *ProfileRepo) SetName(ctx context.Context, userID, name string, now time.Time) error {
	upd := r.c.builder().Update("profiles").
		Set("name", name).
		Set("updated_at", now.UTC()).
		Where(entsql.EQ("user_id", userID))
	res, err := r.c.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update profile name: %w", err)
	}
	return expectAffected(res, "profile "+userID)
}

// AddProgress adds the deltas to the streak and points counters in a single
// statement. Points never drop below zero.
func (r *ProfileRepo) AddProgress(ctx context.Context, userID string, streak, points int, now time.Time) error {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if p.Points+points < 0 {
		points = -p.Points
	}
	upd := r.c.builder().Update("profiles").
		Add("streak", streak).
		Add("points", points).
		Set("updated_at", now.UTC()).
		Where(entsql.EQ("user_id", userID))
	if _, err := r.c.exec(ctx, upd); err != nil {
		return fmt.Errorf("update profile progress: %w", err)
	}
	return nil
}

// Top returns up to limit profiles ordered by points, highest first.
func (r *ProfileRepo) Top(ctx context.Context, limit int) ([]Profile, error) {
	b := r.c.builder()
	sel := b.Select(profileColumns...).
		From(b.Table("profiles")).
		OrderBy(entsql.Desc("points"), entsql.Desc("streak"), "user_id")
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.list(ctx, sel)
}

func (r *ProfileRepo) list(ctx context.Context, sel *entsql.Selector) ([]Profile, error) {
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.UserID, &p.Name, &p.Streak, &p.Points, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
