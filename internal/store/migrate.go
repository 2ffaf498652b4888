package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

// columnTypes holds the dialect-specific spellings used in the DDL below.
type columnTypes struct {
	Time  string
	Float string
	Bool  string
}

var dialectTypes = map[string]columnTypes{
	dialect.SQLite:   {Time: "DATETIME", Float: "REAL", Bool: "BOOLEAN"},
	dialect.Postgres: {Time: "TIMESTAMPTZ", Float: "DOUBLE PRECISION", Bool: "BOOLEAN"},
}

// schema lists the tables in creation order. {{TIME}}, {{FLOAT}} and {{BOOL}}
// are replaced per dialect.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS journeys (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		interests TEXT NOT NULL,
		topic_ids TEXT NOT NULL,
		total_days INTEGER NOT NULL CHECK (total_days >= 1),
		started_at {{TIME}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS journeys_user_started ON journeys (user_id, started_at)`,
	`CREATE TABLE IF NOT EXISTS topics (
		id TEXT PRIMARY KEY,
		journey_id TEXT NOT NULL REFERENCES journeys (id) ON DELETE CASCADE,
		day INTEGER NOT NULL CHECK (day >= 1),
		title TEXT NOT NULL,
		reason TEXT NOT NULL,
		is_first_day {{BOOL}} NOT NULL,
		is_last_day {{BOOL}} NOT NULL,
		reading_material TEXT,
		quiz TEXT,
		quiz_score {{FLOAT}},
		created_at {{TIME}} NOT NULL,
		UNIQUE (journey_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		streak INTEGER NOT NULL DEFAULT 0 CHECK (streak >= 0),
		points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
		created_at {{TIME}} NOT NULL,
		updated_at {{TIME}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leaderboard_entries (
		journey_title TEXT NOT NULL,
		user_id TEXT NOT NULL,
		streak INTEGER NOT NULL DEFAULT 0,
		points INTEGER NOT NULL DEFAULT 0,
		updated_at {{TIME}} NOT NULL,
		PRIMARY KEY (journey_title, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS activity_events (
		sequence BIGINT PRIMARY KEY,
		created_at {{TIME}} NOT NULL,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		journey_id TEXT NOT NULL DEFAULT '',
		topic_id TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS activity_events_user ON activity_events (user_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		sequence BIGINT PRIMARY KEY,
		created_at {{TIME}} NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success {{BOOL}} NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`,
}

// migrate creates any missing tables. Statements are idempotent.
func migrate(ctx context.Context, drv dialect.ExecQuerier, name string) error {
	types, ok := dialectTypes[name]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", name)
	}
	r := strings.NewReplacer("{{TIME}}", types.Time, "{{FLOAT}}", types.Float, "{{BOOL}}", types.Bool)
	for _, stmt := range schema {
		if err := drv.Exec(ctx, r.Replace(stmt), []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
