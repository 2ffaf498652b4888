package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// PostgreSQL driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store owns the database handle and hands out repositories bound to it.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a Store backed by the SQLite database at dsn.
func Open(dsn string) (*Store, error) {
	return OpenDriver(DriverSQLite, dsn)
}

// OpenDriver creates a Store for the named driver ("sqlite" or "postgres"),
// applies connection settings and runs migrations.
func OpenDriver(driver, dsn string) (*Store, error) {
	var (
		sqlDriver   string
		dialectName string
	)
	switch driver {
	case DriverSQLite, "":
		sqlDriver, dialectName = "sqlite", dialect.SQLite
	case DriverPostgres, "pgx":
		sqlDriver, dialectName = "pgx", dialect.Postgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialectName == dialect.SQLite {
		// One connection keeps pragmas in effect and serializes writers.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	drv := entsql.OpenDB(dialectName, db)
	ctx := context.Background()

	if err := migrate(ctx, drv, dialectName); err != nil {
		drv.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, drv)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect name of the store.
func (s *Store) Dialect() string {
	return s.drv.Dialect()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

func (s *Store) conn() conn {
	return conn{q: s.drv, dialect: s.drv.Dialect(), seq: s.seq}
}

// Journeys returns the journey repository.
func (s *Store) Journeys() *JourneyRepo { return &JourneyRepo{s.conn()} }

// Topics returns the topic repository.
func (s *Store) Topics() *TopicRepo { return &TopicRepo{s.conn()} }

// Profiles returns the profile repository.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s.conn()} }

// Leaderboard returns the leaderboard repository.
func (s *Store) Leaderboard() *LeaderboardRepo { return &LeaderboardRepo{s.conn()} }

// Activity returns the activity event repository.
func (s *Store) Activity() *ActivityRepo { return &ActivityRepo{s.conn()} }

// EventRepo returns the LLM request event repository.
func (s *Store) EventRepo() *LLMEventRepo { return &LLMEventRepo{s.conn()} }

// Tx is a database transaction exposing the same repositories as Store.
// Every write made through a Tx commits or rolls back together.
type Tx struct {
	c conn
}

func (tx *Tx) Journeys() *JourneyRepo        { return &JourneyRepo{tx.c} }
func (tx *Tx) Topics() *TopicRepo            { return &TopicRepo{tx.c} }
func (tx *Tx) Profiles() *ProfileRepo        { return &ProfileRepo{tx.c} }
func (tx *Tx) Leaderboard() *LeaderboardRepo { return &LeaderboardRepo{tx.c} }
func (tx *Tx) Activity() *ActivityRepo       { return &ActivityRepo{tx.c} }

// WithTx runs fn inside a transaction. The transaction is rolled back when
// fn returns an error or panics, and committed otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if v := recover(); v != nil {
			tx.Rollback()
			panic(v)
		}
	}()

	c := conn{q: tx, dialect: s.drv.Dialect(), seq: s.seq}
	if err := fn(&Tx{c: c}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// conn bundles the querier a repository runs against. It is either the
// driver itself or an open transaction.
type conn struct {
	q       dialect.ExecQuerier
	dialect string
	seq     *sequenceCounter
}

func (c conn) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.dialect)
}

func (c conn) exec(ctx context.Context, b entsql.Querier) (sql.Result, error) {
	query, args := b.Query()
	var res sql.Result
	if err := c.q.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c conn) query(ctx context.Context, b entsql.Querier) (*entsql.Rows, error) {
	query, args := b.Query()
	rows := &entsql.Rows{}
	if err := c.q.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// applyPragmas configures SQLite for a single local writer.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. OPENMIND_DB environment variable
// 2. $XDG_DATA_HOME/openmind/openmind.db
// 3. ~/.local/share/openmind/openmind.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("OPENMIND_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "openmind", "openmind.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
