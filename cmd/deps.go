package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/openmind/internal/config"
	"github.com/abhisek/openmind/internal/journey"
	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/logging"
	"github.com/abhisek/openmind/internal/offline"
	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/store"
	"github.com/abhisek/openmind/internal/telemetry"
	"github.com/abhisek/openmind/internal/topics"
)

// loadConfig reads the config file and environment, then applies the
// persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.User = u
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Database.DSN = db
	}
	return cfg, nil
}

// resolveDSN returns the database DSN, using --db (via the config), then
// OPENMIND_DB, then the default XDG path for SQLite.
func resolveDSN(cfg config.Config) (string, error) {
	if cfg.Database.Driver != store.DriverSQLite {
		return cfg.Database.DSN, nil
	}
	if cfg.Database.DSN != "" {
		return cfg.Database.DSN, store.EnsureDir(cfg.Database.DSN)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.OpenDriver(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// deps is everything a journey command needs.
type deps struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	orch   *journey.Orchestrator

	// demo is set when no model is configured and the offline responder
	// answers instead.
	demo *offline.Responder

	shutdown telemetry.Shutdown
}

// newDeps opens the store, builds the LLM provider chain and the
// orchestrator. The caller must Close the result.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry, version, logger)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	d := &deps{cfg: cfg, logger: logger, store: st, shutdown: shutdown}

	var provider llm.Provider
	if cfg.LLM.Provider == llm.ProviderMock {
		d.demo = offline.New()
		provider = llm.Wrap(d.demo.Provider(), cfg.LLM, st.EventRepo(), logger)
	} else {
		provider, err = llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
	}

	d.orch = journey.New(st,
		topics.New(provider, topics.DefaultConfig()),
		reading.New(provider, reading.DefaultConfig()),
		quiz.New(provider, quiz.DefaultConfig()),
		journey.WithLogger(logger),
	)
	return d, nil
}

// Close waits for pending score writes, then releases everything.
func (d *deps) Close() {
	if d.orch != nil {
		d.orch.Close()
	}
	d.store.Close()
	_ = d.shutdown(context.Background())
	_ = d.logger.Sync()
}

// session restores the user's session: the given journey, or the most
// recent one when journeyID is empty.
func (d *deps) session(ctx context.Context, journeyID string) (*journey.Session, error) {
	sess := journey.NewSession(d.cfg.User)
	var err error
	if journeyID != "" {
		err = d.orch.SelectJourney(ctx, sess, journeyID)
	} else {
		err = d.orch.LoadMostRecentJourney(ctx, sess)
	}
	if err != nil {
		return nil, err
	}
	if d.demo != nil && sess.Journey != nil {
		d.demo.Seek(len(sess.Journey.TopicIDs) + 1)
	}
	return sess, nil
}

// storeOnly loads the config and opens the store without building a
// model provider.
func storeOnly(cmd *cobra.Command) (config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, st, nil
}

// openStoreFromFlags opens only the store.
func openStoreFromFlags(cmd *cobra.Command) (*store.Store, error) {
	_, st, err := storeOnly(cmd)
	return st, err
}
