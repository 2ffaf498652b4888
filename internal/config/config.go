// Package config loads OpenMind settings. Sources are applied in order:
// built-in defaults, the YAML file, a .env file, then OPENMIND_* and
// OTEL_* environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/logging"
	"github.com/abhisek/openmind/internal/store"
	"github.com/abhisek/openmind/internal/telemetry"
)

// Config is the complete runtime configuration.
type Config struct {
	// User is the default user id for CLI commands.
	User string `yaml:"user"`

	Database  DatabaseConfig   `yaml:"database"`
	LLM       llm.Config       `yaml:"llm"`
	Log       logging.Config   `yaml:"log"`
	Telemetry telemetry.Config `yaml:"telemetry"`
	Server    ServerConfig     `yaml:"server"`
}

// DatabaseConfig selects the store backend. An empty DSN with the sqlite
// driver means the default database file.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// ServerConfig configures `openmind serve`.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowOrigins    []string      `yaml:"allow_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when nothing is set. The LLM
// provider is left empty so Load can discover one from API keys.
func Default() Config {
	l := llm.DefaultConfig()
	l.Provider = ""
	return Config{
		User:      "local",
		Database:  DatabaseConfig{Driver: store.DriverSQLite},
		LLM:       l,
		Log:       logging.DefaultConfig(),
		Telemetry: telemetry.DefaultConfig(),
		Server: ServerConfig{
			Addr:            ":8080",
			AllowOrigins:    []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/openmind/config.yaml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "openmind", "config.yaml"), nil
}

// Load builds the configuration. An explicit path must exist; with an
// empty path the default file is read if present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	cfg.ApplyEnv()
	cfg.resolveProvider()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadDotEnv reads KEY=VALUE pairs without overriding variables that are
// already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields with any environment variables set.
func (c *Config) ApplyEnv() {
	setString(&c.User, "OPENMIND_USER")
	setString(&c.Database.Driver, "OPENMIND_DB_DRIVER")
	setString(&c.Database.DSN, "OPENMIND_DB_DSN")

	c.LLM.ApplyEnv()

	setString(&c.Log.Level, "OPENMIND_LOG_LEVEL")
	setString(&c.Log.Format, "OPENMIND_LOG_FORMAT")
	setString(&c.Log.File, "OPENMIND_LOG_FILE")

	setString(&c.Server.Addr, "OPENMIND_ADDR")
	if v := os.Getenv("OPENMIND_ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = splitList(v)
	}

	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		c.Telemetry.Enabled = truthy(v)
	}
	setString(&c.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		c.Telemetry.Headers = telemetry.ParseHeaders(v)
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		c.Telemetry.Insecure = truthy(v)
	}
	if v := os.Getenv("OTEL_SAMPLER_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Telemetry.SampleRatio = f
		}
	}
}

// resolveProvider picks a provider from well-known API key variables when
// none was configured, and falls back to the offline mock.
func (c *Config) resolveProvider() {
	if c.LLM.Provider != "" {
		return
	}
	if found, ok := llm.DiscoverConfig(); ok {
		c.LLM.Provider = found.Provider
		c.LLM.Anthropic.APIKey = found.Anthropic.APIKey
		c.LLM.OpenAI.APIKey = found.OpenAI.APIKey
		c.LLM.Gemini.APIKey = found.Gemini.APIKey
		c.LLM.OpenRouter.APIKey = found.OpenRouter.APIKey
		return
	}
	c.LLM.Provider = llm.ProviderMock
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return errors.New("user must not be empty")
	}
	switch c.Database.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
