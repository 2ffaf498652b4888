package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/store"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"OPENMIND_LLM_PROVIDER", "OPENMIND_ANTHROPIC_API_KEY", "OPENMIND_LLM_TIMEOUT", "OPENMIND_LLM_RPM",
		"OPENMIND_USER", "OPENMIND_DB_DRIVER", "OPENMIND_DB_DSN", "OPENMIND_LOG_LEVEL", "OPENMIND_ADDR",
		"OPENMIND_ALLOW_ORIGINS", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SAMPLER_RATIO",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.User)
	assert.Equal(t, store.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider, "no keys falls back to the offline provider")
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
user: ada
database:
  driver: postgres
  dsn: postgres://localhost/openmind
llm:
  provider: gemini
  gemini:
    api_key: g-key
  timeout: 30s
log:
  level: debug
server:
  addr: ":9000"
  shutdown_timeout: 3s
telemetry:
  enabled: true
  sample_ratio: 0.5
`)
	t.Setenv("OPENMIND_ADDR", ":9100")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ada", cfg.User)
	assert.Equal(t, "postgres://localhost/openmind", cfg.Database.DSN)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9100", cfg.Server.Addr, "env wins over file")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 0.2, cfg.Telemetry.SampleRatio)
}

func TestLoad_DiscoversProvider(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"unknown field", "colour: blue\n", nil},
		{"malformed yaml", "user: [\n", nil},
		{"postgres without dsn", "database:\n  driver: postgres\n", nil},
		{"unknown driver", "database:\n  driver: oracle\n", nil},
		{"provider without key", "llm:\n  provider: anthropic\n", nil},
		{"blank user", "", map[string]string{"OPENMIND_USER": " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		isolate(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSplitListAndTruthy(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example"))
	assert.True(t, truthy("ON"))
	assert.False(t, truthy("nope"))
}
