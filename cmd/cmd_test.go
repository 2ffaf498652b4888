package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/openmind/internal/journey"
	"github.com/abhisek/openmind/internal/quiz"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("OPENMIND_LLM_PROVIDER", "mock")
	t.Setenv("OPENMIND_LOG_LEVEL", "error")
	t.Setenv("OPENMIND_USER", "")
	t.Setenv("OTEL_ENABLED", "")
	return filepath.Join(dir, "openmind.db")
}

func runCLI(t *testing.T, db string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--db", db, "--user", "ada"}, args...))
	require.NoError(t, rootCmd.Execute(), "openmind %s", strings.Join(args, " "))
	return out.String()
}

func TestCLIJourneyFlow(t *testing.T) {
	db := setupCLI(t)

	out := runCLI(t, db, "journey", "start", "astrophysics")
	assert.Contains(t, out, "Cosmic Curiosities")
	assert.Contains(t, out, "Day 1 of 7: Event Horizons")

	out = runCLI(t, db, "quiz", "submit", "2", "1", "3")
	assert.Contains(t, out, "You scored 100.00% (3 of 3 correct), worth 15 points.")
	assert.Contains(t, out, "Excellent work!")

	out = runCLI(t, db, "journey", "advance")
	assert.Contains(t, out, "Day 2 of 7: Stellar Nurseries")
	assert.Contains(t, out, "Streak: 1")

	out = runCLI(t, db, "stats")
	assert.Contains(t, out, "Journeys:        1")
	assert.Contains(t, out, "Days studied:    2")
	assert.Contains(t, out, "quiz_scored")

	out = runCLI(t, db, "leaderboard", "--journey", "Cosmic Curiosities")
	assert.Contains(t, out, "ada")
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers([]string{"2", "1", "0"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, quiz.Unanswered}, got)

	_, err = parseAnswers([]string{"b"})
	assert.Error(t, err)
}

func TestSplitInterests(t *testing.T) {
	assert.Equal(t, []string{"jazz", " history", "chess"}, splitInterests([]string{"jazz, history", "chess"}))
}

func TestFormatError(t *testing.T) {
	n := &journey.Notice{Title: "Could Not Load Journey", Description: "Try again.", Err: errors.New("db locked")}
	assert.Equal(t, "Could Not Load Journey\n  Try again.\n  (db locked)", formatError(n))
	assert.Equal(t, "Error: boom", formatError(errors.New("boom")))
}
