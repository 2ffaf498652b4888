package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/journey"
)

var rootCmd = &cobra.Command{
	Use:   "openmind",
	Short: "Personalized daily learning journeys",
	Long: `OpenMind turns your interests into a multi-day learning journey: a topic
for each day, curated reading and a short quiz, with a streak and points
for keeping at it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error for humans.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database file (sqlite) or DSN; overrides OPENMIND_DB and the config file")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/openmind/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "User id to act as (overrides OPENMIND_USER)")

	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// formatError renders a Notice with its description and the cause.
func formatError(err error) string {
	var n *journey.Notice
	if errors.As(err, &n) {
		return fmt.Sprintf("%s\n  %s\n  (%v)", n.Title, n.Description, n.Err)
	}
	return "Error: " + err.Error()
}
