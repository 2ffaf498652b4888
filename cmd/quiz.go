package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer the daily quiz",
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit <answer>...",
	Short: "Submit one answer per question, numbered from 1",
	Example: `  openmind quiz submit 2 1 3`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selections, err := parseAnswers(args)
		if err != nil {
			return err
		}

		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		id, _ := cmd.Flags().GetString("journey")
		sess, err := d.session(ctx, id)
		if err != nil {
			return err
		}

		res, err := d.orch.SubmitQuiz(ctx, sess, selections)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "You scored %.2f%% (%d of %d correct), worth %d points.\n",
			res.Score, res.Correct, res.Total, res.Points)
		if res.Celebrate {
			fmt.Fprintln(w, "Excellent work!")
		}
		if err := res.Write.Wait(ctx); err != nil {
			return fmt.Errorf("save score: %w", err)
		}
		return nil
	},
}

// parseAnswers converts 1-based answer numbers to selections. Anything
// that is not a positive number is left unanswered.
func parseAnswers(args []string) ([]int, error) {
	selections := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, a)
		}
		if n < 1 {
			selections[i] = quiz.Unanswered
			continue
		}
		selections[i] = n - 1
	}
	return selections, nil
}

func init() {
	quizSubmitCmd.Flags().String("journey", "", "Journey id (default: most recent)")
	quizCmd.AddCommand(quizSubmitCmd)
}
