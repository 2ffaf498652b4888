package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/journey"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Start, advance and review learning journeys",
}

var journeyStartCmd = &cobra.Command{
	Use:   "start <interest>...",
	Short: "Start a new journey from your interests",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		sess := journey.NewSession(d.cfg.User)
		fmt.Fprintln(cmd.ErrOrStderr(), "Generating your journey...")
		if err := d.orch.StartJourney(ctx, sess, splitInterests(args)); err != nil {
			return err
		}
		return printSession(cmd.OutOrStdout(), sess)
	},
}

var journeyAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Move on to the next day of the journey",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Fprintln(cmd.ErrOrStderr(), "Preparing the next day...")
		res, err := d.orch.AdvanceToNextDay(ctx, sess)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if err := printSession(w, sess); err != nil {
			return err
		}
		fmt.Fprintf(w, "Streak: %d  Points: %d  (next milestone at %d)\n",
			res.Streak, res.Points, gamification.NextStreakThreshold(res.Streak))
		if m := res.Milestone; m != nil {
			fmt.Fprintf(w, "%s streak! %s\n", m.Tier.DisplayName(), m.Reason)
		}
		return nil
	},
}

var journeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current day, or every day with --all",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		w := cmd.OutOrStdout()
		if all, _ := cmd.Flags().GetBool("all"); !all || sess.Journey == nil {
			return printSession(w, sess)
		}
		days, err := d.orch.Days(ctx, sess)
		if err != nil {
			return err
		}
		printJourneyHeader(w, sess.Journey)
		for i := range days {
			if err := printDay(w, sess.Journey, &days[i]); err != nil {
				return err
			}
		}
		return nil
	},
}

var journeyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List your journeys, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		history, err := d.orch.History(cmd.Context(), d.cfg.User)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(history) == 0 {
			fmt.Fprintln(w, "No journeys yet.")
			return nil
		}
		fmt.Fprintf(w, "%-36s  %-10s  %-9s  %s\n", "ID", "Started", "Progress", "Title")
		fmt.Fprintln(w, strings.Repeat(rule, 90))
		for _, j := range history {
			fmt.Fprintf(w, "%-36s  %-10s  %4d/%-4d  %s\n",
				j.ID, j.StartedAt.Local().Format("2006-01-02"), len(j.TopicIDs), j.TotalDays, j.Title)
		}
		return nil
	},
}

var journeySelectCmd = &cobra.Command{
	Use:   "select <journey-id>",
	Short: "Show a past journey; pass --journey to other commands to continue it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.session(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if err := printSession(w, sess); err != nil {
			return err
		}
		fmt.Fprintf(w, "Use --journey %s with advance, show or quiz submit to work on this journey.\n", args[0])
		return nil
	},
}

// splitInterests accepts interests as separate arguments or comma lists.
func splitInterests(args []string) []string {
	var out []string
	for _, a := range args {
		out = append(out, strings.Split(a, ",")...)
	}
	return out
}

func init() {
	for _, c := range []*cobra.Command{journeyAdvanceCmd, journeyShowCmd} {
		c.Flags().String("journey", "", "Journey id (default: most recent)")
	}
	journeyShowCmd.Flags().Bool("all", false, "Show every day of the journey")

	journeyCmd.AddCommand(journeyStartCmd)
	journeyCmd.AddCommand(journeyAdvanceCmd)
	journeyCmd.AddCommand(journeyShowCmd)
	journeyCmd.AddCommand(journeyHistoryCmd)
	journeyCmd.AddCommand(journeySelectCmd)
}
