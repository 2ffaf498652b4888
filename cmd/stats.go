package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := storeOnly(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		journeys, err := st.Journeys().ListByUser(ctx, cfg.User)
		if err != nil {
			return err
		}
		counts, err := st.Activity().CountByKind(ctx, cfg.User)
		if err != nil {
			return err
		}
		p, err := st.Profiles().Get(ctx, cfg.User)
		if store.IsNotFound(err) {
			p, err = &store.Profile{UserID: cfg.User}, nil
		}
		if err != nil {
			return err
		}

		days, completed := 0, 0
		for _, j := range journeys {
			days += len(j.TopicIDs)
			if j.TotalDays > 0 && len(j.TopicIDs) >= j.TotalDays {
				completed++
			}
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Journeys:        %d (%d reached their last day)\n", len(journeys), completed)
		fmt.Fprintf(w, "Days studied:    %d\n", days)
		fmt.Fprintf(w, "Current streak:  %d\n", p.Streak)
		fmt.Fprintf(w, "Points:          %d\n", p.Points)

		if len(counts) > 0 {
			fmt.Fprintln(w, "\nActivity")
			kinds := make([]string, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Fprintf(w, "  %-16s %d\n", k, counts[k])
			}
		}
		return nil
	},
}
