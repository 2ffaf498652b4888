package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/store"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank learners by points, or by streak on one journey",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := storeOnly(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 1 {
			return fmt.Errorf("--limit must be positive")
		}
		title, _ := cmd.Flags().GetString("journey")

		type row struct {
			name           string
			streak, points int
		}
		var rows []row
		var ranks []int
		ctx := cmd.Context()

		if title = strings.TrimSpace(title); title != "" {
			entries, err := st.Leaderboard().TopForJourney(ctx, title, limit)
			if err != nil {
				return err
			}
			ranks = gamification.Rank(entries, func(e store.LeaderboardEntry) int { return e.Streak })
			for _, e := range entries {
				rows = append(rows, row{displayName(e.Name, e.UserID), e.Streak, e.Points})
			}
		} else {
			profiles, err := st.Profiles().Top(ctx, limit)
			if err != nil {
				return err
			}
			ranks = gamification.Rank(profiles, func(p store.Profile) int { return p.Points })
			for _, p := range profiles {
				rows = append(rows, row{displayName(p.Name, p.UserID), p.Streak, p.Points})
			}
		}

		w := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(w, "Nobody on the board yet.")
			return nil
		}
		fmt.Fprintf(w, "%4s  %-24s  %6s  %6s\n", "Rank", "Name", "Streak", "Points")
		fmt.Fprintln(w, strings.Repeat(rule, 46))
		for i, r := range rows {
			fmt.Fprintf(w, "%4d  %-24s  %6d  %6d\n", ranks[i], truncate(r.name, 24), r.streak, r.points)
		}
		return nil
	},
}

func displayName(name, userID string) string {
	if name != "" {
		return name
	}
	return userID
}

func init() {
	leaderboardCmd.Flags().String("journey", "", "Journey title to rank by streak")
	leaderboardCmd.Flags().Int("limit", 10, "Number of entries to show")
}
