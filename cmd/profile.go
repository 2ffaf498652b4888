package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your streak and points",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := storeOnly(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.Profiles().Get(cmd.Context(), cfg.User)
		if store.IsNotFound(err) {
			p, err = &store.Profile{UserID: cfg.User}, nil
		}
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		name := p.Name
		if name == "" {
			name = "(no name set)"
		}
		fmt.Fprintf(w, "User:    %s\n", p.UserID)
		fmt.Fprintf(w, "Name:    %s\n", name)
		fmt.Fprintf(w, "Streak:  %d day(s)", p.Streak)
		if p.Streak >= gamification.BaseStreakThreshold {
			fmt.Fprintf(w, "  [%s]", gamification.StreakTier(p.Streak).DisplayName())
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Next:    %d day streak\n", gamification.NextStreakThreshold(p.Streak))
		fmt.Fprintf(w, "Points:  %d\n", p.Points)
		return nil
	},
}

var profileSetNameCmd = &cobra.Command{
	Use:   "set-name <name>",
	Short: "Set the name shown on leaderboards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			return fmt.Errorf("name must not be blank")
		}

		cfg, st, err := storeOnly(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now().UTC()
		err = st.WithTx(ctx, func(tx *store.Tx) error {
			if _, err := tx.Profiles().Ensure(ctx, cfg.User, now); err != nil {
				return err
			}
			return tx.Profiles().SetName(ctx, cfg.User, name, now)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Name set to %q.\n", name)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetNameCmd)
}
