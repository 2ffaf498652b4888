package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/openmind/internal/catalog"
	"github.com/abhisek/openmind/internal/journey"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse ready-made courses",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List streams and their subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, s := range catalog.Streams() {
			fmt.Fprintf(w, "%s (%s)\n  %s\n", s.Name, s.ID, s.Description)
			for _, subj := range s.Subjects {
				fmt.Fprintf(w, "    %-24s %s\n", subj.ID, subj.Name)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "Start one with: openmind catalog start <stream> <subject>")
		return nil
	},
}

var catalogStartCmd = &cobra.Command{
	Use:   "start <stream> <subject>",
	Short: "Start a journey from a catalog subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess := journey.NewSession(d.cfg.User)
		fmt.Fprintln(cmd.ErrOrStderr(), "Generating your journey...")
		if err := d.orch.StartSubject(cmd.Context(), sess, args[0], args[1]); err != nil {
			return err
		}
		return printSession(cmd.OutOrStdout(), sess)
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogStartCmd)
}
