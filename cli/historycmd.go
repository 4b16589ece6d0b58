package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/history"
)

// NewHistoryCmd creates the "history" subcommand.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent package installs",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of records to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	limit, _ := cmd.Flags().GetInt("limit")

	hist, err := history.Open(env.home.HistoryDBPath())
	if err != nil {
		return exitError(exitFailure, "opening install history: %v", err)
	}
	defer func() {
		_ = hist.Close()
	}()

	recs, err := hist.Recent(cmd.Context(), limit)
	if err != nil {
		return exitError(exitFailure, "reading install history: %v", err)
	}

	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No installs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPACKAGE\tVERSION\tOUTCOME")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.RecordedAt.Local().Format(time.DateTime),
			rec.Name,
			rec.Version,
			rec.Outcome,
		)
	}
	return w.Flush()
}
