package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewSearchCmd creates the "search" subcommand.
func NewSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the package repository",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	query := strings.Join(args, " ")

	res, err := env.invoker.Invoke(cmd.Context(), toolchain.Request{
		Argv:    []string{env.bins.Packages(), "search", query},
		Capture: true,
	})
	if err != nil {
		return mapInvokeErr(err)
	}

	output := strings.TrimSpace(res.Output)
	if output == "" {
		output = "(no results)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
