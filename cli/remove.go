package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewRemoveCmd creates the "remove" subcommand.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <package...>",
		Short: "Remove installed packages",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	for _, pkg := range args {
		_, err := env.invoker.Invoke(cmd.Context(), toolchain.Request{
			Argv:   []string{env.bins.Packages(), "remove", pkg},
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return mapInvokeErr(err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Removal complete.")
	return nil
}
