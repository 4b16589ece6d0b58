package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewReplCmd creates the "repl" subcommand.
func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the Vira REPL",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	fmt.Fprintln(cmd.OutOrStdout(), "Starting Vira REPL...")

	_, err = env.invoker.Invoke(cmd.Context(), toolchain.Request{
		Argv:   []string{env.bins.Compiler(), "repl"},
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	return mapInvokeErr(err)
}
