package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewRunCmd creates the "run" subcommand.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file-or-dir>",
		Short: "Run Vira code in the VM",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}

	cmd.Flags().Duration("timeout", 5*time.Minute, "Execution timeout")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	m, err := loadProject()
	if err != nil {
		return err
	}

	if err := env.resolveDeps(cmd, m, false); err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")

	_, err = env.invoker.Invoke(cmd.Context(), toolchain.Request{
		Argv:    []string{env.bins.Compiler(), "run", args[0]},
		Timeout: timeout,
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	return mapInvokeErr(err)
}
