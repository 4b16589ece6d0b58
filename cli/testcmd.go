package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewTestCmd creates the "test" subcommand.
func NewTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run the project's tests",
		Args:  cobra.NoArgs,
		RunE:  runTest,
	}
}

func runTest(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	m, err := loadProject()
	if err != nil {
		return err
	}

	testDir := filepath.Join(filepath.Dir(m.Path), m.TestDir())
	if _, err := os.Stat(testDir); err != nil {
		return exitError(exitFailure, "tests directory %s not found", testDir)
	}

	if err := env.resolveDeps(cmd, m, false); err != nil {
		return err
	}

	_, err = env.invoker.Invoke(cmd.Context(), toolchain.Request{
		Argv:   []string{env.bins.Compiler(), "test", testDir},
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return mapInvokeErr(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Tests complete.")
	return nil
}
