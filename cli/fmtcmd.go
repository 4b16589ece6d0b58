package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewFmtCmd creates the "fmt" subcommand.
func NewFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Format .vira sources in place",
		Args:  cobra.NoArgs,
		RunE:  runFmt,
	}
}

func runFmt(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	m, err := loadProject()
	if err != nil {
		return err
	}

	sourceDir := filepath.Join(filepath.Dir(m.Path), m.SourceDir())
	if _, err := os.Stat(sourceDir); err != nil {
		return exitError(exitManifest, "source directory %s not found", sourceDir)
	}

	files, err := viraFiles(sourceDir)
	if err != nil {
		return exitError(exitFailure, "%v", err)
	}

	for _, file := range files {
		_, err := env.invoker.Invoke(cmd.Context(), toolchain.Request{
			Argv:   []string{env.bins.ParserLexer(), "fmt", file},
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return mapInvokeErr(err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Formatting complete.")
	return nil
}
