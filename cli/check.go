package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewCheckCmd creates the "check" subcommand.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check .vira sources and the manifest",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	// Parse already enforces name/version, so reaching this point means
	// the manifest itself checks out.
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
			Argv:   []string{env.bins.ParserLexer(), "check", file},
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return mapInvokeErr(err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Check passed.")
	return nil
}
