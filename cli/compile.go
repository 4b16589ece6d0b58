package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewCompileCmd creates the "compile" subcommand.
func NewCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the current project",
		Args:  cobra.NoArgs,
		RunE:  runCompile,
	}

	cmd.Flags().String("platform", defaultPlatform(), "Target platform: linux | windows | macos")
	cmd.Flags().StringP("output", "o", "build", "Output directory, relative to the project root")

	return cmd
}

func runCompile(cmd *cobra.Command, _ []string) error {
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

	platform, _ := cmd.Flags().GetString("platform")
	output, _ := cmd.Flags().GetString("output")

	projectDir := filepath.Dir(m.Path)
	sourceDir := filepath.Join(projectDir, m.SourceDir())
	if _, err := os.Stat(sourceDir); err != nil {
		return exitError(exitManifest, "source directory %s not found", sourceDir)
	}

	outputDir := filepath.Join(projectDir, output)
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return exitError(exitFailure, "creating output directory: %v", err)
	}

	env.logger.Info("compiling project", "name", m.Name, "platform", platform)

	_, err = env.invoker.Invoke(cmd.Context(), toolchain.Request{
		Argv:   []string{env.bins.Compiler(), "compile", sourceDir, "--platform", platform, "--output", outputDir},
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return mapInvokeErr(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Compilation complete. Output in %s/\n", output)
	return nil
}
