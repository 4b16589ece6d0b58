package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/manifest"
)

// NewCleanCmd creates the "clean" subcommand.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}

	cmd.Flags().Bool("cache", false, "Also empty the shared download cache")
	cmd.Flags().BoolP("yes", "y", false, "Delete without confirmation")

	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	cleanCache, _ := cmd.Flags().GetBool("cache")
	yes, _ := cmd.Flags().GetBool("yes")

	// Build dir is manifest-relative when a project encloses us, else
	// relative to the working directory: clean tolerates a missing manifest.
	root, err := os.Getwd()
	if err != nil {
		return exitError(exitFailure, "resolving working directory: %v", err)
	}
	if path, err := manifest.LocateFromWorkingDir(); err == nil {
		root = filepath.Dir(path)
	} else if !errors.Is(err, manifest.ErrNotFound) {
		return err
	}
	buildDir := filepath.Join(root, "build")

	if !yes {
		fmt.Fprintf(cmd.OutOrStdout(), "Would remove %s", buildDir)
		if cleanCache {
			fmt.Fprintf(cmd.OutOrStdout(), " and empty %s", env.home.Cache)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "; pass --yes to confirm.")
		return nil
	}

	if err := os.RemoveAll(buildDir); err != nil {
		return exitError(exitFailure, "removing %s: %v", buildDir, err)
	}
	env.logger.Info("removed build directory", "dir", buildDir)

	if cleanCache {
		if err := os.RemoveAll(env.home.Cache); err != nil {
			return exitError(exitFailure, "emptying cache: %v", err)
		}
		if err := os.MkdirAll(env.home.Cache, 0o750); err != nil {
			return exitError(exitFailure, "recreating cache directory: %v", err)
		}
		env.logger.Info("emptied shared cache", "dir", env.home.Cache)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Clean complete.")
	return nil
}
