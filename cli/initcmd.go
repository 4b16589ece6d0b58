package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/home"
	"github.com/vira-lang/vira/manifest"
)

const helloProgram = `<io>

@ Hello Vira program
func main()
[
    let msg: string = "Hello, Vira!"
    write msg
]
`

// NewInitCmd creates the "init" subcommand.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Vira project in the current directory",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}

	cmd.Flags().String("name", "", "Project name (default: current directory name)")
	cmd.Flags().String("author", "", "Project author (default: $USER)")
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().Bool("force", false, "Reinitialize even if a manifest already exists")

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	force, _ := cmd.Flags().GetBool("force")
	if existing, err := manifest.LocateFromWorkingDir(); err == nil && !force {
		return exitError(exitFailure, "project already initialized (%s); pass --force to reinitialize", existing)
	} else if err != nil && !errors.Is(err, manifest.ErrNotFound) {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return exitError(exitFailure, "resolving working directory: %v", err)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(cwd)
	}
	author, _ := cmd.Flags().GetString("author")
	if author == "" {
		author = os.Getenv("USER")
	}
	description, _ := cmd.Flags().GetString("description")

	m := &manifest.Manifest{
		Name:        name,
		Version:     home.DefaultVersion,
		Author:      author,
		Description: description,
		Source:      manifest.DefaultSourceDir,
		Deps:        manifest.DependencyList{},
		DevDeps:     manifest.DependencyList{},
	}

	data, err := m.Encode()
	if err != nil {
		return exitError(exitFailure, "%v", err)
	}
	if err := os.WriteFile(filepath.Join(cwd, manifest.FileName), data, 0o600); err != nil {
		return exitError(exitFailure, "writing %s: %v", manifest.FileName, err)
	}

	sourceDir := filepath.Join(cwd, manifest.DefaultSourceDir)
	if err := os.MkdirAll(sourceDir, 0o750); err != nil {
		return exitError(exitFailure, "creating source directory: %v", err)
	}
	mainFile := filepath.Join(sourceDir, "main.vira")
	if _, err := os.Stat(mainFile); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainFile, []byte(helloProgram), 0o600); err != nil {
			return exitError(exitFailure, "writing %s: %v", mainFile, err)
		}
	}

	if err := os.MkdirAll(filepath.Join(cwd, manifest.DefaultTestDir), 0o750); err != nil {
		return exitError(exitFailure, "creating tests directory: %v", err)
	}

	env.logger.Info("project initialized", "name", name, "dir", cwd)
	fmt.Fprintln(cmd.OutOrStdout(), "Project initialized successfully.")
	return nil
}
