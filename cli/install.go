package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/deps"
	"github.com/vira-lang/vira/history"
	"github.com/vira-lang/vira/toolchain"
)

// NewInstallCmd creates the "install" subcommand. With package arguments
// it installs exactly those; without arguments it synchronizes the
// manifest's declared dependencies against the local store.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [package...]",
		Short: "Install packages, or sync the manifest's dependencies",
		RunE:  runInstall,
	}

	cmd.Flags().Bool("in-project", false, "Install into the project's build/dependencies instead of the shared store")

	return cmd
}

func runInstall(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	inProject, _ := cmd.Flags().GetBool("in-project")

	if len(args) == 0 {
		m, err := loadProject()
		if err != nil {
			return err
		}
		if len(m.Dependencies()) == 0 && len(m.DevDependencies()) == 0 {
			return exitError(exitFailure, "no packages specified and no dependencies declared in %s", m.Path)
		}
		if err := env.resolveDeps(cmd, m, inProject); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Installation complete.")
		return nil
	}

	hist, err := history.Open(env.home.HistoryDBPath())
	if err != nil {
		env.logger.Warn("install history unavailable", "err", err)
		hist = nil
	}
	defer func() {
		_ = hist.Close()
	}()

	for _, pkg := range args {
		fmt.Fprintf(cmd.ErrOrStderr(), "Installing %s...\n", pkg)

		argv := []string{env.bins.Packages(), "install", pkg}
		if inProject {
			argv = append(argv, "--in-project")
		}

		_, invokeErr := env.invoker.Invoke(cmd.Context(), toolchain.Request{
			Argv:    argv,
			Capture: true,
		})
		recordInstall(cmd, env, hist, pkg, invokeErr)
		if invokeErr != nil {
			return mapInvokeErr(invokeErr)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Installation complete.")
	return nil
}

func recordInstall(cmd *cobra.Command, env *env, hist *history.Store, pkg string, invokeErr error) {
	if hist == nil {
		return
	}
	name, version := splitPackageRef(pkg)
	outcome := deps.OutcomeInstalled
	if invokeErr != nil {
		outcome = deps.OutcomeFailed
	}
	err := hist.Append(cmd.Context(), history.Record{
		Name:    name,
		Version: version,
		Outcome: string(outcome),
	})
	if err != nil {
		env.logger.Warn("recording install history", "package", pkg, "err", err)
	}
}

// splitPackageRef splits name@version; a bare name has an empty version.
func splitPackageRef(pkg string) (string, string) {
	if i := strings.LastIndex(pkg, "@"); i > 0 {
		return pkg[:i], pkg[i+1:]
	}
	return pkg, ""
}
