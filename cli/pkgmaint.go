package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/toolchain"
)

// NewUpdateCmd creates the "update" subcommand.
func NewUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update installed packages",
		Args:  cobra.NoArgs,
		RunE:  packagesMaintenance("update", "Packages updated."),
	}
}

// NewUpgradeCmd creates the "upgrade" subcommand.
func NewUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the Vira toolchain binaries",
		Args:  cobra.NoArgs,
		RunE:  packagesMaintenance("upgrade", "Vira upgraded."),
	}
}

// NewRefreshCmd creates the "refresh" subcommand.
func NewRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the package repository cache",
		Args:  cobra.NoArgs,
		RunE:  packagesMaintenance("refresh", "Repository refreshed."),
	}
}

// packagesMaintenance builds a RunE that forwards a single subcommand to
// the package tool and prints a completion line.
func packagesMaintenance(subcommand, doneMsg string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		_, err = env.invoker.Invoke(cmd.Context(), toolchain.Request{
			Argv:   []string{env.bins.Packages(), subcommand},
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return mapInvokeErr(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), doneMsg)
		return nil
	}
}
