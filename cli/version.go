package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the "version" subcommand, reporting the installed
// toolchain version from the global config.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the installed Vira version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			fmt.Fprintf(cmd.OutOrStdout(), "Vira version: %s\n", env.cfg.Version)
			return nil
		},
	}
}
