package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const docsText = `Vira Documentation

Vira is a futuristic, memory-safe language.

  - Syntax: use [ ] for blocks
  - Types: static by default
  - Projects: described by bytes.yml at the project root

For full documentation, visit bytes.io.`

// NewDocsCmd creates the "docs" subcommand.
func NewDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Show documentation pointers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), docsText)
			return nil
		},
	}
}
