package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/cli"
	"github.com/vira-lang/vira/telemetry"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	shutdown, err := telemetry.Setup(context.Background(), version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: tracing disabled: %v\n", err)
		shutdown = func(context.Context) error { return nil }
	}

	execErr := rootCmd.Execute()

	flushCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = shutdown(flushCtx)

	if execErr != nil {
		var exitErr *cli.ExitError
		if errors.As(execErr, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vira",
	Short: "Vira language toolchain CLI",
	Long:  "vira — the command-line front-end for the Vira language: compile, run, test, and manage packages for Vira projects.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "", false, "Suppress all output except errors")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("vira version %s\n", version))

	rootCmd.AddCommand(cli.NewReplCmd())
	rootCmd.AddCommand(cli.NewCompileCmd())
	rootCmd.AddCommand(cli.NewRunCmd())
	rootCmd.AddCommand(cli.NewTestCmd())
	rootCmd.AddCommand(cli.NewCheckCmd())
	rootCmd.AddCommand(cli.NewFmtCmd())
	rootCmd.AddCommand(cli.NewInitCmd())
	rootCmd.AddCommand(cli.NewInstallCmd())
	rootCmd.AddCommand(cli.NewRemoveCmd())
	rootCmd.AddCommand(cli.NewUpdateCmd())
	rootCmd.AddCommand(cli.NewUpgradeCmd())
	rootCmd.AddCommand(cli.NewRefreshCmd())
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewCleanCmd())
	rootCmd.AddCommand(cli.NewDocsCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())
	rootCmd.AddCommand(cli.NewDoctorCmd())
	rootCmd.AddCommand(cli.NewHistoryCmd())
}
