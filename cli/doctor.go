package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/history"
)

// NewDoctorCmd creates the "doctor" subcommand.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain environment",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type doctorCheck struct {
	name    string
	ok      bool
	details string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	checks := []doctorCheck{
		pathCheck("home", env.home.Root),
		pathCheck("bin", env.home.Bin),
		pathCheck("libs", env.home.Libs),
		pathCheck("logs", env.home.Logs),
		pathCheck("cache", env.home.Cache),
		pathCheck("vira-compiler", env.bins.Compiler()),
		pathCheck("vira-packages", env.bins.Packages()),
		pathCheck("vira-parser_lexer", env.bins.ParserLexer()),
	}
	checks = append(checks, historyCheck(cmd, env))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tSTATUS\tDETAILS")
	allOK := true
	for _, c := range checks {
		status := "OK"
		if !c.ok {
			status = "FAIL"
			allOK = false
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.name, status, c.details)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !allOK {
		return exitError(exitFailure, "some checks failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All checks passed.")
	return nil
}

func pathCheck(name, path string) doctorCheck {
	_, err := os.Stat(path)
	return doctorCheck{name: name, ok: err == nil, details: path}
}

func historyCheck(cmd *cobra.Command, env *env) doctorCheck {
	check := doctorCheck{name: "install history"}

	hist, err := history.Open(env.home.HistoryDBPath())
	if err != nil {
		check.details = err.Error()
		return check
	}
	defer func() {
		_ = hist.Close()
	}()

	n, err := hist.Count(cmd.Context())
	if err != nil {
		check.details = err.Error()
		return check
	}
	check.ok = true
	check.details = fmt.Sprintf("%d recorded installs", n)
	return check
}
