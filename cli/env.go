package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vira-lang/vira/deps"
	"github.com/vira-lang/vira/history"
	"github.com/vira-lang/vira/home"
	"github.com/vira-lang/vira/manifest"
	"github.com/vira-lang/vira/telemetry"
	"github.com/vira-lang/vira/toolchain"
)

// env bundles everything a command needs: the resolved home layout, global
// config, logger, and the toolchain invoker. Built once per command run,
// never stored globally.
type env struct {
	home    *home.Home
	cfg     home.Config
	logger  *slog.Logger
	invoker toolchain.Invoker
	bins    toolchain.Binaries

	closeLog func()
}

// openEnv bootstraps the home layout and config for one command run.
func openEnv(cmd *cobra.Command) (*env, error) {
	h, err := home.Open()
	if err != nil {
		return nil, exitError(exitFailure, "initializing vira home: %v", err)
	}

	cfg, err := h.LoadConfig()
	if err != nil {
		return nil, exitError(exitFailure, "loading config: %v", err)
	}

	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	logger, closeLog, err := h.SetupLogger(verbose || cfg.Verbose, quiet)
	if err != nil {
		return nil, exitError(exitFailure, "setting up logging: %v", err)
	}

	return &env{
		home:   h,
		cfg:    cfg,
		logger: logger,
		invoker: &toolchain.ExecInvoker{
			Tracer: telemetry.Tracer(),
			Logger: logger,
		},
		bins:     toolchain.Binaries{Dir: h.Bin},
		closeLog: closeLog,
	}, nil
}

func (e *env) close() {
	if e.closeLog != nil {
		e.closeLog()
	}
}

// loadProject locates and parses the nearest enclosing manifest, mapping
// the failure modes onto exit codes: no manifest is a missing-project
// error, a bad manifest is fatal to the command.
func loadProject() (*manifest.Manifest, error) {
	m, err := manifest.Load(".")
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return nil, exitError(exitNoProject, "no %s found here or in any parent directory; run \"vira init\" first", manifest.FileName)
		}
		var perr *manifest.ParseError
		if errors.As(err, &perr) {
			return nil, exitError(exitManifest, "%v", perr)
		}
		return nil, err
	}
	return m, nil
}

// resolveDeps runs a full resolution pass for the manifest before a
// command proceeds to its primary action. The pass aborts the command on
// the first failed install.
func (e *env) resolveDeps(cmd *cobra.Command, m *manifest.Manifest, inProject bool) error {
	hist, err := history.Open(e.home.HistoryDBPath())
	if err != nil {
		e.logger.Warn("install history unavailable", "err", err)
		hist = nil
	}
	defer func() {
		_ = hist.Close()
	}()

	resolver := &deps.Resolver{
		Store:     deps.Store{Dir: e.home.Libs},
		Invoker:   e.invoker,
		Binaries:  e.bins,
		InProject: inProject,
		Notice:    cmd.ErrOrStderr(),
		Logger:    e.logger,
		History:   hist,
	}

	report, err := resolver.Resolve(cmd.Context(), m)
	if err != nil {
		var rerr *deps.ResolutionError
		if errors.As(err, &rerr) {
			return exitError(exitResolution, "%v", rerr)
		}
		return err
	}

	if n := report.Installs(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Installed %d missing dependency(ies)\n", n)
	}
	return nil
}

// mapInvokeErr converts toolchain failures into exit-coded errors,
// distinguishing timeouts from process-reported failures.
func mapInvokeErr(err error) error {
	if err == nil {
		return nil
	}
	var ierr *toolchain.InvokeError
	if errors.As(err, &ierr) {
		if ierr.Timedout() {
			return exitError(exitTimeout, "%v", ierr)
		}
		return exitError(exitToolchain, "%v", ierr)
	}
	return err
}

// defaultPlatform maps the build OS onto the compiler's platform tokens.
func defaultPlatform() string {
	switch runtime.GOOS {
	case "linux":
		return "linux"
	case "windows":
		return "windows"
	case "darwin":
		return "macos"
	default:
		return "unknown"
	}
}

// viraFiles lists all .vira source files under root in lexical walk order.
func viraFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".vira") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}
