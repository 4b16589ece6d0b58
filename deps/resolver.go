package deps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vira-lang/vira/history"
	"github.com/vira-lang/vira/manifest"
	"github.com/vira-lang/vira/toolchain"
)

// Outcome classifies what happened to one dependency during a pass.
type Outcome string

const (
	OutcomeAlreadyInstalled Outcome = "already-installed"
	OutcomeInstalled        Outcome = "installed"
	OutcomeFailed           Outcome = "install-failed"
)

// Entry is one dependency's result within a resolution pass.
type Entry struct {
	Dependency manifest.Dependency
	Dev        bool
	Outcome    Outcome
}

// Report is the outcome of one resolution pass. Entries appear in
// processing order: dependencies first, then dev-dependencies, each in
// manifest declaration order.
type Report struct {
	PassID  string
	Entries []Entry
}

// Installs counts dependencies newly installed during the pass.
func (r Report) Installs() int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == OutcomeInstalled {
			n++
		}
	}
	return n
}

// ResolutionError reports the dependency whose install failed and wraps
// the invoker error unchanged.
type ResolutionError struct {
	Dependency manifest.Dependency
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving dependency %s: %v", e.Dependency, e.Err)
}

// Unwrap exposes the invoker error for errors.Is/errors.As.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolver synchronizes the local store with a manifest's declarations.
// Installs are strictly sequential; the first failure aborts the pass so
// later dependencies are never left half-started.
type Resolver struct {
	Store    Store
	Invoker  toolchain.Invoker
	Binaries toolchain.Binaries

	// InProject forwards --in-project to the package tool.
	InProject bool
	// InstallTimeout bounds each install invocation when > 0.
	InstallTimeout time.Duration

	// Notice receives the human-visible missing-dependency lines.
	// Nil discards them.
	Notice io.Writer
	Logger *slog.Logger
	// History receives best-effort install records; nil disables.
	History *history.Store
}

// Resolve walks dependencies then dev-dependencies in declared order,
// installing whatever the store lacks. The returned report covers every
// dependency processed before the pass ended; on failure it is partial and
// the error is a *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, m *manifest.Manifest) (Report, error) {
	report := Report{PassID: uuid.NewString()}

	groups := []struct {
		dev  bool
		list manifest.DependencyList
	}{
		{dev: false, list: m.Dependencies()},
		{dev: true, list: m.DevDependencies()},
	}

	for _, group := range groups {
		for _, dep := range group.list {
			entry, err := r.resolveOne(ctx, dep, group.dev, report.PassID)
			report.Entries = append(report.Entries, entry)
			if err != nil {
				return report, &ResolutionError{Dependency: dep, Err: err}
			}
		}
	}

	return report, nil
}

func (r *Resolver) resolveOne(ctx context.Context, dep manifest.Dependency, dev bool, passID string) (Entry, error) {
	entry := Entry{Dependency: dep, Dev: dev}

	if r.Store.Installed(dep.Name, dep.Version) {
		entry.Outcome = OutcomeAlreadyInstalled
		if r.Logger != nil {
			r.Logger.Debug("dependency already installed", "dependency", dep.String())
		}
		return entry, nil
	}

	if r.Notice != nil {
		fmt.Fprintf(r.Notice, "Installing missing dependency: %s\n", dep)
	}
	if r.Logger != nil {
		r.Logger.Info("installing missing dependency", "dependency", dep.String(), "pass", passID)
	}

	argv := []string{r.Binaries.Packages(), "install", dep.String()}
	if r.InProject {
		argv = append(argv, "--in-project")
	}

	_, err := r.Invoker.Invoke(ctx, toolchain.Request{
		Argv:    argv,
		Capture: true,
		Timeout: r.InstallTimeout,
	})

	if err != nil {
		entry.Outcome = OutcomeFailed
	} else {
		entry.Outcome = OutcomeInstalled
	}
	r.record(ctx, dep, entry.Outcome, passID)

	return entry, err
}

// record writes a history row; history failures are logged, never allowed
// to fail the resolution pass.
func (r *Resolver) record(ctx context.Context, dep manifest.Dependency, outcome Outcome, passID string) {
	if r.History == nil {
		return
	}
	err := r.History.Append(ctx, history.Record{
		Name:    dep.Name,
		Version: dep.Version,
		Outcome: string(outcome),
		PassID:  passID,
	})
	if err != nil && r.Logger != nil {
		r.Logger.Warn("recording install history", "dependency", dep.String(), "err", err)
	}
}
