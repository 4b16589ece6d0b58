// Package toolchain is the subprocess boundary between the vira CLI and
// the external compiler, package-manager, and parser/lexer executables.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Request describes one toolchain invocation. Argv[0] is the absolute path
// of the executable; the rest is its subcommand and flags.
type Request struct {
	Argv []string

	// Capture collects combined stdout+stderr into Result.Output instead
	// of streaming to the writers below.
	Capture bool

	// Timeout bounds the whole invocation when > 0. Once launched the
	// subprocess cannot be cancelled early; hitting the deadline kills it
	// and the call reports CodeTimeout.
	Timeout time.Duration

	// Stream targets when Capture is false. Nil defaults to the process
	// stdio so interactive tools (the REPL) work unchanged.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the successful outcome of an invocation.
type Result struct {
	// Output is combined stdout+stderr text, only set in capture mode.
	Output string
}

// Invoker runs toolchain subprocesses. The CLI core depends on this
// interface; tests substitute fakes that record argument vectors.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (Result, error)
}

// ExecInvoker is the real Invoker backed by os/exec. Both fields are
// optional; a zero ExecInvoker is usable.
type ExecInvoker struct {
	Tracer trace.Tracer
	Logger *slog.Logger
}

var _ Invoker = (*ExecInvoker)(nil)

// Invoke runs the subprocess described by req, blocking until it exits,
// fails to start, or the timeout elapses. Failures are always returned as
// *InvokeError with a machine-readable code.
func (iv *ExecInvoker) Invoke(ctx context.Context, req Request) (Result, error) {
	if len(req.Argv) == 0 || req.Argv[0] == "" {
		return Result{}, &InvokeError{Code: CodeInvalidRequest, Cause: errors.New("empty argument vector")}
	}

	execCtx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	ctx, span := iv.startSpan(execCtx, req)
	defer span.End()

	// #nosec G204 -- argv is assembled from the fixed home bin layout and user CLI args.
	cmd := exec.CommandContext(ctx, req.Argv[0], req.Argv[1:]...)

	var captured bytes.Buffer
	if req.Capture {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	} else {
		cmd.Stdin = req.Stdin
		cmd.Stdout = req.Stdout
		cmd.Stderr = req.Stderr
		if cmd.Stdin == nil {
			cmd.Stdin = os.Stdin
		}
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
	}

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if iv.Logger != nil {
		iv.Logger.Debug("toolchain invocation",
			"tool", filepath.Base(req.Argv[0]),
			"args", req.Argv[1:],
			"duration", elapsed,
			"err", runErr,
		)
	}

	if runErr == nil {
		span.SetStatus(codes.Ok, "")
		return Result{Output: captured.String()}, nil
	}

	ierr := classify(ctx, req, runErr, captured.String())
	span.SetStatus(codes.Error, ierr.Code)
	span.RecordError(ierr)
	return Result{Output: captured.String()}, ierr
}

func withTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := parent.Deadline(); !hasDeadline && timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return parent, func() {}
}

func (iv *ExecInvoker) startSpan(ctx context.Context, req Request) (context.Context, trace.Span) {
	tracer := iv.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("vira/toolchain")
	}
	attrs := []attribute.KeyValue{
		attribute.String("vira.tool", filepath.Base(req.Argv[0])),
	}
	if len(req.Argv) > 1 {
		attrs = append(attrs, attribute.String("vira.subcommand", req.Argv[1]))
	}
	return tracer.Start(ctx, "toolchain.invoke", trace.WithAttributes(attrs...))
}

func classify(ctx context.Context, req Request, runErr error, output string) *InvokeError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &InvokeError{Code: CodeTimeout, Argv: req.Argv, Output: output, Cause: context.DeadlineExceeded}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return &InvokeError{
			Code:     CodeExit,
			Argv:     req.Argv,
			ExitCode: exitErr.ExitCode(),
			Output:   output,
			Cause:    runErr,
		}
	}

	return &InvokeError{Code: CodeStart, Argv: req.Argv, Output: output, Cause: runErr}
}
