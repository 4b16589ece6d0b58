package toolchain

import (
	"fmt"
	"strings"
)

const (
	// CodeExit means the subprocess ran and exited non-zero.
	CodeExit = "EXIT"
	// CodeTimeout means the configured timeout elapsed before exit.
	CodeTimeout = "TIMEOUT"
	// CodeStart means the subprocess could not be started at all.
	CodeStart = "START_FAILED"
	// CodeInvalidRequest means the argument vector was unusable.
	CodeInvalidRequest = "INVALID_REQUEST"
)

// InvokeError is a structured toolchain invocation failure. The Code
// distinguishes a non-zero exit from a timeout so callers can branch
// without string matching; Output carries the captured diagnostic text
// when capture mode was requested.
type InvokeError struct {
	Code     string
	Argv     []string
	ExitCode int
	Output   string
	Cause    error
}

func (e *InvokeError) Error() string {
	if e == nil {
		return ""
	}
	tool := "<none>"
	if len(e.Argv) > 0 {
		tool = e.Argv[0]
	}
	switch e.Code {
	case CodeTimeout:
		return fmt.Sprintf("toolchain: %s timed out", tool)
	case CodeExit:
		msg := fmt.Sprintf("toolchain: %s exited with code %d", tool, e.ExitCode)
		if out := strings.TrimSpace(e.Output); out != "" {
			msg += ": " + out
		}
		return msg
	default:
		return fmt.Sprintf("toolchain: %s: %v", tool, e.Cause)
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *InvokeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Timedout reports whether the failure was a timeout rather than a
// process-reported one.
func (e *InvokeError) Timedout() bool {
	return e != nil && e.Code == CodeTimeout
}
