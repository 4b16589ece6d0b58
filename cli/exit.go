package cli

import "fmt"

// ExitError is an error that carries a specific process exit code.
// Cobra's RunE returns this to signal the desired exit code to main.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Process exit codes.
const (
	exitFailure    = 1  // generic failure
	exitNoProject  = 2  // no bytes.yml in the ancestor chain
	exitManifest   = 3  // manifest present but invalid
	exitResolution = 4  // dependency resolution failed
	exitToolchain  = 5  // a toolchain binary exited non-zero or could not start
	exitTimeout    = 10 // a toolchain invocation timed out
)
