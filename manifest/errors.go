package manifest

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Locate when no ancestor directory up to the
// filesystem root contains a bytes.yml. Callers decide whether a missing
// manifest is fatal for their command.
var ErrNotFound = errors.New("manifest: bytes.yml not found")

// ParseReason classifies why a manifest failed to parse.
type ParseReason string

const (
	// ReasonSyntax means the file is not valid YAML.
	ReasonSyntax ParseReason = "syntax"
	// ReasonMissingField means a required field is absent or empty after decode.
	ReasonMissingField ParseReason = "missing_field"
)

// ParseError is a structured manifest parse/validation failure. It always
// carries the offending path; syntax errors wrap the YAML diagnostic,
// validation errors name the missing field.
type ParseError struct {
	Path   string
	Reason ParseReason
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("manifest %s: required field %q is missing or empty", e.Path, e.Field)
	default:
		return fmt.Sprintf("manifest %s: invalid YAML: %v", e.Path, e.Err)
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
