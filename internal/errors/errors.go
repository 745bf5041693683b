// Package errors provides structured error handling for the semrel CLI.
// Every user-facing failure is a CLIError carrying a category, which decides
// the exit code, and a list of remediation steps printed under the message.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors come from invalid arguments, flags or input files.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or SEMREL_ variables.
	Configuration
	// Prerequisite errors mean the repository is not ready for a release:
	// no repository, no tags, a latest tag that is not a version, a missing file.
	Prerequisite
	// Runtime errors happen while writing the changelog, an export or a tag.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is a categorized error with remediation steps.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	// Usage is the correct command syntax, shown for argument errors.
	Usage string
	// Cause stays reachable through errors.Is and errors.As.
	Cause error
}

func (e *CLIError) Error() string { return e.Message }

func (e *CLIError) Unwrap() error { return e.Cause }

// New creates a CLIError with a formatted message.
func New(category ErrorCategory, format string, args ...any) *CLIError {
	return &CLIError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap turns err into a CLIError. A non-empty message is prepended to the
// cause as "message: cause". Wrap returns nil for a nil err.
func Wrap(err error, category ErrorCategory, message string) *CLIError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if message != "" {
		msg = message + ": " + msg
	}
	return &CLIError{Category: category, Message: msg, Cause: err}
}

// WithHint appends remediation steps. The With methods are no-ops on nil.
func (e *CLIError) WithHint(steps ...string) *CLIError {
	if e == nil {
		return nil
	}
	e.Remediation = append(e.Remediation, steps...)
	return e
}

// WithUsage sets the command syntax shown under the message.
func (e *CLIError) WithUsage(usage string) *CLIError {
	if e == nil {
		return nil
	}
	e.Usage = usage
	return e
}

// WithCause records err as the underlying error without changing the message.
func (e *CLIError) WithCause(err error) *CLIError {
	if e == nil {
		return nil
	}
	e.Cause = err
	return e
}

// As returns the first CLIError in the chain of err, or nil.
func As(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
