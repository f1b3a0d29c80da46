// Package errors provides structured error types and exit codes for cargo2junit.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Parse failure, or failed tests when requested
	ExitConfigError      = 2 // Configuration error (bad flag, invalid config file)
	ExitEnvironmentError = 3 // Environment error (input unreadable, output unwritable)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindParse
	KindIO
)

// Cargo2JUnitError is the base error type for cargo2junit.
type Cargo2JUnitError struct {
	Kind    ErrorKind
	Message string
	Path    string // file the error relates to, if any
	Cause   error  // Underlying error
}

func (e *Cargo2JUnitError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Cargo2JUnitError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Cargo2JUnitError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindIO:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Cargo2JUnitError {
	return &Cargo2JUnitError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Cargo2JUnitError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Cargo2JUnitError {
	return &Cargo2JUnitError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Cargo2JUnitError {
	return Config(fmt.Sprintf(format, args...))
}

// Validation creates a configuration validation error for a file.
func Validation(path string, cause error) *Cargo2JUnitError {
	return &Cargo2JUnitError{
		Kind:    KindValidation,
		Message: "invalid configuration",
		Path:    path,
		Cause:   cause,
	}
}

// Parse wraps a grammar error for the given input.
func Parse(path string, cause error) *Cargo2JUnitError {
	return &Cargo2JUnitError{
		Kind:    KindParse,
		Message: "error while parsing",
		Path:    path,
		Cause:   cause,
	}
}

// IO wraps a read or write failure on path.
func IO(path string, cause error) *Cargo2JUnitError {
	return &Cargo2JUnitError{
		Kind:    KindIO,
		Path:    path,
		Message: "i/o error",
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Cargo2JUnitError {
	return &Cargo2JUnitError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *Cargo2JUnitError
	if errors.As(err, &ce) {
		return ce.ExitCode()
	}
	return ExitRuntimeError
}
