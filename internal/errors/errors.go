package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorResource = 5   // Indicates workers could not be started.
	ExitErrorContract = 6   // Indicates an internal contract violation.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// NoWorker is the Worker value of a ContractError raised outside any worker.
const NoWorker = -1

// ConfigError represents a rejected engine or CLI configuration. It is always
// raised before any worker is started.
type ConfigError struct {
	// Field is the configuration field at fault. It may be empty.
	Field string
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewConfigError creates a new ConfigError with a formatted message and no field.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// NewFieldError creates a ConfigError attributed to field.
func NewFieldError(field, format string, a ...any) error {
	return ConfigError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// ResourceError reports that the engine could not start every worker it was
// asked to run. No worker is started when it is returned.
type ResourceError struct {
	// Requested is the number of workers the run needed.
	Requested int
	// Available is the worker budget that was free at dispatch time.
	Available int
	// Cause is the underlying failure, if any.
	Cause error
}

// Error returns a formatted message describing the resource error.
func (e ResourceError) Error() string {
	msg := fmt.Sprintf("cannot start %d workers (budget %d)", e.Requested, e.Available)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e ResourceError) Unwrap() error { return e.Cause }

// ContractError represents a programming error: a nil collaborator, an
// out-of-range shift amount, or a panic recovered from a worker.
type ContractError struct {
	// Operation names the call whose precondition was broken.
	Operation string
	// Worker is the index of the failing worker, or NoWorker.
	Worker int
	// Cause describes the violation.
	Cause error
}

// Error returns a formatted message describing the violation.
func (e ContractError) Error() string {
	if e.Worker == NoWorker {
		return fmt.Sprintf("contract violation in %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("contract violation in %s (worker %d): %v", e.Operation, e.Worker, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ContractError) Unwrap() error { return e.Cause }

// NewContractError builds a ContractError that is not tied to a worker.
func NewContractError(operation, format string, a ...any) ContractError {
	return ContractError{Operation: operation, Worker: NoWorker, Cause: fmt.Errorf(format, a...)}
}

// FromPanic converts a recovered panic value into a ContractError for worker.
// A ContractError panic value keeps its operation and cause.
func FromPanic(worker int, r any) ContractError {
	switch v := r.(type) {
	case ContractError:
		v.Worker = worker
		return v
	case error:
		return ContractError{Operation: "worker", Worker: worker, Cause: v}
	default:
		return ContractError{Operation: "worker", Worker: worker, Cause: fmt.Errorf("%v", v)}
	}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error chain to the process exit code reported by the CLI.
func ExitCodeFor(err error) int {
	var (
		configErr   ConfigError
		resourceErr ResourceError
		contractErr ContractError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &resourceErr):
		return ExitErrorResource
	case errors.As(err, &contractErr):
		return ExitErrorContract
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
