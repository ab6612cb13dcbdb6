// Package errs defines the error taxonomy for version calculation. Every
// failure the engine can surface is one of four kinds: configuration,
// repository access, dirty repository, or calculation. All of them are
// terminal for the current computation; nothing is retried internally and
// no partial version string is ever produced.
package errs

import "fmt"

// ConfigurationError reports structurally invalid configuration: a regex
// that does not compile, an unknown strategy or lookup-policy name, a
// negative search depth, or a script/strategy mismatch. Raised eagerly at
// validation where detectable, otherwise at first use.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Configuration creates a ConfigurationError with a formatted reason.
func Configuration(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// WrapConfiguration creates a ConfigurationError wrapping an underlying cause.
func WrapConfiguration(reason string, err error) error {
	return &ConfigurationError{Reason: reason, Err: err}
}

// RepositoryAccessError reports a failed read against the underlying
// repository. Surfaced to the caller unchanged and never retried.
type RepositoryAccessError struct {
	Op  string
	Err error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("repository access: %s: %v", e.Op, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

// RepositoryAccess creates a RepositoryAccessError for the given operation.
func RepositoryAccess(op string, err error) error {
	return &RepositoryAccessError{Op: op, Err: err}
}

// DirtyRepositoryError reports uncommitted changes while fail-if-dirty is
// configured. Raised after dirty detection, before any version string is
// constructed.
type DirtyRepositoryError struct {
	Changes int
}

func (e *DirtyRepositoryError) Error() string {
	return fmt.Sprintf("repository has %d uncommitted change(s) and fail-if-dirty is set", e.Changes)
}

// CalculationError reports a script execution failure, a script output that
// violates the expected grammar, or an unresolved template placeholder. The
// underlying engine error, when present, is carried as the cause.
type CalculationError struct {
	Reason string
	Err    error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("version calculation: %s: %v", e.Reason, e.Err)
	}
	return "version calculation: " + e.Reason
}

func (e *CalculationError) Unwrap() error { return e.Err }

// Calculation creates a CalculationError with a formatted reason.
func Calculation(format string, args ...any) error {
	return &CalculationError{Reason: fmt.Sprintf(format, args...)}
}

// WrapCalculation creates a CalculationError wrapping an underlying cause.
func WrapCalculation(reason string, err error) error {
	return &CalculationError{Reason: reason, Err: err}
}
