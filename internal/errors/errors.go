package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks
var (
	// ErrGitOperationFailed indicates a git command returned a non-zero status
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrGitNotFound indicates the git executable is missing from PATH
	ErrGitNotFound = errors.New("git is not found in PATH")

	// ErrInvalidConfiguration indicates an invalid or conflicting configuration value
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrConfigLoad indicates the configuration file could not be read or decoded
	ErrConfigLoad = errors.New("failed to load configuration")

	// ErrLockAcquisitionFailure indicates a lock file could not be acquired
	ErrLockAcquisitionFailure = errors.New("failed to acquire lock")

	// ErrAlreadyRunning indicates another commitbot daemon is running for this repo
	ErrAlreadyRunning = errors.New("another commitbot daemon is already running for this repository")
)

// Wrap prefixes err with message
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf prefixes err with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is is errors.Is
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As
func As(err error, target any) bool { return errors.As(err, target) }

// Join is errors.Join
func Join(errs ...error) error { return errors.Join(errs...) }

// GitError is a failed git invocation: the subcommand, its arguments, the
// process error and whatever git printed on stderr.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

// NewGitError creates a GitError
func NewGitError(operation string, args []string, err error, output string) *GitError {
	return &GitError{Operation: operation, Args: args, Err: err, Output: output}
}

func (e *GitError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "git %s failed", e.Operation)
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString(": " + out)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *GitError) Unwrap() error { return e.Err }

// Detail is what git said about the failure, or the process error when git
// printed nothing.
func (e *GitError) Detail() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return out
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "git " + e.Operation + " failed"
}

// LockError is a failure to take or release the daemon lock. PID is the
// owner found in the lock file, zero when unknown.
type LockError struct {
	LockFile string
	PID      int
	Err      error
}

// NewLockError creates a LockError
func NewLockError(lockFile string, pid int, err error) *LockError {
	return &LockError{LockFile: lockFile, PID: pid, Err: err}
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("lock %s held by PID %d: %v", e.LockFile, e.PID, e.Err)
	}
	return fmt.Sprintf("lock %s: %v", e.LockFile, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

// ConfigError names the configuration key that failed and its value, if any
type ConfigError struct {
	Key   string
	Value interface{}
	Err   error
}

// NewConfigError creates a ConfigError
func NewConfigError(key string, value interface{}, err error) *ConfigError {
	return &ConfigError{Key: key, Value: value, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("config %s=%v: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
