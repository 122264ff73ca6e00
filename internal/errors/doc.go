// Package errors provides the error vocabulary shared by commitbot packages.
//
// It defines sentinel errors for errors.Is checks and typed errors that carry
// context about the failing operation:
//
//   - GitError: a git subcommand exited non-zero; holds the tool's stderr
//   - ConfigError: a configuration key failed validation
//   - LockError: the daemon lock could not be acquired or released
//
// Typical usage when a git call fails:
//
//	if err := cmd.Run(); err != nil {
//	    return errors.NewGitError("commit", args,
//	        errors.Wrap(errors.ErrGitOperationFailed, err.Error()), stderr)
//	}
//
// Callers then branch on the category rather than on message text:
//
//	if errors.Is(err, errors.ErrGitOperationFailed) {
//	    logger.WarningToUser("Commit aborted: %v", err)
//	}
package errors
