// Package git is commitbot's boundary to the git executable.
//
// commitbot shells out to the command-line git rather than linking a Go git
// library, so repository behavior matches whatever the user's git does.
// Every invocation has the shape
//
//	git -C <repo> <subcommand> [args...]
//
// and goes through a CommandExecutor, which tests replace with
// MockCommandExecutor. Only exit status and raw stdout/stderr are consumed;
// a non-zero exit becomes an *errors.GitError wrapping
// errors.ErrGitOperationFailed with the captured stderr.
//
// Commands are created with exec.CommandContext, so cancelling the context
// (for example on SIGINT) also terminates a git process that hangs.
package git
