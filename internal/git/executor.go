package git

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/bashhack/commitbot/internal/errors"
)

// CommandExecutor runs prepared git commands
type CommandExecutor interface {
	// Execute runs a command and reports a non-zero exit as an error
	Execute(ctx context.Context, cmd *exec.Cmd) error

	// ExecuteWithOutput runs a command and returns its stdout
	ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute.
// stderr is captured so a failure carries the tool's own explanation.
func (e *ExecExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	_, err := e.ExecuteWithOutput(ctx, cmd)
	return err
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// commands are built with exec.CommandContext, so a cancelled
		// context shows up here as a killed process
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", newCommandError(cmd, err, stderr.String())
	}

	return stdout.String(), nil
}

// newCommandError wraps err in a GitError naming the git subcommand.
// Args look like: git -C <repo> <subcommand> ...
func newCommandError(cmd *exec.Cmd, err error, output string) error {
	operation := ""
	var args []string
	if len(cmd.Args) > 3 {
		operation = cmd.Args[3]
		args = cmd.Args[4:]
	} else if len(cmd.Args) > 1 {
		operation = cmd.Args[1]
		args = cmd.Args[2:]
	}

	wrapped := errors.Wrap(errors.ErrGitOperationFailed, err.Error())
	return errors.NewGitError(operation, args, &commandFailure{wrapped: wrapped, cause: err}, output)
}

// commandFailure keeps both the sentinel chain and the original
// *exec.ExitError reachable through errors.Is / errors.As.
type commandFailure struct {
	wrapped error
	cause   error
}

func (c *commandFailure) Error() string { return c.wrapped.Error() }

func (c *commandFailure) Unwrap() []error { return []error{c.wrapped, c.cause} }
