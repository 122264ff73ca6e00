package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bashhack/commitbot/internal/errors"
)

// MockCommandExecutor records commands instead of running them.
// Failures are configured per subcommand through FailOn.
type MockCommandExecutor struct {
	Commands []*exec.Cmd

	// Output returned by ExecuteWithOutput, keyed by subcommand
	Output map[string]string

	// FailOn maps a subcommand (status, init, add, commit, push, config)
	// to the stderr text returned with a failure
	FailOn map[string]string

	// Function hooks for customizing behavior
	ExecuteFn           func(ctx context.Context, cmd *exec.Cmd) error
	ExecuteWithOutputFn func(ctx context.Context, cmd *exec.Cmd) (string, error)
}

// NewMockCommandExecutor creates a mock executor where every command succeeds
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Output: map[string]string{},
		FailOn: map[string]string{},
	}
}

// Execute implements the CommandExecutor interface
func (m *MockCommandExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	m.Commands = append(m.Commands, cmd)
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return m.failure(cmd)
}

// ExecuteWithOutput implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	m.Commands = append(m.Commands, cmd)
	if m.ExecuteWithOutputFn != nil {
		return m.ExecuteWithOutputFn(ctx, cmd)
	}
	if err := m.failure(cmd); err != nil {
		return "", err
	}
	return m.Output[Subcommand(cmd)], nil
}

// Subcommands returns the recorded git subcommands in call order
func (m *MockCommandExecutor) Subcommands() []string {
	out := make([]string, 0, len(m.Commands))
	for _, cmd := range m.Commands {
		out = append(out, Subcommand(cmd))
	}
	return out
}

// Invocations returns each recorded command without the `git -C <repo>`
// prefix, joined by spaces, e.g. "add notes.md".
func (m *MockCommandExecutor) Invocations() []string {
	out := make([]string, 0, len(m.Commands))
	for _, cmd := range m.Commands {
		if len(cmd.Args) > 3 {
			out = append(out, strings.Join(cmd.Args[3:], " "))
		}
	}
	return out
}

func (m *MockCommandExecutor) failure(cmd *exec.Cmd) error {
	sub := Subcommand(cmd)
	stderr, ok := m.FailOn[sub]
	if !ok || sub == "" {
		return nil
	}
	return errors.NewGitError(sub, cmd.Args[4:],
		errors.Wrap(errors.ErrGitOperationFailed, "exit status 1"), stderr)
}

// Subcommand extracts the git subcommand from a `git -C <repo> <sub> ...` command
func Subcommand(cmd *exec.Cmd) string {
	if len(cmd.Args) > 3 {
		return cmd.Args[3]
	}
	return ""
}
