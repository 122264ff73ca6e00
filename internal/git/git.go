package git

import (
	"context"
	"os/exec"
)

// Client runs git subcommands against one working directory.
// It only looks at exit status and raw output; nothing structured is parsed.
type Client struct {
	repoPath string
	executor CommandExecutor
}

// NewClient creates a Client for repoPath using the given executor.
// A nil executor falls back to ExecExecutor.
func NewClient(repoPath string, executor CommandExecutor) *Client {
	if executor == nil {
		executor = NewExecExecutor()
	}
	return &Client{repoPath: repoPath, executor: executor}
}

// RepoPath returns the working directory the client operates on
func (c *Client) RepoPath() string {
	return c.repoPath
}

// Status runs `git status`; a non-nil error means the path is not usable
// as a repository.
func (c *Client) Status(ctx context.Context) error {
	_, err := c.runWithOutput(ctx, "status")
	return err
}

// Init creates an empty repository in the working directory
func (c *Client) Init(ctx context.Context) error {
	return c.run(ctx, "init")
}

// Add stages a single path
func (c *Client) Add(ctx context.Context, path string) error {
	return c.run(ctx, "add", path)
}

// Commit records the staged changes with the given message
func (c *Client) Commit(ctx context.Context, message string) error {
	return c.run(ctx, "commit", "-m", message)
}

// Push pushes the current branch to its configured upstream and returns
// whatever git printed.
func (c *Client) Push(ctx context.Context) (string, error) {
	return c.runWithOutput(ctx, "push")
}

// SetConfig sets a repository-local config value, e.g. user.name
func (c *Client) SetConfig(ctx context.Context, key, value string) error {
	return c.run(ctx, "config", key, value)
}

// IsAvailable reports whether the git executable can be found in PATH
func IsAvailable(lookPath func(string) (string, error)) bool {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath("git")
	return err == nil
}

// run executes a git command in the repository directory.
func (c *Client) run(ctx context.Context, args ...string) error {
	return c.executor.Execute(ctx, c.command(ctx, args...))
}

// runWithOutput executes a git command and returns its output.
func (c *Client) runWithOutput(ctx context.Context, args ...string) (string, error) {
	return c.executor.ExecuteWithOutput(ctx, c.command(ctx, args...))
}

func (c *Client) command(ctx context.Context, args ...string) *exec.Cmd {
	baseArgs := []string{"-C", c.repoPath}
	cmd := exec.CommandContext(ctx, "git", append(baseArgs, args...)...)
	cmd.Dir = c.repoPath
	return cmd
}
