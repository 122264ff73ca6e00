package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/commitbot/internal/errors"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestClientBuildsCommands(t *testing.T) {
	mock := NewMockCommandExecutor()
	client := NewClient("/tmp/repo", mock)
	ctx := context.Background()

	require.NoError(t, client.Status(ctx))
	require.NoError(t, client.Init(ctx))
	require.NoError(t, client.Add(ctx, "notes.md"))
	require.NoError(t, client.Commit(ctx, "🎯 Daily progress"))
	_, err := client.Push(ctx)
	require.NoError(t, err)
	require.NoError(t, client.SetConfig(ctx, "user.name", "octocat"))

	assert.Equal(t, []string{
		"status",
		"init",
		"add notes.md",
		"commit -m 🎯 Daily progress",
		"push",
		"config user.name octocat",
	}, mock.Invocations())

	for _, cmd := range mock.Commands {
		assert.Equal(t, []string{"git", "-C", "/tmp/repo"}, cmd.Args[:3])
		assert.Equal(t, "/tmp/repo", cmd.Dir)
	}
}

func TestClientPropagatesFailures(t *testing.T) {
	mock := NewMockCommandExecutor()
	mock.FailOn["commit"] = "nothing to commit, working tree clean"
	client := NewClient("/tmp/repo", mock)

	err := client.Commit(context.Background(), "msg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrGitOperationFailed))

	var gitErr *errors.GitError
	require.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "commit", gitErr.Operation)
	assert.Contains(t, gitErr.Output, "nothing to commit")
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, IsAvailable(func(string) (string, error) { return "/usr/bin/git", nil }))
	assert.False(t, IsAvailable(func(string) (string, error) { return "", assert.AnError }))
}

func TestExecExecutorAgainstRealGit(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	client := NewClient(dir, nil)
	ctx := context.Background()

	require.Error(t, client.Status(ctx), "empty temp dir must not be a repository")
	require.NoError(t, client.Init(ctx))
	require.NoError(t, client.Status(ctx))

	require.NoError(t, client.SetConfig(ctx, "user.name", "Test User"))
	require.NoError(t, client.SetConfig(ctx, "user.email", "test@example.com"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes\n"), 0o644))
	require.NoError(t, client.Add(ctx, "notes.md"))
	require.NoError(t, client.Commit(ctx, "📋 Update documentation"))

	out, err := exec.Command("git", "-C", dir, "log", "--pretty=format:%s").Output()
	require.NoError(t, err)
	assert.Equal(t, "📋 Update documentation", string(out))

	t.Run("failure carries stderr and exit error", func(t *testing.T) {
		err := client.Add(ctx, "missing.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrGitOperationFailed))

		var gitErr *errors.GitError
		require.True(t, errors.As(err, &gitErr))
		assert.Equal(t, "add", gitErr.Operation)
		assert.Contains(t, gitErr.Output, "missing.txt")

		var exitErr *exec.ExitError
		assert.True(t, errors.As(err, &exitErr))
	})

	t.Run("push without remote fails", func(t *testing.T) {
		_, err := client.Push(ctx)
		assert.Error(t, err)
	})
}

func TestExecExecutorCancelledContext(t *testing.T) {
	requireGit(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(t.TempDir(), nil)
	err := client.Init(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
