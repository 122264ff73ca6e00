//go:build integration
// +build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// gitEnv gives commits an author even on machines without a global identity
var gitEnv = []string{
	"GIT_AUTHOR_NAME=Test User",
	"GIT_AUTHOR_EMAIL=test@example.com",
	"GIT_COMMITTER_NAME=Test User",
	"GIT_COMMITTER_EMAIL=test@example.com",
	"GIT_CONFIG_NOSYSTEM=1",
	"NO_COLOR=1",
}

func skipUnlessEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv("COMMITBOT_INTEGRATION_TESTS") != "1" {
		t.Skip("Skipping integration test; set COMMITBOT_INTEGRATION_TESTS=1 to run")
	}
}

// setupTestRepo creates a git repository with one commit
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(dir, "initial.txt"), []byte("Initial content"), 0o644); err != nil {
		t.Fatalf("Failed to create initial file: %v", err)
	}
	runGit(t, dir, "add", "initial.txt")
	runGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(), gitEnv...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

func commitCount(t *testing.T, dir string) int {
	t.Helper()

	n, err := strconv.Atoi(runGit(t, dir, "rev-list", "--count", "HEAD"))
	if err != nil {
		t.Fatalf("Failed to parse commit count: %v", err)
	}
	return n
}

// buildBinary builds one of the commands into build/ unless it is already there
func buildBinary(t *testing.T, name string) string {
	t.Helper()

	bin, err := filepath.Abs(filepath.Join("..", "..", "build", name))
	if err != nil {
		t.Fatalf("Failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/"+name)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build %s binary: %v\n%s", name, err, out)
		}
	}
	return bin
}
