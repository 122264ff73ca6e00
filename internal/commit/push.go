package commit

import (
	"context"

	"github.com/bashhack/commitbot/internal/errors"
	"github.com/bashhack/commitbot/internal/git"
	"github.com/bashhack/commitbot/internal/logger"
)

// Pusher uploads local commits to the configured remote
type Pusher struct {
	git    *git.Client
	logger logger.Logger
}

// NewPusher creates a Pusher
func NewPusher(client *git.Client, log logger.Logger) *Pusher {
	return &Pusher{git: client, logger: log}
}

// Attempt runs `git push` once and returns its failure without printing
// anything. Callers that word their own console messages use it.
func (p *Pusher) Attempt(ctx context.Context) error {
	if _, err := p.git.Push(ctx); err != nil {
		p.logger.Info("push error: %v", err)
		return err
	}
	p.logger.Info("pushed %s", p.git.RepoPath())
	return nil
}

// Push runs `git push` once. Failure is reported with git's stderr and
// returned as false, never as an error.
func (p *Pusher) Push(ctx context.Context) bool {
	if err := p.Attempt(ctx); err != nil {
		p.logger.WarningToUser("Push failed: %s", pushFailureText(err))
		return false
	}

	p.logger.Success("Commits pushed to remote repository")
	return true
}

func pushFailureText(err error) string {
	var gitErr *errors.GitError
	if errors.As(err, &gitErr) {
		return gitErr.Detail()
	}
	return err.Error()
}
