package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bashhack/commitbot/internal/commit"
	"github.com/bashhack/commitbot/internal/config"
	"github.com/bashhack/commitbot/internal/content"
	"github.com/bashhack/commitbot/internal/git"
	"github.com/bashhack/commitbot/internal/logger"
	"github.com/bashhack/commitbot/internal/prompt"
)

// activityFile is the single file quickcommit rewrites
const activityFile = "activity_log.md"

// deps are the collaborators of one quickcommit run
type deps struct {
	Dir        string
	Executor   git.CommandExecutor
	Fs         afero.Fs
	Interactor prompt.Interactor
	Rand       *rand.Rand
	Clock      func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
}

func defaultDeps() deps {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return deps{
		Dir:        dir,
		Fs:         afero.NewOsFs(),
		Interactor: prompt.NewDefaultInteractor(),
		Rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // not security sensitive
		Clock:      time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func newRootCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:           "quickcommit",
		Short:         "Commit a fresh activity log in the current directory",
		Long:          "quickcommit rewrites activity_log.md in the current directory, commits it and offers to push.",
		Version:       revision,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), d)
		},
	}
}

// run performs one commit cycle and asks whether to push it
func run(ctx context.Context, d deps) error {
	log := logger.NewWithOutput(false, "", false, d.Stdout, d.Stderr)
	defer func() { _ = log.Close() }()

	log.StatusMessage("🤖 Simple Auto Commit Script")
	log.StatusMessage(strings.Repeat("=", 30))

	client := git.NewClient(d.Dir, d.Executor)
	driver := commit.NewDriver(commit.DriverOptions{
		Git:            client,
		Fs:             d.Fs,
		Content:        content.ActivitySource{Generator: content.New(content.WithRand(d.Rand), content.WithClock(d.Clock))},
		Logger:         log,
		Rand:           d.Rand,
		Messages:       config.SimpleCommitMessages,
		Files:          []string{activityFile},
		MaxFiles:       1,
		DetectByGitDir: true,
	})

	res, err := driver.MakeCommit(ctx)
	if err != nil {
		log.Error("Error: %v", err)
		return err
	}
	log.Success("Commit successful: %s", res.Message)

	if d.Interactor.PromptYesNo("Push to remote repository?") {
		if err := commit.NewPusher(client, log).Attempt(ctx); err != nil {
			log.WarningToUser("Push failed - make sure remote is configured")
			return nil
		}
		log.Success("Pushed to remote repository")
	}
	return nil
}
