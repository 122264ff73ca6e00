package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/afero"

	"github.com/bashhack/commitbot/internal/commit"
	"github.com/bashhack/commitbot/internal/config"
	"github.com/bashhack/commitbot/internal/content"
	"github.com/bashhack/commitbot/internal/errors"
	"github.com/bashhack/commitbot/internal/git"
	"github.com/bashhack/commitbot/internal/lock"
	"github.com/bashhack/commitbot/internal/logger"
	"github.com/bashhack/commitbot/internal/prompt"
	"github.com/bashhack/commitbot/internal/schedule"
)

// Locker manages file locking
type Locker interface {
	Acquire() error
	Release() error
}

// AppOptions contains app configuration and dependencies.
// Everything except Options is optional and gets a default in Initialize.
type AppOptions struct {
	// Options are the parsed command-line options (required)
	Options *config.Options

	Revision string

	Logger     logger.Logger
	Locker     Locker
	Executor   git.CommandExecutor
	Fs         afero.Fs
	Interactor prompt.Interactor

	// Rand and Clock drive content, file and slot selection
	Rand  *rand.Rand
	Clock func() time.Time

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Exit         func(code int)
	ExecLookPath func(file string) (string, error)
}

// App is the commitbot application. It wires the configuration, the commit
// driver and the scheduler together and owns their lifecycle.
type App struct {
	Options *config.Options
	Config  *config.Config

	Logger     logger.Logger
	Locker     Locker
	Interactor prompt.Interactor
	Scheduler  *schedule.Scheduler

	Stdout io.Writer
	Stderr io.Writer

	revision     string
	executor     git.CommandExecutor
	fs           afero.Fs
	rnd          *rand.Rand
	clock        func() time.Time
	stdin        io.Reader
	exit         func(code int)
	execLookPath func(file string) (string, error)

	driver *commit.Driver
	pusher *commit.Pusher
}

// NewApp creates an App from opts. It panics when opts.Options is nil.
func NewApp(opts AppOptions) *App {
	if opts.Options == nil {
		panic("Options is required in AppOptions")
	}

	app := &App{
		Options:      opts.Options,
		Logger:       opts.Logger,
		Locker:       opts.Locker,
		Interactor:   opts.Interactor,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		revision:     opts.Revision,
		executor:     opts.Executor,
		fs:           opts.Fs,
		rnd:          opts.Rand,
		clock:        opts.Clock,
		stdin:        opts.Stdin,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
	}

	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.fs == nil {
		app.fs = afero.NewOsFs()
	}
	if app.clock == nil {
		app.clock = time.Now
	}
	if app.rnd == nil {
		app.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not security sensitive
	}

	return app
}

// Initialize finalizes the options, loads the configuration and builds the
// components that were not injected.
func (a *App) Initialize() error {
	if err := a.Options.Finalize(); err != nil {
		if errors.Is(err, errors.ErrInvalidConfiguration) {
			return err
		}
		return errors.Wrap(errors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		l := logger.NewWithOutput(a.Options.Debug, a.Options.LogFile, a.Options.Debug, a.Stdout, a.Stderr)
		l.SetColor(!a.Options.NoColor)
		a.Logger = l
	}
	a.Logger.Info("commitbot %s, repository %s, config %s", a.revision, a.Options.Path, a.Options.ConfigFile)

	if a.Config == nil {
		a.Config = config.LoadOrDefault(a.fs, a.Options.ConfigFile, a.Logger)
	}

	if a.Interactor == nil {
		if a.Options.NonInteractive {
			a.Interactor = prompt.NewNonInteractive()
		} else {
			a.Interactor = prompt.NewInteractor(a.stdin, a.Stdout)
		}
	}

	client := git.NewClient(a.Options.Path, a.executor)
	a.driver = commit.NewDriver(commit.DriverOptions{
		Git:      client,
		Fs:       a.fs,
		Content:  content.New(content.WithRand(a.rnd), content.WithClock(a.clock)),
		Logger:   a.Logger,
		Rand:     a.rnd,
		Messages: a.Config.CommitMessages,
		Files:    a.Config.FileTypes,
	})
	a.pusher = commit.NewPusher(client, a.Logger)

	return nil
}

// Run executes the mode selected on the command line
func (a *App) Run(ctx context.Context) error {
	switch a.Options.Mode() {
	case config.ModeSetup:
		return a.Setup()
	case config.ModeCommit:
		if err := a.checkRequiredCommands(); err != nil {
			return err
		}
		return a.ManualCommit(ctx)
	case config.ModeDaemon:
		if err := a.checkRequiredCommands(); err != nil {
			return err
		}
		return a.Daemon(ctx)
	default:
		a.PrintUsage()
		return nil
	}
}

// Setup asks for the git identity and stores it in the config file.
// Empty answers keep the current values. Only the identity keys are
// changed on disk, even when the file did not load.
func (a *App) Setup() error {
	a.Logger.StatusMessage("🔧 Setting up GitHub Commit Bot...")

	username := a.Interactor.Prompt("GitHub username")
	email := a.Interactor.Prompt("GitHub email")

	if err := config.SaveIdentity(a.fs, a.Options.ConfigFile, username, email); err != nil {
		return err
	}
	if username != "" {
		a.Config.GithubUsername = username
	}
	if email != "" {
		a.Config.GithubEmail = email
	}

	a.Logger.Success("Configuration saved!")
	return nil
}

// ManualCommit makes one commit now and then pushes, either automatically
// or after asking.
func (a *App) ManualCommit(ctx context.Context) error {
	a.Logger.StatusMessage("🔧 Making manual commit...")

	if err := a.commitOnce(ctx); err != nil {
		return errors.Wrap(err, "error making commit")
	}

	if a.autoPush() || a.Interactor.PromptYesNo("Push to remote?") {
		a.pusher.Push(ctx)
	}
	return nil
}

// Daemon schedules commits and runs them until ctx is cancelled
func (a *App) Daemon(ctx context.Context) error {
	a.Logger.StatusMessage("🚀 Starting GitHub Commit Bot...")
	a.Logger.StatusMessage("📂 Repository path: %s", a.Options.Path)

	if a.Locker == nil {
		locker, err := lock.New(a.Options.Path, "")
		if err != nil {
			return errors.Wrap(err, "failed to initialize lock")
		}
		a.Locker = locker
	}
	if err := a.Locker.Acquire(); err != nil {
		if errors.Is(err, errors.ErrAlreadyRunning) {
			return err
		}
		return errors.Wrap(errors.ErrLockAcquisitionFailure, err.Error())
	}

	// every scheduled commit retries the repository setup, so a failure here
	// only costs the identity step
	if err := a.driver.EnsureRepository(ctx); err != nil {
		a.Logger.Error("Error preparing repository: %v", err)
	} else if a.Config.HasIdentity() {
		a.driver.ConfigureIdentity(ctx, a.Config.GithubUsername, a.Config.GithubEmail)
	} else {
		a.Logger.WarningToUser("Please update github_username and github_email in the config file")
	}

	schedCfg := a.Config.ScheduleConfig()
	schedCfg.PollInterval = a.Options.Poll
	sched, err := schedule.New(schedCfg, a.Logger, schedule.WithRand(a.rnd), schedule.WithClock(a.clock))
	if err != nil {
		return err
	}
	a.Scheduler = sched
	sched.Register(a.scheduledCommit)
	if next, ok := nextRun(sched.Triggers()); ok {
		a.Logger.StatusMessage("⏭️  Next commit: %s", next.Format("Mon Jan 2 15:04"))
	}

	a.Logger.StatusMessage("⏰ Bot is running. Press Ctrl+C to stop.")
	err = sched.Run(ctx)
	a.Logger.StatusMessage("\n🛑 Bot stopped")
	sched.PrintSummary()

	if ctx.Err() != nil {
		return nil
	}
	return err
}

// scheduledCommit is the action fired by the scheduler. It never prompts.
func (a *App) scheduledCommit(ctx context.Context) error {
	if err := a.commitOnce(ctx); err != nil {
		return err
	}
	if a.autoPush() {
		a.pusher.Push(ctx)
	}
	return nil
}

func (a *App) commitOnce(ctx context.Context) error {
	res, err := a.driver.MakeCommit(ctx)
	if err != nil {
		return err
	}
	a.Logger.Success("Commit created: %s", res.Message)
	return nil
}

// nextRun is the earliest due time among triggers
func nextRun(triggers []schedule.Trigger) (time.Time, bool) {
	var next time.Time
	for _, t := range triggers {
		if next.IsZero() || t.NextRun.Before(next) {
			next = t.NextRun
		}
	}
	return next, !next.IsZero()
}

func (a *App) autoPush() bool {
	return a.Options.Push || a.Config.AutoPush
}

// PrintUsage shows the available modes
func (a *App) PrintUsage() {
	_, _ = fmt.Fprintln(a.Stdout, "GitHub Commit Bot")
	_, _ = fmt.Fprintln(a.Stdout, "Usage:")
	_, _ = fmt.Fprintln(a.Stdout, "  commitbot --setup     # Initial setup")
	_, _ = fmt.Fprintln(a.Stdout, "  commitbot --commit    # Manual commit")
	_, _ = fmt.Fprintln(a.Stdout, "  commitbot --daemon    # Run as daemon")
}

// ShowVersion prints the build revision
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "Version: %s\nGolang: %s\n", a.revision, runtime.Version())
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	if !git.IsAvailable(a.execLookPath) {
		return errors.ErrGitNotFound
	}
	return nil
}

// Close releases the lock and the log file
func (a *App) Close() error {
	var errs []error

	if a.Locker != nil {
		if err := a.Locker.Release(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("Failed to release lock during cleanup: %v", err)
			} else {
				_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to release lock during cleanup: %v\n", err)
			}
			errs = append(errs, err)
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to close logger: %v\n", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
