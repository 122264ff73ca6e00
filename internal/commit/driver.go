package commit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bashhack/commitbot/internal/errors"
	"github.com/bashhack/commitbot/internal/git"
	"github.com/bashhack/commitbot/internal/logger"
)

// DefaultMaxFiles is the upper bound of files rewritten per commit
const DefaultMaxFiles = 2

// ContentSource produces the body written to a file
type ContentSource interface {
	Generate(filename string) string
}

// DriverOptions holds the dependencies and pools of a Driver
type DriverOptions struct {
	Git     *git.Client
	Fs      afero.Fs
	Content ContentSource
	Logger  logger.Logger
	Rand    *rand.Rand

	Messages []string
	Files    []string
	MaxFiles int

	// DetectByGitDir makes EnsureRepository look for a .git entry instead
	// of asking `git status`
	DetectByGitDir bool
}

// Driver performs one commit cycle: write files, stage them, commit
type Driver struct {
	git     *git.Client
	fs      afero.Fs
	content ContentSource
	logger  logger.Logger
	rnd     *rand.Rand

	messages       []string
	files          []string
	maxFiles       int
	detectByGitDir bool
}

// Result describes a commit that was created
type Result struct {
	Message string
	Files   []string
}

// NewDriver creates a Driver, filling in the real filesystem and a seeded
// random source when none are given.
func NewDriver(opts DriverOptions) *Driver {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not security sensitive
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}

	return &Driver{
		git:            opts.Git,
		fs:             opts.Fs,
		content:        opts.Content,
		logger:         opts.Logger,
		rnd:            opts.Rand,
		messages:       opts.Messages,
		files:          opts.Files,
		maxFiles:       opts.MaxFiles,
		detectByGitDir: opts.DetectByGitDir,
	}
}

// EnsureRepository initializes a repository in the working directory when
// there is none. A failing `git init` is returned.
func (d *Driver) EnsureRepository(ctx context.Context) error {
	if d.isRepository(ctx) {
		return nil
	}

	if d.detectByGitDir {
		d.logger.InfoToUser("Initializing git repository...")
	} else {
		d.logger.WarningToUser("Not a git repository. Initializing...")
	}
	if err := d.fs.MkdirAll(d.git.RepoPath(), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", d.git.RepoPath())
	}
	if err := d.git.Init(ctx); err != nil {
		return err
	}
	d.logger.Success("Git repository initialized")
	return nil
}

func (d *Driver) isRepository(ctx context.Context) bool {
	if d.detectByGitDir {
		ok, err := afero.Exists(d.fs, filepath.Join(d.git.RepoPath(), ".git"))
		return err == nil && ok
	}

	if err := d.git.Status(ctx); err != nil {
		d.logger.Warning("git status failed, treating %s as not a repository: %v", d.git.RepoPath(), err)
		return false
	}
	return true
}

// ConfigureIdentity sets user.name and user.email in the repository.
// Failures are reported and otherwise ignored.
func (d *Driver) ConfigureIdentity(ctx context.Context, name, email string) {
	if err := d.git.SetConfig(ctx, "user.name", name); err != nil {
		d.logger.Error("Error setting git config: %v", err)
		return
	}
	if err := d.git.SetConfig(ctx, "user.email", email); err != nil {
		d.logger.Error("Error setting git config: %v", err)
		return
	}
	d.logger.Success("Git configuration updated")
}

// MakeCommit ensures the repository exists, rewrites one or two files from
// the pool and commits them. The first failing step aborts the cycle; no
// retry and no rollback happen.
func (d *Driver) MakeCommit(ctx context.Context) (*Result, error) {
	if len(d.files) == 0 || len(d.messages) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidConfiguration, "file and message pools must not be empty")
	}

	if err := d.EnsureRepository(ctx); err != nil {
		return nil, err
	}

	files := d.pickFiles()
	for _, name := range files {
		if err := d.write(name); err != nil {
			return nil, err
		}
	}

	for _, name := range files {
		if err := d.git.Add(ctx, name); err != nil {
			return nil, err
		}
	}

	message := d.messages[d.rnd.IntN(len(d.messages))]
	if len(files) > 1 {
		message = fmt.Sprintf("%s (%s)", message, strings.Join(files, ", "))
	}

	if err := d.git.Commit(ctx, message); err != nil {
		return nil, err
	}

	d.logger.Info("committed %d files: %s", len(files), message)
	return &Result{Message: message, Files: files}, nil
}

// pickFiles selects 1..maxFiles distinct names, never more than the pool holds
func (d *Driver) pickFiles() []string {
	n := 1 + d.rnd.IntN(d.maxFiles)
	if n > len(d.files) {
		n = len(d.files)
	}

	picked := make([]string, 0, n)
	for _, idx := range d.rnd.Perm(len(d.files))[:n] {
		picked = append(picked, d.files[idx])
	}
	return picked
}

func (d *Driver) write(name string) error {
	path := filepath.Join(d.git.RepoPath(), name)
	if err := afero.WriteFile(d.fs, path, []byte(d.content.Generate(name)), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	d.logger.StatusMessage("Created/updated: %s", name)
	d.logger.Info("wrote %s", path)
	return nil
}
