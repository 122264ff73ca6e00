package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bashhack/commitbot/internal/errors"
)

// Options are the command-line options of the commitbot binary
type Options struct {
	Path       string `short:"p" long:"path" env:"COMMITBOT_PATH" default:"." description:"path to the git repository"`
	ConfigFile string `short:"c" long:"config" env:"COMMITBOT_CONFIG" default:"config.json" description:"configuration file"`

	Daemon bool `short:"d" long:"daemon" description:"run the scheduler until interrupted"`
	Commit bool `long:"commit" description:"make one commit now"`
	Setup  bool `short:"s" long:"setup" description:"prompt for the git identity and save it to the config"`

	Push           bool          `long:"push" description:"push after every commit without asking"`
	NonInteractive bool          `long:"non-interactive" env:"COMMITBOT_NON_INTERACTIVE" description:"answer no to every prompt"`
	Poll           time.Duration `long:"poll" env:"COMMITBOT_POLL" default:"1m" description:"how often the scheduler checks for due commits"`

	Debug   bool   `long:"dbg" env:"DEBUG" description:"write a debug log"`
	LogFile string `long:"log-file" env:"COMMITBOT_LOG_FILE" description:"debug log location"`
	NoColor bool   `long:"no-color" env:"NO_COLOR" description:"disable color output"`
	Version bool   `short:"V" long:"version" description:"show version info"`
}

// Mode is the action selected on the command line
type Mode int

// Modes in precedence order
const (
	ModeUsage Mode = iota
	ModeSetup
	ModeCommit
	ModeDaemon
)

// Mode resolves the selected action: setup wins over commit, commit over
// daemon. Without any of them the usage text is shown.
func (o *Options) Mode() Mode {
	switch {
	case o.Setup:
		return ModeSetup
	case o.Commit:
		return ModeCommit
	case o.Daemon:
		return ModeDaemon
	default:
		return ModeUsage
	}
}

// Finalize resolves the repository path to an absolute one and picks a
// per-repository log file under the XDG data directory when none was set.
func (o *Options) Finalize() error {
	if o.Poll <= 0 {
		return errors.NewConfigError("poll", o.Poll, errors.Wrap(errors.ErrInvalidConfiguration, "must be greater than 0"))
	}

	if o.Path == "" {
		o.Path = "."
	}
	abs, err := filepath.Abs(o.Path)
	if err != nil {
		return errors.NewConfigError("path", o.Path, errors.Wrap(err, "failed to resolve absolute path"))
	}
	o.Path = abs

	if o.LogFile == "" {
		o.LogFile = defaultLogFile(o.Path)
		if o.Debug {
			if err := os.MkdirAll(filepath.Dir(o.LogFile), 0o700); err != nil {
				return errors.NewConfigError("log-file", o.LogFile, errors.Wrap(err, "cannot create log directory"))
			}
		}
	}

	return nil
}

// defaultLogFile follows the XDG base directory layout
func defaultLogFile(repoPath string) string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataDir = filepath.Join(home, ".local", "share")
		} else {
			dataDir = os.TempDir()
		}
	}

	sum := sha256.Sum256([]byte(repoPath))
	return filepath.Join(dataDir, "commitbot", "logs", fmt.Sprintf("commitbot-%x.log", sum[:8]))
}
