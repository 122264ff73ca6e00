package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/bashhack/commitbot/internal/errors"
)

// Locker keeps a second daemon from committing to the same repository
type Locker struct {
	path string
	file *os.File
	pid  int
	held bool
}

// New returns a Locker for repoPath. The lock file lives in dir, or the
// system temp directory when dir is empty.
func New(repoPath, dir string) (*Locker, error) {
	if runtime.GOOS == "windows" {
		return nil, errors.NewLockError("", 0,
			errors.Wrap(errors.ErrLockAcquisitionFailure, "file locking is only supported on Unix-like systems"))
	}
	if dir == "" {
		dir = os.TempDir()
	}

	sum := sha256.Sum256([]byte(repoPath))
	return &Locker{
		path: filepath.Join(dir, fmt.Sprintf("commitbot-%x.lock", sum[:8])),
		pid:  os.Getpid(),
	}, nil
}

// Path is the lock file location
func (l *Locker) Path() string {
	return l.path
}

// Acquire takes the lock, recovering it when the recorded owner is gone.
// A live owner yields a LockError wrapping ErrAlreadyRunning.
func (l *Locker) Acquire() error {
	if l.held {
		return nil
	}

	err := l.create()
	if err == nil || !os.IsExist(err) {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_RDWR, 0o644)
	if err != nil {
		return errors.NewLockError(l.path, 0, errors.Wrap(err, "failed to open existing lock file"))
	}
	l.file = f

	if err := l.flock(); err != nil {
		l.closeFile()
		if errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN) {
			return l.blocked()
		}
		return errors.NewLockError(l.path, 0, errors.Wrap(err, "failed to lock existing lock file"))
	}

	// the previous owner exited without removing the file
	if err := l.file.Truncate(0); err != nil {
		return l.abandon(errors.NewLockError(l.path, l.pid, errors.Wrap(err, "failed to truncate lock file")))
	}
	return l.claim()
}

// create makes a fresh lock file. An existing file is reported as the raw
// os error so callers can test it with os.IsExist.
func (l *Locker) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return err
		}
		return errors.NewLockError(l.path, 0, errors.Wrap(err, "failed to create lock file"))
	}
	l.file = f

	if err := l.flock(); err != nil {
		l.closeFile()
		return errors.NewLockError(l.path, 0, errors.Wrap(err, "failed to lock new lock file"))
	}
	return l.claim()
}

// blocked handles a lock file another descriptor holds
func (l *Locker) blocked() error {
	owner, err := l.owner()
	if err != nil {
		return errors.NewLockError(l.path, 0,
			errors.Wrap(errors.ErrAlreadyRunning, "lock is held but its owner could not be read"))
	}
	if processAlive(owner) {
		return errors.NewLockError(l.path, owner, errors.ErrAlreadyRunning)
	}

	if err := os.Remove(l.path); err != nil {
		return errors.NewLockError(l.path, owner,
			errors.Wrapf(err, "failed to remove stale lock left by PID %d", owner))
	}
	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return errors.NewLockError(l.path, 0,
				errors.Wrap(errors.ErrAlreadyRunning, "lock was taken right after stale lock removal"))
		}
		return err
	}
	return nil
}

func (l *Locker) flock() error {
	return syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// claim records our PID and marks the lock as held
func (l *Locker) claim() error {
	if _, err := l.file.WriteAt([]byte(strconv.Itoa(l.pid)), 0); err != nil {
		return l.abandon(errors.NewLockError(l.path, l.pid, errors.Wrap(err, "failed to write PID to lock file")))
	}
	l.held = true
	return nil
}

// abandon releases whatever was taken and returns cause
func (l *Locker) abandon(cause error) error {
	if err := l.Release(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (l *Locker) owner() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read lock file")
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrap(err, "invalid PID in lock file")
	}
	return pid, nil
}

func (l *Locker) closeFile() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

// processAlive probes pid with signal 0
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// Release unlocks and removes the lock file. It is a no-op when nothing
// is held, so it is safe to defer.
func (l *Locker) Release() error {
	if l.file == nil {
		return nil
	}

	var errs []error
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		errs = append(errs, errors.NewLockError(l.path, l.pid, errors.Wrap(err, "failed to unlock")))
	}
	if err := l.file.Close(); err != nil {
		errs = append(errs, errors.NewLockError(l.path, l.pid, errors.Wrap(err, "failed to close lock file")))
	}
	l.file = nil
	l.held = false

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		errs = append(errs, errors.NewLockError(l.path, l.pid, errors.Wrap(err, "failed to remove lock file")))
	}

	return errors.Join(errs...)
}
