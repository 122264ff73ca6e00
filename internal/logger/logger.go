package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
)

// Logger defines the logging interface used throughout commitbot.
// It separates internal diagnostics (Info, Warning, Error) that go to the
// log file from console messages meant for the person running the bot
// (InfoToUser, WarningToUser, Success, StatusMessage).
type Logger interface {
	// Info logs an informational message to the log file only.
	Info(format string, args ...interface{})

	// Warning logs a warning to the log file; it is echoed to the console
	// when verbose output is on.
	Warning(format string, args ...interface{})

	// Error logs an error to the log file and always prints it to stderr.
	Error(format string, args ...interface{})

	// InfoToUser logs an informational message and prints it to stdout.
	InfoToUser(format string, args ...interface{})

	// WarningToUser logs a warning and prints it to stdout.
	WarningToUser(format string, args ...interface{})

	// Success logs a success message and prints it to stdout in green.
	Success(format string, args ...interface{})

	// StatusMessage prints a plain status line to stdout without logging it.
	StatusMessage(format string, args ...interface{})

	// Close flushes and closes the log file, if one is open.
	Close() error
}

// DefaultLogger writes diagnostics through lgr to a log file and styles
// console output with fatih/color.
type DefaultLogger struct {
	mu      sync.Mutex
	log     *lgr.Logger
	enabled bool
	logFile string
	verbose bool
	colored bool
	stdout  io.Writer
	stderr  io.Writer
	file    *os.File
}

// NewWithOutput creates a DefaultLogger with custom output writers
func NewWithOutput(enabled bool, logFile string, verbose bool, stdout, stderr io.Writer) *DefaultLogger {
	l := &DefaultLogger{
		enabled: enabled,
		logFile: logFile,
		verbose: verbose,
		colored: !color.NoColor,
		stdout:  stdout,
		stderr:  stderr,
	}

	if !enabled {
		l.log = lgr.New(lgr.Out(io.Discard), lgr.Err(io.Discard))
		return l
	}

	logDir := filepath.Dir(logFile)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			_, _ = fmt.Fprintf(stderr, "⚠️ Failed to create log directory: %v\n", err)
		}
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.log = lgr.New(lgr.Out(stderr), lgr.Err(io.Discard), lgr.Msec, lgr.LevelBraces)
		_, _ = fmt.Fprintf(stderr, "⚠️ Failed to open log file: %v, using stderr instead\n", err)
		return l
	}

	l.file = f
	l.log = lgr.New(lgr.Out(f), lgr.Err(io.Discard), lgr.Msec, lgr.LevelBraces)
	_, _ = fmt.Fprintf(stdout, "🔍 Debug logging enabled. Logs will be written to: %s\n", logFile)
	l.log.Logf("[INFO] commitbot debug logging started")

	return l
}

// SetColor turns console styling on or off.
func (l *DefaultLogger) SetColor(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colored = on
}

// Info logs an informational message (file only)
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}
	l.log.Logf("[INFO] %s", fmt.Sprintf(format, args...))
}

// InfoToUser logs an informational message to both file and stdout
func (l *DefaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.enabled {
		l.log.Logf("[INFO] %s", msg)
	}
	l.print(l.stdout, color.FgCyan, "ℹ️  "+msg)
}

// Success logs a success message to both file and stdout
func (l *DefaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.enabled {
		l.log.Logf("[INFO] %s", msg)
	}
	l.print(l.stdout, color.FgGreen, "✅ "+msg)
}

// Warning logs a warning message
func (l *DefaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.enabled {
		l.log.Logf("[WARN] %s", msg)
	}

	if l.verbose {
		l.print(l.stdout, color.FgYellow, "⚠️  "+msg)
	}
}

// WarningToUser logs a warning message to both file and stdout
func (l *DefaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.enabled {
		l.log.Logf("[WARN] %s", msg)
	}
	l.print(l.stdout, color.FgYellow, "⚠️  "+msg)
}

// Error logs an error message and always reports it on stderr
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.enabled {
		l.log.Logf("[ERROR] %s", msg)
	}
	l.print(l.stderr, color.FgHiRed, "❌ "+msg)
}

// StatusMessage prints a status message to stdout only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintln(l.stdout, fmt.Sprintf(format, args...))
}

// Close syncs and closes the log file
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// print must be called with mu held
func (l *DefaultLogger) print(w io.Writer, attr color.Attribute, line string) {
	c := color.New(attr)
	if l.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, _ = c.Fprintln(w, line)
}
