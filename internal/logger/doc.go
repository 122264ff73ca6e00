// Package logger provides commitbot's two-channel logging.
//
// Diagnostics (Info, Warning, Error) are written through go-pkgz/lgr to a
// log file when debug logging is enabled. Console messages (InfoToUser,
// WarningToUser, Success, StatusMessage) are always printed, styled with
// fatih/color unless color is turned off.
//
//	log := logger.NewWithOutput(opts.Debug, opts.LogFile, opts.Debug, os.Stdout, os.Stderr)
//	defer log.Close()
//
//	log.StatusMessage("📂 Repository path: %s", repoPath)
//	log.Success("Commit created: %s", msg)
//	log.Info("registered %d triggers", n)
//
// All methods are safe for concurrent use.
package logger
