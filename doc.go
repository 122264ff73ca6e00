// Package commitbot keeps a git repository's contribution history active
//
// commitbot writes small generated files into a repository and commits them,
// either once on demand or on a daily schedule. Each commit rewrites one or
// two files picked from a configurable pool with a message picked from a
// configurable pool of messages. Pushing is optional and never retried.
//
// # Quick Start
//
//	# Save the git identity used for commits
//	commitbot --setup
//
//	# Make one commit now and decide whether to push
//	commitbot --commit
//
//	# Commit at the configured times until Ctrl+C
//	commitbot --daemon --path /path/to/repo
//
// For a single commit without any configuration, quickcommit appends an
// entry to activity_log.md in the current directory and commits it:
//
//	quickcommit
//
// # Module Structure
//
// The module is organized into these packages:
//
//   - cmd/commitbot: the configurable bot (setup, manual commit, daemon)
//   - cmd/quickcommit: the one-shot activity log committer
//   - cmd/schema: JSON schema generator for the configuration file
//   - internal/commit: the commit cycle and the push step
//   - internal/config: configuration file, defaults and command-line options
//   - internal/content: generated file bodies for each file kind
//   - internal/schedule: daily slot selection and the polling scheduler
//   - internal/git: git command execution
//   - internal/lock: single daemon per repository
//   - internal/logger: console and debug file logging
//   - internal/prompt: interactive questions
//   - internal/errors: error types and sentinels
//
// # Scheduling
//
// At daemon start the slots for the day are chosen from schedule_times:
// one for daily, two distinct ones for twice_daily, and each one with a 60%
// chance for random. The scheduler polls the clock and fires each slot at
// most once a day. On Saturday and Sunday nothing fires unless
// weekend_activity is set. A failed commit is logged and the daemon keeps
// running.
//
// # Implementation Notes
//
// commitbot uses the command-line git executable rather than a Go git
// library. Commands are executed through an abstracted interface that is
// replaced by a mock in tests, and every command is bound to a context so
// that an interrupt also stops a hung git process.
package commitbot
