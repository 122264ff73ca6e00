// Package lock provides a per-repository file lock so that only one
// commitbot daemon schedules commits against a given working tree.
//
// The lock file is named after a hash of the repository path and holds the
// owner's PID. An flock on the file marks it as live; a file left behind by
// a process that no longer holds the flock is reclaimed on the next Acquire.
// Locking relies on flock(2) and is unavailable on Windows.
package lock
