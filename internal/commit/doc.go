// Package commit turns generated content into git commits.
//
// A Driver writes one or two files from its pool, stages them and commits
// with a message from its message pool. A Pusher runs `git push` and only
// reports whether it worked.
package commit
