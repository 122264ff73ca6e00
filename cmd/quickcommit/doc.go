// Command quickcommit makes a single commit of a generated activity_log.md
// in the current directory, initializing a repository there if needed, and
// then asks whether to push it. It exits with status 1 when the commit
// fails.
package main
