// Package shutdown coordinates graceful process termination.
//
// A Handler collects named hooks, waits for SIGINT/SIGTERM or for its
// context to end, and then runs the hooks in reverse registration order
// under a single timeout.
package shutdown
