// Package repl is respkv-cli's interactive mode.
//
// Each input line is split into arguments (double and single quotes group
// words) and sent as one request on a shared connection.
package repl
