// Package command defines the respkv-cli command tree on urfave/cli/v2.
//
// Every subcommand sends exactly one request and prints exactly one reply,
// except repl, which keeps a connection open for interactive use.
package command
