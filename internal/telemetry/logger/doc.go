// Package logger provides structured logging for respkv.
//
// It wraps log/slog with a small Logger interface, a process-wide level
// that can be changed at runtime (the server does so when its config file
// changes), and context helpers that attach the connection id to every
// entry written while serving a client.
package logger
