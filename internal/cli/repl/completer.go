package repl

import (
	"strings"

	"github.com/samber/lo"
)

// Completer suggests command names for a prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer for the server commands and the REPL
// builtins.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{"ECHO", "GET", "PING", "SET", "exit", "help", "quit"},
	}
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	p := strings.ToLower(prefix)
	return lo.Filter(c.commands, func(cmd string, _ int) bool {
		return strings.HasPrefix(strings.ToLower(cmd), p)
	})
}
