package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/protocol/resp"
)

// Doer sends one request and returns its reply.
type Doer interface {
	Do(ctx context.Context, args ...string) (resp.Reply, error)
}

// REPL is the read-eval-print loop.
type REPL struct {
	client    Doer
	prompt    string
	format    output.Format
	input     io.Reader
	output    io.Writer
	completer *Completer
}

// New creates a REPL reading in and writing to out.
func New(client Doer, prompt string, format output.Format, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		client:    client,
		prompt:    prompt,
		format:    format,
		input:     in,
		output:    out,
		completer: NewCompleter(),
	}
}

// Run loops until EOF, "exit" or "quit", or ctx ends. Request errors are
// printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	sc := bufio.NewScanner(r.input)
	for {
		fmt.Fprint(r.output, r.prompt+"> ")
		if !sc.Scan() {
			fmt.Fprintln(r.output)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		args, err := SplitArgs(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintf(r.output, "(error) %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit":
			return nil
		case "help":
			prefix := ""
			if len(args) > 1 {
				prefix = args[1]
			}
			fmt.Fprintln(r.output, strings.Join(r.completer.Complete(prefix), " "))
			continue
		}

		reply, err := r.client.Do(ctx, args...)
		if err != nil {
			fmt.Fprintf(r.output, "(error) %v\n", err)
			continue
		}
		if err := output.Write(r.output, r.format, reply); err != nil {
			return err
		}
	}
}
