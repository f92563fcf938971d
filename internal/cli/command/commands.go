package command

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
)

// PingCommand sends PING.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "check the server is answering",
		ArgsUsage: " ",
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return usageError(c, "ping takes no arguments")
			}
			return send(c, "PING")
		},
	}
}

// EchoCommand sends ECHO <message>.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "echo a message back",
		ArgsUsage: "<message>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "echo takes exactly one message")
			}
			return send(c, "ECHO", c.Args().First())
		},
	}
}

// SetCommand sends SET <key> <value> [PX <ms>].
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "store a value",
		ArgsUsage: "<key> <value>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "px",
				Usage: "expire the key after this many milliseconds",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError(c, "set takes a key and a value")
			}
			args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}
			if c.IsSet("px") {
				args = append(args, "PX", strconv.FormatInt(c.Int64("px"), 10))
			}
			return send(c, args...)
		},
	}
}

// GetCommand sends GET <key>.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "read a value",
		ArgsUsage: "<key>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "get takes exactly one key")
			}
			return send(c, "GET", c.Args().First())
		},
	}
}

// RawCommand sends its arguments unchanged as one request.
func RawCommand() *cli.Command {
	return &cli.Command{
		Name:      "raw",
		Usage:     "send arbitrary arguments as one request",
		ArgsUsage: "<arg>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "upper",
				Usage: "upper-case the command name",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return usageError(c, "raw needs at least one argument")
			}
			args := c.Args().Slice()
			if c.Bool("upper") {
				args = lo.Map(args, func(a string, i int) string {
					return lo.Ternary(i == 0, strings.ToUpper(a), a)
				})
			}
			return send(c, args...)
		},
	}
}

// ReplCommand starts interactive mode.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "interactive mode",
		Action: func(c *cli.Context) error {
			client := clientFrom(c)
			r := repl.New(client, client.Addr(), formatFrom(c), os.Stdin, c.App.Writer)
			return r.Run(c.Context)
		},
	}
}

func send(c *cli.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(c.Context, requestTimeout(c))
	defer cancel()

	reply, err := clientFrom(c).Do(ctx, args...)
	if err != nil {
		return err
	}
	if err := output.Write(c.App.Writer, formatFrom(c), reply); err != nil {
		return err
	}
	if reply.IsError() {
		return fmt.Errorf("server error: %s", reply.Text)
	}
	return nil
}

func usageError(c *cli.Context, msg string) error {
	return fmt.Errorf("%s (usage: %s %s)", msg, c.Command.HelpName, c.Command.ArgsUsage)
}
