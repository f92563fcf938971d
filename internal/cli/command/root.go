package command

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

const metaClient = "client"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "talk to a respkv server",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			SetCommand(),
			GetCommand(),
			RawCommand(),
			ReplCommand(),
		},
		Before: func(c *cli.Context) error {
			if _, err := output.ParseFormat(c.String("output")); err != nil {
				return err
			}
			c.App.Metadata[metaClient] = connection.NewClient(c.String("server"), c.Duration("timeout"))
			return nil
		},
		After: func(c *cli.Context) error {
			if client := clientFrom(c); client != nil {
				return client.Close()
			}
			return nil
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address",
			EnvVars: []string{"RESPKV_SERVER"},
			Value:   "127.0.0.1:6379",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "dial and reply timeout; rejected requests get no reply, so this is how long to wait",
			Value:   connection.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, json",
			Value:   string(output.FormatText),
		},
	}
}

func clientFrom(c *cli.Context) *connection.Client {
	client, _ := c.App.Metadata[metaClient].(*connection.Client)
	return client
}

func formatFrom(c *cli.Context) output.Format {
	f, _ := output.ParseFormat(c.String("output"))
	return f
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// requestTimeout is the overall budget for one command.
func requestTimeout(c *cli.Context) time.Duration {
	return 2 * c.Duration("timeout")
}
