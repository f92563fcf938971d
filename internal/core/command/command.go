package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yndnr/respkv/internal/protocol/resp"
)

var (
	// ErrUnknownCommand is returned for a valid frame naming no known command.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrInvalidArgs is returned when a known command has the wrong arguments.
	ErrInvalidArgs = errors.New("command: invalid arguments")
)

// Command names as reported by Name.
const (
	NamePing = "ping"
	NameEcho = "echo"
	NameSet  = "set"
	NameGet  = "get"
)

// Command is one of Ping, Echo, Set or Get.
type Command interface {
	Name() string
	command()
}

// Ping checks liveness.
type Ping struct{}

// Echo returns its argument.
type Echo struct {
	Value resp.Value
}

// Set stores Value under Key. ExpiryMillis, when set, is relative to the
// moment the command executes.
type Set struct {
	Key          string
	Value        resp.Value
	ExpiryMillis *int64
}

// Get reads Key.
type Get struct {
	Key string
}

func (Ping) Name() string { return NamePing }
func (Echo) Name() string { return NameEcho }
func (Set) Name() string  { return NameSet }
func (Get) Name() string  { return NameGet }

func (Ping) command() {}
func (Echo) command() {}
func (Set) command()  {}
func (Get) command()  {}

// Parse builds a Command from a decoded value.
func Parse(v resp.Value) (Command, error) {
	switch v.Kind() {
	case resp.KindText:
		name, _ := v.AsText()
		if strings.EqualFold(name, NamePing) {
			return Ping{}, nil
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	case resp.KindList:
		items, _ := v.AsList()
		return parseList(items)
	default:
		return nil, fmt.Errorf("%w: %s request", ErrUnknownCommand, v.Kind())
	}
}

func parseList(items []resp.Value) (Command, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty request", ErrUnknownCommand)
	}
	name, ok := items[0].AsText()
	if !ok {
		return nil, fmt.Errorf("%w: command name is %s", ErrUnknownCommand, items[0].Kind())
	}
	args := items[1:]

	switch strings.ToLower(name) {
	case NamePing:
		return parsePing(args)
	case NameEcho:
		return parseEcho(args)
	case NameSet:
		return parseSet(args)
	case NameGet:
		return parseGet(args)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
}

func parsePing(args []resp.Value) (Command, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%w: PING takes no arguments", ErrInvalidArgs)
	}
	return Ping{}, nil
}

func parseEcho(args []resp.Value) (Command, error) {
	if len(args) != 1 || !args[0].IsScalar() {
		return nil, fmt.Errorf("%w: ECHO takes exactly one scalar", ErrInvalidArgs)
	}
	return Echo{Value: args[0]}, nil
}

// parseSet parses "key value [PX millis]". Unknown options are skipped one
// token at a time; a PX whose value is not an integer sets no expiry.
func parseSet(args []resp.Value) (Command, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: SET needs a key and a value", ErrInvalidArgs)
	}
	key, ok := TextOf(args[0])
	if !ok || !args[1].IsScalar() {
		return nil, fmt.Errorf("%w: SET key and value must be scalars", ErrInvalidArgs)
	}

	cmd := Set{Key: key, Value: args[1]}
	for i := 2; i+1 < len(args); i++ {
		opt, ok := args[i].AsText()
		if !ok || !strings.EqualFold(opt, "px") {
			continue
		}
		if ms, ok := integerOf(args[i+1]); ok {
			cmd.ExpiryMillis = &ms
		}
		i++
	}
	return cmd, nil
}

func parseGet(args []resp.Value) (Command, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: GET takes exactly one key", ErrInvalidArgs)
	}
	key, ok := TextOf(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: GET key must be a scalar", ErrInvalidArgs)
	}
	return Get{Key: key}, nil
}

// TextOf returns the string form of a scalar.
func TextOf(v resp.Value) (string, bool) {
	if s, ok := v.AsText(); ok {
		return s, true
	}
	if n, ok := v.AsInteger(); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

func integerOf(v resp.Value) (int64, bool) {
	if n, ok := v.AsInteger(); ok {
		return n, true
	}
	s, ok := v.AsText()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
