package repl

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/protocol/resp"
)

type fakeDoer struct {
	calls [][]string
}

func (f *fakeDoer) Do(_ context.Context, args ...string) (resp.Reply, error) {
	f.calls = append(f.calls, args)
	switch strings.ToUpper(args[0]) {
	case "PING":
		return resp.Reply{Tag: resp.TagSimple, Text: "PONG"}, nil
	case "ECHO":
		return resp.Reply{Tag: resp.TagBulk, Text: args[1]}, nil
	default:
		return resp.Reply{}, errors.New("no reply from server")
	}
}

func run(t *testing.T, input string) (*fakeDoer, string) {
	t.Helper()
	d := &fakeDoer{}
	var out bytes.Buffer
	r := New(d, "respkv", output.FormatText, strings.NewReader(input), &out)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return d, out.String()
}

func TestREPL_Commands(t *testing.T) {
	d, out := run(t, "ping\n\n  echo \"hello world\"  \nnope\nquit\nping\n")

	want := [][]string{{"ping"}, {"echo", "hello world"}, {"nope"}}
	if !reflect.DeepEqual(d.calls, want) {
		t.Errorf("calls = %q, want %q", d.calls, want)
	}
	for _, s := range []string{"PONG\n", "\"hello world\"\n", "(error) no reply from server\n"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestREPL_EOF(t *testing.T) {
	d, out := run(t, "ping")
	if len(d.calls) != 1 {
		t.Errorf("calls = %v", d.calls)
	}
	if !strings.HasPrefix(out, "respkv> ") {
		t.Errorf("prompt missing: %q", out)
	}
}

func TestREPL_HelpAndBadQuotes(t *testing.T) {
	d, out := run(t, "help s\necho \"open\nexit\n")
	if len(d.calls) != 0 {
		t.Errorf("builtins reached the server: %v", d.calls)
	}
	if !strings.Contains(out, "SET\n") {
		t.Errorf("help output missing SET: %q", out)
	}
	if !strings.Contains(out, "(error) unbalanced quotes") {
		t.Errorf("quote error missing: %q", out)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"PING", []string{"PING"}},
		{"set  k   v", []string{"set", "k", "v"}},
		{`echo "a b"`, []string{"echo", "a b"}},
		{`echo 'it"s'`, []string{"echo", `it"s`}},
		{`echo "say \"hi\""`, []string{"echo", `say "hi"`}},
		{`echo ""`, []string{"echo", ""}},
		{"a\tb", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got, err := SplitArgs(tt.in)
		if err != nil {
			t.Errorf("SplitArgs(%q) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitArgs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{`echo "x`, `echo 'x`, `echo "x\`} {
		if _, err := SplitArgs(in); !errors.Is(err, ErrUnbalancedQuotes) {
			t.Errorf("SplitArgs(%q) error = %v", in, err)
		}
	}
}

func TestCompleter(t *testing.T) {
	c := NewCompleter()
	if got := c.Complete("e"); !reflect.DeepEqual(got, []string{"ECHO", "exit"}) {
		t.Errorf("Complete(e) = %v", got)
	}
	if got := c.Complete("zz"); len(got) != 0 {
		t.Errorf("Complete(zz) = %v", got)
	}
}
