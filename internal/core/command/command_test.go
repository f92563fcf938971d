package command

import (
	"errors"
	"testing"

	"github.com/yndnr/respkv/internal/protocol/resp"
)

func texts(parts ...string) resp.Value {
	items := make([]resp.Value, len(parts))
	for i, p := range parts {
		items[i] = resp.Text(p)
	}
	return resp.List(items...)
}

func int64p(n int64) *int64 { return &n }

// ============================================================
// Parse Tests - Accepted requests
// ============================================================

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
		want  Command
	}{
		{"bare ping", resp.Text("ping"), Ping{}},
		{"bare ping mixed case", resp.Text("PiNg"), Ping{}},
		{"list ping", texts("PING"), Ping{}},
		{"echo", texts("ECHO", "banana"), Echo{Value: resp.Text("banana")}},
		{"echo lower case", texts("echo", "x"), Echo{Value: resp.Text("x")}},
		{"get", texts("GET", "foo"), Get{Key: "foo"}},
		{"set", texts("SET", "foo", "bar"), Set{Key: "foo", Value: resp.Text("bar")}},
		{"set px", texts("SET", "foo", "bar", "PX", "100"), Set{Key: "foo", Value: resp.Text("bar"), ExpiryMillis: int64p(100)}},
		{"set px lower case", texts("set", "foo", "bar", "px", "0"), Set{Key: "foo", Value: resp.Text("bar"), ExpiryMillis: int64p(0)}},
		{"set negative px", texts("SET", "foo", "bar", "PX", "-5"), Set{Key: "foo", Value: resp.Text("bar"), ExpiryMillis: int64p(-5)}},
		{"set unparsable px", texts("SET", "foo", "bar", "PX", "soon"), Set{Key: "foo", Value: resp.Text("bar")}},
		{"set unknown option", texts("SET", "foo", "bar", "NX"), Set{Key: "foo", Value: resp.Text("bar")}},
		{"set unknown option before px", texts("SET", "foo", "bar", "NX", "PX", "7"), Set{Key: "foo", Value: resp.Text("bar"), ExpiryMillis: int64p(7)}},
		{"set dangling px", texts("SET", "foo", "bar", "PX"), Set{Key: "foo", Value: resp.Text("bar")}},
		{"set last px wins", texts("SET", "foo", "bar", "PX", "1", "PX", "2"), Set{Key: "foo", Value: resp.Text("bar"), ExpiryMillis: int64p(2)}},
		{
			"set integer px",
			resp.List(resp.Text("SET"), resp.Text("k"), resp.Text("v"), resp.Text("PX"), resp.Integer(9)),
			Set{Key: "k", Value: resp.Text("v"), ExpiryMillis: int64p(9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%s) error = %v", tt.input, err)
			}
			if !sameCommand(got, tt.want) {
				t.Errorf("Parse(%s) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================
// Parse Tests - Rejected requests
// ============================================================

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   resp.Value
		wantErr error
	}{
		{"bare non-ping text", resp.Text("echo"), ErrUnknownCommand},
		{"bare integer", resp.Integer(1), ErrUnknownCommand},
		{"empty list", resp.List(), ErrUnknownCommand},
		{"name is a list", resp.List(texts("PING")), ErrUnknownCommand},
		{"unknown name", texts("FLUSHALL"), ErrUnknownCommand},
		{"ping with argument", texts("PING", "hello"), ErrInvalidArgs},
		{"echo without argument", texts("ECHO"), ErrInvalidArgs},
		{"echo with two arguments", texts("ECHO", "a", "b"), ErrInvalidArgs},
		{"echo list argument", resp.List(resp.Text("ECHO"), texts("a")), ErrInvalidArgs},
		{"set without value", texts("SET", "foo"), ErrInvalidArgs},
		{"set list value", resp.List(resp.Text("SET"), resp.Text("k"), texts("v")), ErrInvalidArgs},
		{"set list key", resp.List(resp.Text("SET"), texts("k"), resp.Text("v")), ErrInvalidArgs},
		{"get without key", texts("GET"), ErrInvalidArgs},
		{"get with two keys", texts("GET", "a", "b"), ErrInvalidArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%s) = (%#v, %v), want error %v", tt.input, got, err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Parse(%s) returned command %#v alongside error", tt.input, got)
			}
		})
	}
}

func TestCommand_Names(t *testing.T) {
	names := map[string]Command{
		NamePing: Ping{},
		NameEcho: Echo{},
		NameSet:  Set{},
		NameGet:  Get{},
	}
	for want, cmd := range names {
		if cmd.Name() != want {
			t.Errorf("%T.Name() = %q, want %q", cmd, cmd.Name(), want)
		}
	}
}

func sameCommand(a, b Command) bool {
	switch x := a.(type) {
	case Ping:
		_, ok := b.(Ping)
		return ok
	case Echo:
		y, ok := b.(Echo)
		return ok && x.Value.Equal(y.Value)
	case Get:
		y, ok := b.(Get)
		return ok && x.Key == y.Key
	case Set:
		y, ok := b.(Set)
		if !ok || x.Key != y.Key || !x.Value.Equal(y.Value) {
			return false
		}
		if (x.ExpiryMillis == nil) != (y.ExpiryMillis == nil) {
			return false
		}
		return x.ExpiryMillis == nil || *x.ExpiryMillis == *y.ExpiryMillis
	default:
		return false
	}
}
