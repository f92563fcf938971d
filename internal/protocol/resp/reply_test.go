package resp

import (
	"bufio"
	"errors"
	"strings"
	"testing"
)

func TestReadReply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple string", "+PONG\r\n", "PONG"},
		{"error", "-ERR boom\r\n", "(error) ERR boom"},
		{"integer", ":42\r\n", "(integer) 42"},
		{"bulk", "$3\r\nbar\r\n", `"bar"`},
		{"nil bulk", "$-1\r\n", "(nil)"},
		{"array", "*2\r\n$1\r\na\r\n:1\r\n", "1) \"a\"\n2) (integer) 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.input))
			got, err := ReadReply(r)
			if err != nil {
				t.Fatalf("ReadReply(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ReadReply(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestReadReply_Pipeline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("+OK\r\n$3\r\nbar\r\n"))

	first, err := ReadReply(r)
	if err != nil || first.Text != "OK" {
		t.Fatalf("first reply = %+v, %v", first, err)
	}
	second, err := ReadReply(r)
	if err != nil || second.Text != "bar" {
		t.Fatalf("second reply = %+v, %v", second, err)
	}
}

func TestReadReply_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing CRLF", "+PONG\n"},
		{"bad integer", ":x\r\n"},
		{"bad bulk terminator", "$3\r\nbarXX"},
		{"unknown tag", "?\r\n"},
		{"empty line", "\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadReply(bufio.NewReader(strings.NewReader(tt.input)))
			if !errors.Is(err, ErrProtocol) {
				t.Errorf("ReadReply(%q) error = %v, want ErrProtocol", tt.input, err)
			}
		})
	}
}
