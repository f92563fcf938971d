package resp

import "testing"

func TestAppendReplies(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"simple", AppendSimple(nil, "PONG"), "+PONG\r\n"},
		{"bulk", AppendBulk(nil, "banana"), "$6\r\nbanana\r\n"},
		{"empty bulk", AppendBulk(nil, ""), "$0\r\n\r\n"},
		{"null bulk", AppendNullBulk(nil), "$-1\r\n"},
		{"text value", AppendValue(nil, Text("bar")), "$3\r\nbar\r\n"},
		{"integer value", AppendValue(nil, Integer(7)), "\r\n"},
		{"list value", AppendValue(nil, List(Text("a"))), "\r\n"},
		{"request", AppendRequest(nil, "GET", "foo"), "*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n"},
		{"appends to dst", AppendSimple([]byte("+OK\r\n"), "OK"), "+OK\r\n+OK\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.got) != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestAppendRequest_Decodes(t *testing.T) {
	raw := AppendRequest(nil, "SET", "foo", "bar", "PX", "100")
	f, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := List(Text("SET"), Text("foo"), Text("bar"), Text("PX"), Text("100"))
	if !f.Value.Equal(want) {
		t.Errorf("Decode() = %s, want %s", f.Value, want)
	}
	if f.Consumed != len(raw) {
		t.Errorf("consumed = %d, want %d", f.Consumed, len(raw))
	}
}

func TestValue_Accessors(t *testing.T) {
	if n, ok := Integer(5).AsInteger(); !ok || n != 5 {
		t.Errorf("Integer(5).AsInteger() = (%d, %v)", n, ok)
	}
	if _, ok := Integer(5).AsText(); ok {
		t.Error("Integer should not be text")
	}
	if !Text("a").IsScalar() || List().IsScalar() {
		t.Error("IsScalar mismatch")
	}
	if List(Text("a")).Equal(List(Text("b"))) {
		t.Error("lists with different items should differ")
	}
	if got := List(Text("a"), Integer(1)).String(); got != `["a" 1]` {
		t.Errorf("String() = %s", got)
	}
}
