package resp

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindText
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a decoded RESP payload, independent of the wire type that
// produced it. The zero Value is invalid.
type Value struct {
	kind    Kind
	integer int64
	text    string
	list    []Value
}

// Integer returns an integer Value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, integer: n}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// List returns a list Value holding items in order.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Kind returns the value's shape.
func (v Value) Kind() Kind {
	return v.kind
}

// IsScalar reports whether v is an integer or text.
func (v Value) IsScalar() bool {
	return v.kind == KindInteger || v.kind == KindText
}

// AsInteger returns the integer payload.
func (v Value) AsInteger() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// AsText returns the text payload.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsList returns the list elements. The slice is shared with v.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// Equal reports whether v and o have the same shape and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.integer == o.integer
	case KindText:
		return v.text == o.text
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders v for logs.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindText:
		return strconv.Quote(v.text)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "<invalid>"
	}
}
