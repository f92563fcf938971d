package resp

import (
	"bytes"
	"errors"
	"fmt"
	"math"
)

// Type tags.
const (
	TagSimple  = '+'
	TagError   = '-'
	TagInteger = ':'
	TagBulk    = '$'
	TagList    = '*'
)

// Default protocol limits to keep a single frame from exhausting memory.
const (
	// MaxArrayLen limits the declared element count of a list.
	MaxArrayLen = 1024

	// MaxBulkLen limits the declared length of a bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxDepth limits list nesting.
	MaxDepth = 32

	// BulkOverhead is the largest number of framing bytes around a bulk
	// payload: the tag, a 20 digit length and two CRLFs.
	BulkOverhead = 1 + 20 + 2*len("\r\n")
)

// Limits bounds the frames the decoder accepts. A zero field disables that
// limit.
type Limits struct {
	MaxBulkLen  int
	MaxArrayLen int
	MaxDepth    int
}

// DefaultLimits returns the limits used by Decode.
func DefaultLimits() Limits {
	return Limits{
		MaxBulkLen:  MaxBulkLen,
		MaxArrayLen: MaxArrayLen,
		MaxDepth:    MaxDepth,
	}
}

func (l Limits) bulk() int  { return orUnlimited(l.MaxBulkLen) }
func (l Limits) array() int { return orUnlimited(l.MaxArrayLen) }
func (l Limits) depth() int { return orUnlimited(l.MaxDepth) }

func orUnlimited(n int) int {
	if n <= 0 {
		return math.MaxInt
	}
	return n
}

var (
	// ErrProtocol is returned for input that can never become a valid frame.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrIncomplete is returned when the input ends before the frame does.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrUnsupportedType is wrapped together with ErrProtocol for unknown tags.
	ErrUnsupportedType = errors.New("resp: unsupported type")

	// ErrLimitExceeded is wrapped together with ErrProtocol when a declared
	// size is over one of the protocol limits.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

var crlf = []byte("\r\n")

// Frame is one decoded value and the number of input bytes it occupied.
type Frame struct {
	Value    Value
	Consumed int
}

// Decode decodes the frame at the start of b using DefaultLimits.
//
// Bytes after the frame are ignored; Consumed tells the caller where the
// next frame starts. On error the returned Frame is zero and no partial
// value is reported.
func Decode(b []byte) (Frame, error) {
	return DecodeWithLimits(b, DefaultLimits())
}

// DecodeWithLimits is Decode with caller supplied limits.
func DecodeWithLimits(b []byte, lim Limits) (Frame, error) {
	d := decoder{lim: lim}
	return d.decode(b, 0)
}

type decoder struct {
	lim Limits
}

func (d *decoder) decode(b []byte, depth int) (Frame, error) {
	if len(b) == 0 {
		return Frame{}, ErrIncomplete
	}

	switch b[0] {
	case TagSimple:
		return decodeSimple(b)
	case TagBulk:
		return d.decodeBulk(b)
	case TagList:
		return d.decodeList(b, depth)
	default:
		return Frame{}, fmt.Errorf("%w: %w %q", ErrProtocol, ErrUnsupportedType, b[0])
	}
}

// decodeSimple decodes "+" CRLF content CRLF.
func decodeSimple(b []byte) (Frame, error) {
	if len(b) < 3 {
		if len(b) == 2 && b[1] != '\r' {
			return Frame{}, fmt.Errorf("%w: simple line must open with CRLF", ErrProtocol)
		}
		return Frame{}, ErrIncomplete
	}
	if b[1] != '\r' || b[2] != '\n' {
		return Frame{}, fmt.Errorf("%w: simple line must open with CRLF", ErrProtocol)
	}

	const start = 3
	end := bytes.Index(b[start:], crlf)
	if end < 0 {
		return Frame{}, ErrIncomplete
	}

	return Frame{
		Value:    Text(string(b[start : start+end])),
		Consumed: start + end + len(crlf),
	}, nil
}

// decodeBulk decodes "$" <len> CRLF <len bytes> CRLF.
func (d *decoder) decodeBulk(b []byte) (Frame, error) {
	n, off, err := readHeader(b, d.lim.bulk())
	if err != nil {
		return Frame{}, err
	}

	if n > len(b)-off {
		return Frame{}, ErrIncomplete
	}
	end := off + n
	if len(b) < end+len(crlf) {
		if len(b) > end && b[end] != '\r' {
			return Frame{}, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
		}
		return Frame{}, ErrIncomplete
	}
	if b[end] != '\r' || b[end+1] != '\n' {
		return Frame{}, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
	}

	return Frame{
		Value:    Text(string(b[off:end])),
		Consumed: end + len(crlf),
	}, nil
}

// decodeList decodes "*" <count> CRLF followed by count frames.
func (d *decoder) decodeList(b []byte, depth int) (Frame, error) {
	if limit := d.lim.depth(); depth >= limit {
		return Frame{}, fmt.Errorf("%w: %w: nesting deeper than %d", ErrProtocol, ErrLimitExceeded, limit)
	}

	count, cursor, err := readHeader(b, d.lim.array())
	if err != nil {
		return Frame{}, err
	}

	items := make([]Value, 0, min(count, len(b)))
	for i := 0; i < count; i++ {
		if cursor >= len(b) {
			return Frame{}, ErrIncomplete
		}
		f, err := d.decode(b[cursor:], depth+1)
		if err != nil {
			return Frame{}, err
		}
		items = append(items, f.Value)
		cursor += f.Consumed
	}

	return Frame{Value: List(items...), Consumed: cursor}, nil
}

// readHeader parses the decimal field between the tag and the first CRLF.
// It returns the field value and the offset just past the CRLF.
func readHeader(b []byte, limit int) (int, int, error) {
	end := bytes.Index(b[1:], crlf)
	if end < 0 {
		// Reject early when the bytes seen so far cannot be a length.
		field := bytes.TrimSuffix(b[1:], []byte{'\r'})
		if len(field) > 0 {
			if _, err := parseLength(field, limit); err != nil {
				return 0, 0, err
			}
		}
		return 0, 0, ErrIncomplete
	}

	n, err := parseLength(b[1:1+end], limit)
	if err != nil {
		return 0, 0, err
	}
	return n, 1 + end + len(crlf), nil
}

// parseLength parses a non-negative base-10 integer made of ASCII digits only.
func parseLength(field []byte, limit int) (int, error) {
	if len(field) == 0 {
		return 0, fmt.Errorf("%w: empty length", ErrProtocol)
	}

	n := 0
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: invalid length %q", ErrProtocol, field)
		}
		digit := int(c - '0')
		if digit > limit || n > (limit-digit)/10 {
			return 0, fmt.Errorf("%w: %w: length exceeds %d", ErrProtocol, ErrLimitExceeded, limit)
		}
		n = n*10 + digit
	}
	return n, nil
}
