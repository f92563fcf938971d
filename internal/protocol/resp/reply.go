package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// maxLineLen bounds a reply header or simple-string line.
const maxLineLen = 64 * 1024

// Reply is a decoded server reply.
type Reply struct {
	Tag   byte
	Text  string
	Int   int64
	Nil   bool
	Elems []Reply
}

// IsError reports whether the reply is an error reply.
func (r Reply) IsError() bool {
	return r.Tag == TagError
}

// String renders the reply the way redis-cli does.
func (r Reply) String() string {
	switch {
	case r.Nil:
		return "(nil)"
	case r.Tag == TagError:
		return "(error) " + r.Text
	case r.Tag == TagInteger:
		return "(integer) " + strconv.FormatInt(r.Int, 10)
	case r.Tag == TagBulk:
		return strconv.Quote(r.Text)
	case r.Tag == TagList:
		var buf bytes.Buffer
		for i, e := range r.Elems {
			if i > 0 {
				buf.WriteByte('\n')
			}
			fmt.Fprintf(&buf, "%d) %s", i+1, e.String())
		}
		return buf.String()
	default:
		return r.Text
	}
}

// ReadReply reads one standard RESP2 reply from r.
//
// Unlike Decode, simple strings here use the usual "+text" CRLF form that
// the server emits.
func ReadReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return Reply{}, err
	}
	if len(line) == 0 {
		return Reply{}, fmt.Errorf("%w: empty reply line", ErrProtocol)
	}

	tag, body := line[0], line[1:]
	switch tag {
	case TagSimple, TagError:
		return Reply{Tag: tag, Text: body}, nil
	case TagInteger:
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return Reply{}, fmt.Errorf("%w: invalid integer", ErrProtocol)
		}
		return Reply{Tag: tag, Int: n}, nil
	case TagBulk:
		n, err := strconv.Atoi(body)
		if err != nil || n < -1 {
			return Reply{}, fmt.Errorf("%w: invalid bulk length", ErrProtocol)
		}
		if n == -1 {
			return Reply{Tag: tag, Nil: true}, nil
		}
		if n > MaxBulkLen {
			return Reply{}, fmt.Errorf("%w: %w: bulk length %d", ErrProtocol, ErrLimitExceeded, n)
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Reply{}, err
		}
		if !bytes.HasSuffix(buf, crlf) {
			return Reply{}, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
		}
		return Reply{Tag: tag, Text: string(buf[:n])}, nil
	case TagList:
		n, err := strconv.Atoi(body)
		if err != nil || n < -1 {
			return Reply{}, fmt.Errorf("%w: invalid array length", ErrProtocol)
		}
		if n == -1 {
			return Reply{Tag: tag, Nil: true}, nil
		}
		if n > MaxArrayLen {
			return Reply{}, fmt.Errorf("%w: %w: array length %d", ErrProtocol, ErrLimitExceeded, n)
		}
		elems := make([]Reply, 0, n)
		for i := 0; i < n; i++ {
			e, err := ReadReply(r)
			if err != nil {
				return Reply{}, err
			}
			elems = append(elems, e)
		}
		return Reply{Tag: tag, Elems: elems}, nil
	default:
		return Reply{}, fmt.Errorf("%w: %w %q", ErrProtocol, ErrUnsupportedType, tag)
	}
}

func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLineLen {
				return "", fmt.Errorf("%w: %w: line longer than %d", ErrProtocol, ErrLimitExceeded, maxLineLen)
			}
			continue
		}
		return "", err
	}

	if len(buf) > maxLineLen {
		return "", fmt.Errorf("%w: %w: line longer than %d", ErrProtocol, ErrLimitExceeded, maxLineLen)
	}
	if !bytes.HasSuffix(buf, crlf) {
		return "", fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return string(buf[:len(buf)-2]), nil
}
