package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/yndnr/respkv/internal/protocol/resp"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Write renders one reply followed by a newline.
func Write(w io.Writer, f Format, r resp.Reply) error {
	if f == FormatJSON {
		return json.NewEncoder(w).Encode(jsonValue(r))
	}
	_, err := fmt.Fprintln(w, r.String())
	return err
}

// jsonValue maps a reply onto plain JSON: nil bulk to null, errors to
// {"error": text}, lists to arrays.
func jsonValue(r resp.Reply) any {
	switch {
	case r.Nil:
		return nil
	case r.IsError():
		return map[string]string{"error": r.Text}
	case r.Tag == resp.TagInteger:
		return r.Int
	case r.Tag == resp.TagList:
		return lo.Map(r.Elems, func(e resp.Reply, _ int) any {
			return jsonValue(e)
		})
	default:
		return r.Text
	}
}
