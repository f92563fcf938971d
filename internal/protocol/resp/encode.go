package resp

import "strconv"

// AppendSimple appends a simple string reply: "+" s CRLF.
func AppendSimple(dst []byte, s string) []byte {
	dst = append(dst, TagSimple)
	dst = append(dst, s...)
	return append(dst, '\r', '\n')
}

// AppendBulk appends a bulk string: "$" len CRLF s CRLF.
func AppendBulk(dst []byte, s string) []byte {
	dst = append(dst, TagBulk)
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, '\r', '\n')
	dst = append(dst, s...)
	return append(dst, '\r', '\n')
}

// AppendNullBulk appends the nil bulk string "$-1" CRLF.
func AppendNullBulk(dst []byte) []byte {
	return append(dst, "$-1\r\n"...)
}

// AppendArrayHeader appends "*" n CRLF.
func AppendArrayHeader(dst []byte, n int) []byte {
	dst = append(dst, TagList)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, '\r', '\n')
}

// AppendValue appends the reply form of a stored value. Text becomes a bulk
// string; integers and lists have no reply form yet and render as a bare CRLF.
func AppendValue(dst []byte, v Value) []byte {
	if s, ok := v.AsText(); ok {
		return AppendBulk(dst, s)
	}
	return append(dst, '\r', '\n')
}

// AppendRequest appends a request as a list of bulk strings.
func AppendRequest(dst []byte, args ...string) []byte {
	dst = AppendArrayHeader(dst, len(args))
	for _, a := range args {
		dst = AppendBulk(dst, a)
	}
	return dst
}
