// Package resp implements the RESP subset spoken by respkv.
//
// Requests are decoded from a raw byte slice with Decode, or DecodeWithLimits
// for configured frame limits. Both dispatch on the one-byte type tag:
//
//	+  simple line   "+" CRLF content CRLF
//	$  bulk string   "$" <len> CRLF <len bytes> CRLF
//	*  list          "*" <count> CRLF <count frames>
//
// Decode never buffers across calls; a truncated frame is reported with
// ErrIncomplete so that a caller owning the socket can wait for more bytes.
//
// Replies are produced with the Append* helpers. ReadReply is the client
// side reader used by respkv-cli.
package resp
