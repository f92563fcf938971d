// Package redisserver serves the RESP request protocol over TCP.
//
// Each accepted connection runs in its own goroutine. Bytes are accumulated
// until the executor can decode a whole frame, requests are answered in
// arrival order, and rejected requests get no reply at all. A frame that
// cannot be decoded discards everything buffered on that connection, since
// the protocol has no resynchronisation point.
package redisserver
