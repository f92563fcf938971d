// Package executor runs one request: decode a frame, parse it into a
// command, apply it to the store and serialize the reply.
//
// The executor is stateless and safe for concurrent use; all state lives in
// the storage.Store passed to each call. Malformed frames, unknown commands
// and bad arguments produce no reply at all.
package executor
