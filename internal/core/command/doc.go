// Package command maps decoded RESP values to the closed set of commands
// respkv understands: PING, ECHO, SET and GET.
//
// A request is either a list whose first element names the command
// (case-insensitive) or a bare "ping" text. Anything else is rejected with
// ErrUnknownCommand or ErrInvalidArgs; the server answers neither with a
// reply.
package command
