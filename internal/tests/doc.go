// Package tests holds end-to-end tests that run the server components
// together over real sockets.
package tests
