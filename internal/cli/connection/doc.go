// Package connection is the respkv-cli transport: a RESP client over TCP.
package connection
