// Package output renders server replies for respkv-cli.
package output
