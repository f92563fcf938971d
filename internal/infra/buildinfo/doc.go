// Package buildinfo exposes version information injected at link time.
package buildinfo
