// Package config defines the respkv server configuration.
//
//   - spec.go: ServerConfig and its sections
//   - default.go: default values, also as a koanf map
//   - verify.go: validation run after loading
//
// Values are loaded by internal/infra/confloader.
package config
