package config

import (
	"time"

	"github.com/yndnr/respkv/internal/protocol/resp"
)

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures listeners.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	HTTP  HTTPConfig  `koanf:"http"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// ReadBuffer is the size of each socket read.
	ReadBuffer int `koanf:"read_buffer"`

	// MaxBuffer caps the bytes held for one unfinished frame. A connection
	// whose pending bytes grow past it has them discarded.
	MaxBuffer int `koanf:"max_buffer"`

	// IdleTimeout closes a connection with no reads for this long. Zero
	// disables it.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// WriteTimeout bounds each reply write. Zero disables it.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RateLimit is commands per second per connection; zero is unlimited.
	RateLimit int `koanf:"rate_limit"`

	// MaxBulkLen, MaxArrayLen and MaxDepth bound request frames. Zero
	// disables a limit; max_buffer then caps frame size on its own.
	MaxBulkLen  int `koanf:"max_bulk_len"`
	MaxArrayLen int `koanf:"max_array_len"`
	MaxDepth    int `koanf:"max_depth"`
}

// Limits returns the frame limits for the request decoder.
func (c RedisConfig) Limits() resp.Limits {
	return resp.Limits{
		MaxBulkLen:  c.MaxBulkLen,
		MaxArrayLen: c.MaxArrayLen,
		MaxDepth:    c.MaxDepth,
	}
}

// HTTPConfig configures the admin HTTP listener.
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StorageSection configures the in-memory store.
type StorageSection struct {
	Shards int `koanf:"shards"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
