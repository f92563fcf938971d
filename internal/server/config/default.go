package config

import "github.com/yndnr/respkv/internal/protocol/resp"

// Default configuration values.
const (
	DefaultRedisAddr  = "127.0.0.1:6379"
	DefaultReadBuffer = 1024
	DefaultMaxBuffer  = 1 << 20

	DefaultHTTPAddr = "127.0.0.1:6380"

	DefaultShards = 16

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:        DefaultRedisAddr,
				ReadBuffer:  DefaultReadBuffer,
				MaxBuffer:   DefaultMaxBuffer,
				MaxBulkLen:  resp.MaxBulkLen,
				MaxArrayLen: resp.MaxArrayLen,
				MaxDepth:    resp.MaxDepth,
			},
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
		},
		Storage: StorageSection{
			Shards: DefaultShards,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultMap returns the defaults as a nested map for confloader.LoadMap.
// Loading it first also registers every key, which lets environment
// variables address keys that contain underscores.
func DefaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"server": map[string]any{
			"redis": map[string]any{
				"addr":          d.Server.Redis.Addr,
				"read_buffer":   d.Server.Redis.ReadBuffer,
				"max_buffer":    d.Server.Redis.MaxBuffer,
				"idle_timeout":  d.Server.Redis.IdleTimeout.String(),
				"write_timeout": d.Server.Redis.WriteTimeout.String(),
				"rate_limit":    d.Server.Redis.RateLimit,
				"max_bulk_len":  d.Server.Redis.MaxBulkLen,
				"max_array_len": d.Server.Redis.MaxArrayLen,
				"max_depth":     d.Server.Redis.MaxDepth,
			},
			"http": map[string]any{
				"enabled": d.Server.HTTP.Enabled,
				"addr":    d.Server.HTTP.Addr,
			},
		},
		"storage": map[string]any{
			"shards": d.Storage.Shards,
		},
		"log": map[string]any{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
	}
}
