package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/respkv/internal/protocol/resp"
	"github.com/yndnr/respkv/pkg/cmap"
)

// ErrInvalidConfig is wrapped by every Verify failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Verify validates a loaded configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyRedis(&cfg.Server.Redis); err != nil {
		return err
	}
	if cfg.Server.HTTP.Enabled {
		if err := verifyAddr("server.http.addr", cfg.Server.HTTP.Addr); err != nil {
			return err
		}
		if cfg.Server.HTTP.Addr == cfg.Server.Redis.Addr {
			return fmt.Errorf("%w: server.http.addr and server.redis.addr are both %s",
				ErrInvalidConfig, cfg.Server.HTTP.Addr)
		}
	}
	if !cmap.ValidShardCount(cfg.Storage.Shards) {
		return fmt.Errorf("%w: storage.shards must be a power of two, got %d",
			ErrInvalidConfig, cfg.Storage.Shards)
	}
	return verifyLog(&cfg.Log)
}

func verifyRedis(cfg *RedisConfig) error {
	if err := verifyAddr("server.redis.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.ReadBuffer <= 0 {
		return fmt.Errorf("%w: server.redis.read_buffer must be positive", ErrInvalidConfig)
	}
	if cfg.MaxBuffer < cfg.ReadBuffer {
		return fmt.Errorf("%w: server.redis.max_buffer (%d) is below read_buffer (%d)",
			ErrInvalidConfig, cfg.MaxBuffer, cfg.ReadBuffer)
	}
	if cfg.IdleTimeout < 0 || cfg.WriteTimeout < 0 {
		return fmt.Errorf("%w: server.redis timeouts must not be negative", ErrInvalidConfig)
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("%w: server.redis.rate_limit must not be negative", ErrInvalidConfig)
	}
	if cfg.MaxBulkLen < 0 || cfg.MaxArrayLen < 0 || cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: server.redis frame limits must not be negative", ErrInvalidConfig)
	}
	// A bulk frame at the limit must fit in the pending buffer.
	if need := cfg.MaxBulkLen + resp.BulkOverhead; cfg.MaxBulkLen > 0 && cfg.MaxBuffer < need {
		return fmt.Errorf("%w: server.redis.max_buffer (%d) cannot hold a max_bulk_len frame (%d bytes)",
			ErrInvalidConfig, cfg.MaxBuffer, need)
	}
	return nil
}

func verifyAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, key)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, cfg.Format)
	}
	return nil
}
