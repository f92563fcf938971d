// Command respkv-server serves an in-memory key-value store over RESP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yndnr/respkv/internal/core/executor"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "path to a YAML configuration file")
		envFile     = flag.String("env-file", "", "path to a .env file with RESPKV_* variables")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile, *envFile)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting respkv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	store := memory.New(memory.WithShardCount(cfg.Storage.Shards))

	metrics := metric.NewRegistry()
	if err := metrics.RegisterStore(store); err != nil {
		return fmt.Errorf("register store metrics: %w", err)
	}

	exec := executor.New(
		executor.WithRecorder(metrics),
		executor.WithLimits(cfg.Server.Redis.Limits()))

	rc := cfg.Server.Redis
	redisSrv := redisserver.New(redisserver.Config{
		Addr:         rc.Addr,
		ReadBuffer:   rc.ReadBuffer,
		MaxBuffer:    rc.MaxBuffer,
		IdleTimeout:  rc.IdleTimeout,
		WriteTimeout: rc.WriteTimeout,
		RateLimit:    rc.RateLimit,
	}, store, exec,
		redisserver.WithLogger(log.With("component", "redis")),
		redisserver.WithConnMetrics(metrics))

	sd := shutdown.NewHandler(30 * time.Second)

	ctx := context.Background()
	if err := redisSrv.Start(ctx); err != nil {
		return err
	}
	sd.OnShutdown("redis", redisSrv.Shutdown)

	if cfg.Server.HTTP.Enabled {
		router := httpserver.NewRouter(httpserver.RouterConfig{
			Metrics: metrics.Handler(),
			Logger:  log.With("component", "http"),
		})
		httpSrv := httpserver.New(cfg.Server.HTTP.Addr, router, log)
		if err := httpSrv.Start(); err != nil {
			_ = sd.Shutdown()
			return err
		}
		sd.OnShutdown("http", httpSrv.Shutdown)
	}

	if *configFile != "" {
		w, err := watchConfig(*configFile, *envFile, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			sd.OnShutdown("config watcher", func(context.Context) error { return w.Stop() })
		}
	}

	log.Info("server started")
	if err := sd.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

// loadConfig applies defaults, the YAML file, the dotenv file and the
// environment, in that order, then validates the result.
func loadConfig(configFile, envFile string) (*config.ServerConfig, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(configFile),
		confloader.WithDotEnvFile(envFile),
	)
	if err := loader.LoadMap(config.DefaultMap()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	cfg := &config.ServerConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// watchConfig reloads the file on change and applies a new log level.
// Other settings take effect on restart.
func watchConfig(configFile, envFile string, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(configFile); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(path string) {
		cfg, err := loadConfig(configFile, envFile)
		if err != nil {
			log.Warn("ignoring invalid config change", "path", path, "error", err)
			return
		}
		old := logger.GetLevel()
		logger.SetLevel(cfg.Log.Level)
		if cur := logger.GetLevel(); cur != old {
			log.Info("log level changed", "from", old, "to", cur)
		}
	})
	w.StartAsync()
	return w, nil
}
