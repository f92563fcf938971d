package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// RouterConfig wires the admin endpoints.
type RouterConfig struct {
	// Metrics serves /metrics; typically metric.Registry.Handler().
	Metrics http.Handler
	Logger  logger.Logger
}

// NewRouter builds the admin handler.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	mux := http.NewServeMux()
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(buildinfo.Get())
	})

	return Chain(mux, Recover(log), RequestID(), AccessLog(log))
}
