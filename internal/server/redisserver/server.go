package redisserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/core/executor"
	"github.com/yndnr/respkv/internal/protocol/resp"
	"github.com/yndnr/respkv/internal/storage"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// ErrBufferOverflow reports a connection whose unfinished frame outgrew
// Config.MaxBuffer.
var ErrBufferOverflow = errors.New("redisserver: pending bytes exceed max buffer")

// Config holds the listener configuration.
type Config struct {
	Addr string
	// ReadBuffer is the size of each socket read (default 1024).
	ReadBuffer int
	// MaxBuffer caps pending bytes per connection (default 1 MiB).
	MaxBuffer int
	// IdleTimeout closes connections with no incoming bytes. Zero disables it.
	IdleTimeout time.Duration
	// WriteTimeout bounds each reply write. Zero disables it.
	WriteTimeout time.Duration
	// RateLimit paces commands per second per connection; zero is unlimited.
	RateLimit int
}

func (c *Config) applyDefaults() {
	if c.ReadBuffer <= 0 {
		c.ReadBuffer = 1024
	}
	if c.MaxBuffer <= 0 {
		c.MaxBuffer = 1 << 20
	}
	if c.MaxBuffer < c.ReadBuffer {
		c.MaxBuffer = c.ReadBuffer
	}
}

// ConnMetrics receives connection lifecycle events.
type ConnMetrics interface {
	ConnectionOpened()
	ConnectionClosed()
}

type nopMetrics struct{}

func (nopMetrics) ConnectionOpened() {}
func (nopMetrics) ConnectionClosed() {}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithConnMetrics sets the connection metrics sink.
func WithConnMetrics(m ConnMetrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// Server is the RESP TCP server.
type Server struct {
	cfg     Config
	store   storage.Store
	exec    *executor.Executor
	log     logger.Logger
	metrics ConnMetrics

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]context.CancelFunc
}

// New creates a server that executes requests against st.
func New(cfg Config, st storage.Store, exec *executor.Executor, opts ...Option) *Server {
	cfg.applyDefaults()
	s := &Server{
		cfg:     cfg,
		store:   st,
		exec:    exec,
		log:     logger.Default(),
		metrics: nopMetrics{},
		conns:   make(map[net.Conn]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln
	s.running.Store(true)
	s.log.Info("redis server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil {
			s.log.Error("redis accept loop stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes open connections and waits for their
// goroutines until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	err := s.ln.Close()

	s.mu.Lock()
	for c, cancel := range s.conns {
		cancel()
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}

		connCtx, cancel := context.WithCancel(ctx)
		if !s.track(c, cancel) {
			cancel()
			_ = c.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(connCtx, c)
		}()
	}
}

func (s *Server) track(c net.Conn, cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.conns[c] = cancel
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	cancel := s.conns[c]
	delete(s.conns, c)
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	_ = c.Close()
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	id := ulid.Make().String()
	ctx = logger.WithConnID(logger.WithLogger(ctx, s.log.With("remote", c.RemoteAddr().String())), id)
	log := logger.L(ctx)

	s.metrics.ConnectionOpened()
	defer s.metrics.ConnectionClosed()
	log.Debug("connection accepted")

	cs := &connState{
		chunk: make([]byte, s.cfg.ReadBuffer),
		buf:   make([]byte, 0, s.cfg.ReadBuffer),
	}
	if s.cfg.RateLimit > 0 {
		cs.limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateLimit)
	}

	for {
		if s.cfg.IdleTimeout > 0 {
			if err := c.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
		}
		n, rerr := c.Read(cs.chunk)
		if n > 0 {
			cs.buf = append(cs.buf, cs.chunk[:n]...)
			if err := s.drain(ctx, cs, func(b []byte) error { return s.write(c, b) }); err != nil {
				if !errors.Is(err, ErrBufferOverflow) {
					log.Debug("closing connection", "error", err)
					return
				}
				log.Warn("discarding pending bytes", "error", err, "max_buffer", s.cfg.MaxBuffer)
			}
		}
		if rerr != nil {
			logReadError(log, rerr)
			return
		}
	}
}

// connState is the per-connection accumulation buffer.
type connState struct {
	chunk   []byte
	buf     []byte
	limiter *rate.Limiter
}

// drain runs every complete frame in cs.buf and passes the concatenated
// replies to flush. Remaining bytes are moved to the front of the buffer.
// Pending replies are flushed before the limiter blocks.
func (s *Server) drain(ctx context.Context, cs *connState, flush func([]byte) error) error {
	log := logger.L(ctx)

	var out []byte
	pos := 0
	for pos < len(cs.buf) {
		r := s.exec.Step(s.store, cs.buf[pos:])
		if errors.Is(r.Err, resp.ErrIncomplete) {
			break
		}
		if r.Consumed == 0 {
			log.Debug("malformed frame, discarding pending bytes",
				"bytes", len(cs.buf)-pos, "error", r.Err)
			pos = len(cs.buf)
			break
		}
		pos += r.Consumed
		if r.Err != nil {
			log.Debug("request rejected", "error", r.Err)
			continue
		}
		out = append(out, r.Reply...)

		if cs.limiter == nil {
			continue
		}
		if len(out) > 0 && cs.limiter.Tokens() < 1 {
			if err := flush(out); err != nil {
				cs.buf = cs.buf[:0]
				return fmt.Errorf("write reply: %w", err)
			}
			out = out[:0]
		}
		if err := cs.limiter.Wait(ctx); err != nil {
			cs.buf = cs.buf[:0]
			return err
		}
	}

	rest := copy(cs.buf, cs.buf[pos:])
	cs.buf = cs.buf[:rest]

	if len(out) > 0 {
		if err := flush(out); err != nil {
			cs.buf = cs.buf[:0]
			return fmt.Errorf("write reply: %w", err)
		}
	}

	if len(cs.buf) > s.cfg.MaxBuffer {
		n := len(cs.buf)
		cs.buf = cs.buf[:0]
		return fmt.Errorf("%w: %d bytes", ErrBufferOverflow, n)
	}
	return nil
}

func (s *Server) write(c net.Conn, b []byte) error {
	if s.cfg.WriteTimeout > 0 {
		if err := c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	_, err := c.Write(b)
	return err
}

func logReadError(log logger.Logger, err error) {
	var ne net.Error
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		log.Debug("connection closed")
	case errors.As(err, &ne) && ne.Timeout():
		log.Debug("connection idle timeout")
	default:
		log.Debug("connection read error", "error", err)
	}
}
