package executor

import (
	"errors"
	"math"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/protocol/resp"
	"github.com/yndnr/respkv/internal/storage"
)

// Rejection reasons passed to Recorder.RequestRejected.
const (
	ReasonProtocol       = "protocol"
	ReasonUnknownCommand = "unknown_command"
	ReasonInvalidArgs    = "invalid_args"
)

// Recorder receives execution events, typically for metrics.
type Recorder interface {
	CommandExecuted(name string)
	RequestRejected(reason string)
	ExpiredRead()
}

type nopRecorder struct{}

func (nopRecorder) CommandExecuted(string) {}
func (nopRecorder) RequestRejected(string) {}
func (nopRecorder) ExpiredRead()           {}

// Executor turns raw request bytes into reply bytes.
type Executor struct {
	now      func() time.Time
	recorder Recorder
	limits   resp.Limits
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// WithRecorder sets the event recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Executor) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithLimits sets the frame limits used when decoding requests.
func WithLimits(l resp.Limits) Option {
	return func(e *Executor) {
		e.limits = l
	}
}

// New creates an Executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		now:      time.Now,
		recorder: nopRecorder{},
		limits:   resp.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one Step.
type Result struct {
	// Reply is nil when the request gets no reply.
	Reply []byte
	// Consumed is the number of input bytes used by the frame. It is zero
	// when no frame could be decoded.
	Consumed int
	// Command is the executed command name, empty on failure.
	Command string
	Err     error
}

// Execute runs the single request at the start of raw and reports its reply.
// It returns false when the request produces no reply.
func (e *Executor) Execute(st storage.Store, raw []byte) ([]byte, bool) {
	r := e.Step(st, raw)
	if r.Err != nil {
		return nil, false
	}
	return r.Reply, true
}

// Step is Execute for callers that walk a buffer: it also reports how many
// bytes the frame used, including for frames that decoded but were rejected.
// A truncated frame yields resp.ErrIncomplete and is not recorded as a
// rejection.
func (e *Executor) Step(st storage.Store, raw []byte) Result {
	frame, err := resp.DecodeWithLimits(raw, e.limits)
	if err != nil {
		if !errors.Is(err, resp.ErrIncomplete) {
			e.recorder.RequestRejected(ReasonProtocol)
		}
		return Result{Err: err}
	}

	cmd, err := command.Parse(frame.Value)
	if err != nil {
		e.recorder.RequestRejected(rejectionReason(err))
		return Result{Consumed: frame.Consumed, Err: err}
	}

	reply := e.apply(st, cmd)
	e.recorder.CommandExecuted(cmd.Name())
	return Result{Reply: reply, Consumed: frame.Consumed, Command: cmd.Name()}
}

func (e *Executor) apply(st storage.Store, cmd command.Command) []byte {
	switch c := cmd.(type) {
	case command.Ping:
		return resp.AppendSimple(nil, "PONG")

	case command.Echo:
		s, _ := command.TextOf(c.Value)
		return resp.AppendBulk(nil, s)

	case command.Set:
		if c.ExpiryMillis == nil {
			st.Put(c.Key, c.Value)
		} else {
			st.PutWithExpiry(c.Key, c.Value, deadline(e.now().UnixMilli(), *c.ExpiryMillis))
		}
		return resp.AppendSimple(nil, "OK")

	case command.Get:
		entry, ok := st.Lookup(c.Key)
		if !ok {
			return resp.AppendNullBulk(nil)
		}
		if entry.Expired(e.now().UnixMilli()) {
			e.recorder.ExpiredRead()
			return resp.AppendNullBulk(nil)
		}
		return resp.AppendValue(nil, entry.Value)

	default:
		// Parse only returns the cases above.
		panic("executor: unhandled command type")
	}
}

// deadline adds a relative expiry to now, saturating instead of wrapping.
func deadline(now, millis int64) int64 {
	switch {
	case millis > 0 && now > math.MaxInt64-millis:
		return math.MaxInt64
	case millis < 0 && now < math.MinInt64-millis:
		return math.MinInt64
	default:
		return now + millis
	}
}

func rejectionReason(err error) string {
	if errors.Is(err, command.ErrInvalidArgs) {
		return ReasonInvalidArgs
	}
	return ReasonUnknownCommand
}
