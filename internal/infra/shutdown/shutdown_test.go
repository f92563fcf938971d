package shutdown

import (
	"context"
	"errors"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestHandler_ReverseOrder(t *testing.T) {
	h := NewHandler(time.Second)

	var (
		mu    sync.Mutex
		order []string
	)
	for _, name := range []string{"store", "redis", "http"} {
		h.OnShutdown(name, func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got := strings.Join(order, ","); got != "http,redis,store" {
		t.Errorf("order = %s, want http,redis,store", got)
	}
	select {
	case <-h.Done():
	default:
		t.Error("Done() not closed after Wait")
	}
}

func TestHandler_Signal(t *testing.T) {
	h := NewHandler(time.Second)
	called := make(chan struct{}, 1)
	h.OnShutdown("probe", func(context.Context) error {
		called <- struct{}{}
		return nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after SIGTERM")
	}
	if len(called) != 1 {
		t.Error("hook not called")
	}
}

func TestHandler_HookErrors(t *testing.T) {
	h := NewHandler(time.Second)
	errBoom := errors.New("boom")
	h.OnShutdown("first", func(context.Context) error { return errBoom })
	h.OnShutdown("second", func(context.Context) error { return nil })

	err := h.Shutdown()
	if !errors.Is(err, errBoom) {
		t.Fatalf("Shutdown() error = %v, want wrapping boom", err)
	}
	if !strings.Contains(err.Error(), "first") {
		t.Errorf("error %q does not name the hook", err)
	}
	if err := h.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v, want nil (hooks run once)", err)
	}
}

func TestHandler_HookDeadline(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := h.Shutdown(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want deadline exceeded", err)
	}
}
