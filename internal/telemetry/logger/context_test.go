package logger

import (
	"context"
	"strings"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	l, _ := newBufferLogger(t, "info", "json")
	ctx := WithLogger(context.Background(), l)

	if FromContext(ctx) != l {
		t.Error("FromContext did not return the stored logger")
	}
	if FromContext(context.Background()) != Default() {
		t.Error("FromContext without logger should return Default()")
	}
}

func TestConnID(t *testing.T) {
	if got := ConnIDFromContext(context.Background()); got != "" {
		t.Errorf("ConnIDFromContext(empty) = %q", got)
	}
	ctx := WithConnID(context.Background(), "01HZX")
	if got := ConnIDFromContext(ctx); got != "01HZX" {
		t.Errorf("ConnIDFromContext = %q, want 01HZX", got)
	}
}

func TestL_AddsConnID(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")
	ctx := WithConnID(WithLogger(context.Background(), l), "conn-1")

	L(ctx).Info("served")
	if !strings.Contains(buf.String(), `"conn_id":"conn-1"`) {
		t.Errorf("output missing conn_id: %q", buf.String())
	}

	buf.Reset()
	L(WithLogger(context.Background(), l)).Info("plain")
	if strings.Contains(buf.String(), "conn_id") {
		t.Errorf("conn_id added without one in context: %q", buf.String())
	}
}
