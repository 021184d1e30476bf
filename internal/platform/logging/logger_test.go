package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{"": LevelInfo, "DEBUG": LevelDebug, "warning": LevelWarn, " error ": LevelError}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLogger_WritesFieldsAndTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).With("service", "agenda")

	logger.Debug("hidden", "event_id", "x")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	logger.WarnContext(ctx, "discard event", "event_id", "abc", "sessions", 0)
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug entry to be filtered, got %s", out)
	}
	for _, want := range []string{`"msg":"discard event"`, `"event_id":"abc"`, `"service":"agenda"`, `"trace_id":"01000000000000000000000000000000"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected a usable logger")
	}
}

func TestLogger_CountsWarningsAndErrorsAcrossDerivedLoggers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	root := NewJSONWriter(LevelError, &buf)
	child := root.With("run", 1).Named("goodreads")

	root.Warn("below the logger level")
	child.Error("lookup failed", "error", errors.New("boom"))
	root.ErrorContext(context.Background(), "discard event")

	got := root.Counts()
	if got.Warn != 0 || got.Error != 2 {
		t.Fatalf("expected 0 warnings and 2 errors, got %+v", got)
	}
	if child.Counts() != got {
		t.Fatalf("expected derived logger to share counts, got %+v", child.Counts())
	}
	if !strings.Contains(buf.String(), `"logger":"goodreads"`) {
		t.Fatalf("expected component name in %s", buf.String())
	}
}

func TestLogger_FormatsStringersAndDurations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)
	logger.Info("agenda written", "elapsed", 1500*time.Millisecond, "level", LevelWarn)

	out := buf.String()
	for _, want := range []string{`"elapsed":"1.5s"`, `"level":"warn"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}
