package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestHandler(buf *bytes.Buffer, level slog.Level) *TerminalHandler {
	return newTerminalHandler(buf, &slog.HandlerOptions{Level: level})
}

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, slog.LevelDebug)

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "table admitted", 0)
	r.AddAttrs(slog.String("table", "breakfast"), slog.Int("lookups", 3))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	want := "10:30:45.123 INF table admitted table=breakfast lookups=3\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTerminalHandler_NoColourForBuffers(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newTestHandler(&buf, slog.LevelInfo)).Error("boom")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected no ANSI codes, got %q", buf.String())
	}
}

func TestTerminalHandler_Colour(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, slog.LevelInfo)
	h.colour = true

	slog.New(h).Error("boom")

	if !strings.Contains(buf.String(), ansiRed+"ERR"+ansiReset) {
		t.Errorf("expected red ERR label, got %q", buf.String())
	}
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTestHandler(&buf, slog.LevelDebug)
			r := slog.NewRecord(time.Now(), tt.level, "msg", 0)
			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error: %v", err)
			}
			if !strings.Contains(buf.String(), " "+tt.expected+" ") {
				t.Errorf("expected %s, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{}, slog.LevelWarn)
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestTerminalHandler_DefaultLevel(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by default")
	}
}

func TestTerminalHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestHandler(&buf, slog.LevelInfo)).
		With("component", "store").
		With("table", "breakfast")

	logger.Info("row inserted", "rowid", 4)

	if !strings.Contains(buf.String(), "row inserted component=store table=breakfast rowid=4") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestTerminalHandler_WithAttrsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(newTestHandler(&buf, slog.LevelInfo))
	_ = base.With("component", "store")

	base.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Errorf("parent handler picked up child attrs: %q", buf.String())
	}
}

func TestTerminalHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestHandler(&buf, slog.LevelInfo)).WithGroup("http")

	logger.Info("request", "status", 200, slog.Group("req", slog.String("method", "GET")))

	out := buf.String()
	if !strings.Contains(out, "http.status=200") {
		t.Errorf("expected grouped key, got %q", out)
	}
	if !strings.Contains(out, "http.req.method=GET") {
		t.Errorf("expected nested group key, got %q", out)
	}
}

func TestTerminalHandler_EmptyGroup(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{}, slog.LevelInfo)
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestTerminalHandler_QuotesValues(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newTestHandler(&buf, slog.LevelInfo)).Info("search", "q", "baked beans", "empty", "")

	out := buf.String()
	if !strings.Contains(out, `q="baked beans"`) {
		t.Errorf("expected quoted value, got %q", out)
	}
	if !strings.Contains(out, `empty=""`) {
		t.Errorf("expected quoted empty value, got %q", out)
	}
}
