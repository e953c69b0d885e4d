package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"sales-dashboard/internal/config"
)

func TestNewLoggerTo_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"unknown", "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: tt.format})
			logger.Info("hello")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID() = %q, want abc", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() on empty context = %q", got)
	}
}

func TestStartSpan_Nesting(t *testing.T) {
	ctx, parent := StartSpan(context.Background(), "render")
	_, child := StartSpan(ctx, "render.pie")

	if child.ParentID != parent.SpanID {
		t.Errorf("child.ParentID = %q, want %q", child.ParentID, parent.SpanID)
	}
	if child.TraceID != parent.TraceID {
		t.Errorf("child.TraceID = %q, want %q", child.TraceID, parent.TraceID)
	}
}

func TestSpan_End(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "debug", Format: "text"})

	_, span := StartSpan(context.Background(), "render.bar")
	span.SetTag("figure", "bar")
	span.End(logger)

	if span.Duration == nil {
		t.Fatal("End() should set duration")
	}
	if !strings.Contains(buf.String(), "span finished") || !strings.Contains(buf.String(), "figure=bar") {
		t.Errorf("unexpected log output: %s", buf.String())
	}

	buf.Reset()
	_, failed := StartSpan(context.Background(), "render.line")
	failed.SetError(errors.New("no points"))
	failed.End(logger)

	if failed.Status != SpanStatusError {
		t.Errorf("status = %s, want %s", failed.Status, SpanStatusError)
	}
	if !strings.Contains(buf.String(), "span failed") || !strings.Contains(buf.String(), "no points") {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
