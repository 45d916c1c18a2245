package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLevelFiltering(t *testing.T) {
	logger := Setup("error")
	ctx := context.Background()

	if logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("error-level logger should not emit warn")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Error("error-level logger should emit error")
	}

	if !Setup("nonsense").Enabled(ctx, slog.LevelInfo) {
		t.Error("unknown level should fall back to info")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Component(logger, "shop").Info("ranked catalog")

	if line := buf.String(); !strings.Contains(line, "component=shop") {
		t.Errorf("log line missing component tag: %s", line)
	}
}
