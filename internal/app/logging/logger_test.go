package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestNewJSONWritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.WithContext(context.Background()).Info("webhook applied", "correlation_id", "conv-123", "status", "paid")

	var record map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	require.Equal(t, "webhook applied", record["msg"])
	require.Equal(t, "INFO", record["level"])
	require.Equal(t, "conv-123", record["correlation_id"])
	require.Equal(t, "paid", record["status"])
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "text", &buf)
	require.NoError(t, err)

	logger.With("component", "ledger").Warn("slow")
	require.Contains(t, buf.String(), "component=ledger")
	require.Contains(t, buf.String(), "level=WARN")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace":   levelTrace,
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New("info", "xml", &bytes.Buffer{})
	require.Error(t, err)
}
