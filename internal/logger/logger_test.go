package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{
		"purpose", "deck",
		"API_KEY", "sk-live-123",
		"redis_password", "hunter2",
		"dangling",
	})
	assert.Equal(t, []interface{}{
		"purpose", "deck",
		"API_KEY", "[REDACTED]",
		"redis_password", "[REDACTED]",
		"dangling",
	}, got)
}

func TestLoggerRedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("provider", "openai").Warn("provider fallback", "api_key", "sk-test", "slides", 6)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "openai", fields["provider"])
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.EqualValues(t, 6, fields["slides"])
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "off", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger, mode)
	}
}
