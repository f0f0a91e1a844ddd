package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(salt string) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar(), salt: salt}, logs
}

func TestRedactsSecrets(t *testing.T) {
	l, logs := observed("")
	l.Info("configured", "telegram_token", "123:abc", "api_key", "sk-1", "provider", "anthropic")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["telegram_token"])
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "anthropic", fields["provider"])
}

func TestHashesIdentifiers(t *testing.T) {
	l, logs := observed("pepper")
	l.With("user_id", 42).Warn("fallback")

	fields := logs.All()[0].ContextMap()
	v, ok := fields["user_id"].(string)
	require.True(t, ok)
	assert.Contains(t, v, "hash:")
	assert.NotContains(t, v, "42")
	assert.Len(t, v, len("hash:")+12)
}

func TestOddKeyValues(t *testing.T) {
	l, logs := observed("")
	l.Debug("dangling", "only-key")
	assert.Equal(t, 1, logs.FilterMessage("dangling").Len())
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWithFile(t *testing.T) {
	l, err := New(Options{Mode: "prod", Level: "debug", File: t.TempDir() + "/tooley.log"})
	require.NoError(t, err)
	l.Info("hello", "k", "v")
	l.Sync()
}

func TestQuietStillWritesFile(t *testing.T) {
	path := t.TempDir() + "/play.log"
	l, err := New(Options{Level: "info", File: path, Quiet: true})
	require.NoError(t, err)
	l.Info("lesson generated", "topic", "fractions")
	l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "lesson generated")
}
