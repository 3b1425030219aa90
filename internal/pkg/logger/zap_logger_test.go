package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestObservedLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewObservedLogger(core)

	l.Warn("NOTE_REPOSITORY", "Skipping malformed document", map[string]interface{}{"path": "users/u1/x"})
	l.Info("NOTE_SERVICE", "Saved", nil)

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, first.Level)
	assert.Equal(t, "Skipping malformed document", first.Message)
	assert.Equal(t, "NOTE_REPOSITORY", first.ContextMap()["module"])

	second := logs.All()[1]
	assert.Equal(t, map[string]interface{}{}, second.ContextMap()["details"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Error("SERVER", "ignored", map[string]interface{}{"error": "x"})
	assert.NoError(t, l.Sync())
}
