package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FiltersByLevelAndSkipsColourOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zapcore.WarnLevel)

	logger.Info("hidden")
	logger.Warn("Skipping unreadable directory", zap.String("path", "/x"))
	_ = logger.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN\tSkipping unreadable directory")
	assert.Contains(t, out, `{"path": "/x"}`)
	assert.NotContains(t, out, "\x1b[")
}
