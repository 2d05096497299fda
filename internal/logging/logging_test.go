package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		debug int
		want  log.Level
	}{
		{debug: -1, want: log.ErrorLevel},
		{debug: DebugQuiet, want: log.ErrorLevel},
		{debug: DebugWarn, want: log.WarnLevel},
		{debug: DebugInfo, want: log.InfoLevel},
		{debug: DebugVerbose, want: log.DebugLevel},
		{debug: 9, want: log.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.debug), "debug %d", tt.debug)
	}
}

func TestNewFiltersByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DebugWarn)

	logger.Info("module loaded", "module", "a")
	logger.Warn("module not loaded", "module", "b")
	logger.Error("module failed", "module", "c")

	out := buf.String()
	assert.NotContains(t, out, "module loaded")
	assert.Contains(t, out, "module not loaded")
	assert.Contains(t, out, "module failed")
	assert.Contains(t, out, "lync")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() {
		logger.Error("dropped", "err", "x")
	})
}
