// Package logging builds the human-readable log sink of the module system.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Debug verbosity levels accepted by the CLI and the project file.
const (
	DebugQuiet   = 0
	DebugWarn    = 1
	DebugInfo    = 2
	DebugVerbose = 3
)

// LevelFor maps a debug verbosity (0-3) to a log level. Values outside the
// range are clamped.
func LevelFor(debug int) log.Level {
	switch {
	case debug <= DebugQuiet:
		return log.ErrorLevel
	case debug == DebugWarn:
		return log.WarnLevel
	case debug == DebugInfo:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// New returns a logger writing to w (stderr when nil) at the level for debug.
func New(w io.Writer, debug int) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "lync",
		Level:           LevelFor(debug),
		ReportTimestamp: debug >= DebugVerbose,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
