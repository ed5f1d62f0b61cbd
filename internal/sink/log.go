package sink

import (
	"fmt"

	"spotfind"
	"spotfind/internal/logger"
)

// Logger emits one structured event per diagnostic returned by Locate,
// and optionally one debug event per located feature, via the teacher's
// ZerologAdapter-backed internal/logger.
type Logger struct {
	log          logger.Logger
	debugFeature bool
}

// NewLogger wraps log. If debugFeature is true, Write also emits a debug
// event per feature (useful for small interactive runs, noisy for batch).
func NewLogger(log logger.Logger, debugFeature bool) *Logger {
	return &Logger{log: log, debugFeature: debugFeature}
}

// Write logs every diagnostic and, if enabled, every row of table.
func (l *Logger) Write(table spotfind.Table, diagnostics []spotfind.Diagnostic) {
	for _, d := range diagnostics {
		l.log.Warning("locate", d.Message, map[string]interface{}{
			"code": string(d.Code),
		})
	}

	if !l.debugFeature {
		return
	}
	for i, row := range table.Rows {
		l.log.Debug("locate", fmt.Sprintf("feature %d", i), map[string]interface{}{
			"pos":  row.Pos,
			"mass": row.Mass,
		})
	}
}
