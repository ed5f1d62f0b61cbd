// Package logger provides the structured logging interface used across the
// feature-finding pipeline, decoupling callers from the zerolog backend.
package logger

// Logger is implemented by ZerologAdapter. It is small and field-based so
// that orchestration code can tag events with the pipeline stage that
// produced them (bandpass, detect, refine, dedup, postfilter, batch, ...)
// and ad hoc context, without building up a concrete zerolog.Event.
type Logger interface {
	Debug(stage, message string, fields map[string]interface{})
	Info(stage, message string, fields map[string]interface{})
	Warning(stage, message string, fields map[string]interface{})
	Error(stage string, err error, fields map[string]interface{})
}

// Nop discards everything; it satisfies Logger for callers that want no
// log output.
type Nop struct{}

func (Nop) Debug(string, string, map[string]interface{})        {}
func (Nop) Info(string, string, map[string]interface{})         {}
func (Nop) Warning(string, string, map[string]interface{})      {}
func (Nop) Error(string, error, map[string]interface{})         {}
