package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}
	return NewZerolog(consoleWriter, level)
}

func (z *ZerologAdapter) Info(stage, message string, fields map[string]interface{}) {
	event := z.logger.Info().Str("stage", stage)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(stage string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Str("stage", stage).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("stage failed")
}

func (z *ZerologAdapter) Warning(stage, message string, fields map[string]interface{}) {
	event := z.logger.Warn().Str("stage", stage)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Debug(stage, message string, fields map[string]interface{}) {
	event := z.logger.Debug().Str("stage", stage)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}
