package mylog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MarcGrol/stashpaysample/lib/mycontext"
)

const traceFieldName = "logging.googleapis.com/trace"

type zeroLogger struct {
	logger zerolog.Logger
}

func newZeroLogger(componentName string, base zerolog.Logger) Logger {
	return zeroLogger{
		logger: base.With().Str("component", componentName).Logger(),
	}
}

func (l zeroLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	event := l.logger.WithLevel(toLevel(severity))
	if traceLabel != "" {
		event = event.Str("aggregate", traceLabel)
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		event = event.Str(traceFieldName, trace)
	}
	event.Msgf(format, a...)
}
