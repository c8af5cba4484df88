package mylog

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// New creates the logger of a component, using the backend chosen by Configure
var New func(name string) Logger = newStandardLogger

type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}

// Configure selects structured Cloud Logging output when running in a Google Cloud project and
// console output otherwise. Loggers created before the call keep their backend.
func Configure(projectID string, level string) {
	if projectID != "" {
		useGcloudFields()
		New = newGcloudLogger
	} else {
		useConsoleFields()
		New = newStandardLogger
	}
	SetLevel(level)
}

// SetLevel sets the minimum severity for all loggers; unknown levels fall back to info.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func toLevel(severity Severity) zerolog.Level {
	switch severity {
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityWarn:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
