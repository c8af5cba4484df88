package mylog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func useConsoleFields() {
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string {
		return l.String()
	}
}

func newStandardLogger(componentName string) Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return newZeroLogger(componentName, zerolog.New(output).With().Timestamp().Logger())
}
