package mylog

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Cloud Logging picks up severity and message from these field names
func useGcloudFields() {
	zerolog.LevelFieldName = "severity"
	zerolog.MessageFieldName = "message"
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string {
		return strings.ToUpper(l.String())
	}
}

func newGcloudLogger(componentName string) Logger {
	return newZeroLogger(componentName, zerolog.New(os.Stdout))
}
