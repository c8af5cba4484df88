package mylog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/stashpaysample/lib/mycontext"
)

func TestLogger(t *testing.T) {
	t.Run("Structured entry", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newZeroLogger("checkoutsession", zerolog.New(buf))

		c := context.WithValue(context.Background(), mycontext.CtxTraceContext{}, "projects/p/traces/t")
		logger.Log(c, "session-1", SeverityWarn, "resolved %s", "success")

		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "checkoutsession", entry["component"])
		assert.Equal(t, "session-1", entry["aggregate"])
		assert.Equal(t, "projects/p/traces/t", entry[traceFieldName])
		assert.Equal(t, "resolved success", entry[zerolog.MessageFieldName])
	})

	t.Run("Below level is dropped", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newZeroLogger("checkoutsession", zerolog.New(buf).Level(zerolog.InfoLevel))

		logger.Log(context.Background(), "", SeverityDebug, "noise")

		assert.Empty(t, buf.String())
	})

	t.Run("Parse level", func(t *testing.T) {
		assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
		assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
		assert.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
	})

	t.Run("Configure for cloud project", func(t *testing.T) {
		// setup
		defer Configure("", "info")

		// when
		Configure("my-project", "debug")

		// then
		assert.Equal(t, "severity", zerolog.LevelFieldName)
		assert.Equal(t, "WARN", zerolog.LevelFieldMarshalFunc(zerolog.WarnLevel))
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("Configure without project", func(t *testing.T) {
		// when
		Configure("", "warn")
		defer Configure("", "info")

		// then
		assert.Equal(t, "level", zerolog.LevelFieldName)
		assert.Equal(t, "warn", zerolog.LevelFieldMarshalFunc(zerolog.WarnLevel))
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})
}
