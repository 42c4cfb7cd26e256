package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{" WARNING ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"unknown", zerolog.WarnLevel},
		{"", zerolog.WarnLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.name))
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(Config{Level: "warn"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("symbol", "AAPL").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"symbol":"AAPL"`)
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(Config{Level: "info", Pretty: true}, &buf)
	log.Info().Msg("test message")

	out := buf.String()
	assert.Contains(t, out, "test message")
	assert.NotContains(t, out, `"message"`)
}

func TestNew(t *testing.T) {
	log := New(Config{Level: "error"})
	assert.Equal(t, zerolog.ErrorLevel, log.GetLevel())
}
