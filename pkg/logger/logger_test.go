package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_LevelMapping(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
		{"default is info", "", zerolog.InfoLevel},
		{"unknown falls back to info", "trace2", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, "json")
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNew_ConfiguredValuesWinOverEnvironment(t *testing.T) {
	// The constructor takes the loaded configuration, which already folded in
	// the environment and any .env file; raw env vars must not override it.
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")

	log := New("debug", "pretty")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}
