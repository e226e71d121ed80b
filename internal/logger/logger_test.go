package logger_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  logger.LogLevel
	}{
		{"debug", logger.DebugLevel},
		{"INFO", logger.InfoLevel},
		{"", logger.InfoLevel},
		{"warning", logger.WarnLevel},
		{"warn", logger.WarnLevel},
		{" error ", logger.ErrorLevel},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := logger.ParseLevel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := logger.ParseLevel("verbose")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestErrorWithCodeFields(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.DebugLevel)
	t.Cleanup(func() { logger.SetLogLevel(logger.InfoLevel) })

	err := errors.New().Wrap(errors.ErrDomain, stderrors.New("target is zero"))
	logger.ErrorWithCode(err).Msg("evaluation failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "domain_error", entry["error_code"])
	assert.Equal(t, "target is zero", entry["error"])
	assert.Equal(t, "evaluation failed", entry["message"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.WarnLevel)
	t.Cleanup(func() { logger.SetLogLevel(logger.InfoLevel) })

	logger.Debug().Msg("hidden")
	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextLogger(t *testing.T) {
	logger.SetLogLevel(logger.DebugLevel)
	t.Cleanup(func() { logger.SetLogLevel(logger.InfoLevel) })

	var buf bytes.Buffer
	log := logger.New(&buf).With("component", "synth")
	log.Info().Int("points", 13).Msg("series generated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "synth", entry["component"])
	assert.EqualValues(t, 13, entry["points"])
}
