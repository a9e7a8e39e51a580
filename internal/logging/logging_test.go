package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		opts Options
		want zapcore.Level
	}{
		{Options{}, zapcore.InfoLevel},
		{Options{Level: "warn"}, zapcore.WarnLevel},
		{Options{Level: "ERROR"}, zapcore.ErrorLevel},
		{Options{Level: "error", Verbose: true}, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		got, err := parseLevel(tc.opts)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%+v", tc.opts)
	}
	_, err := parseLevel(Options{Level: "loud"})
	assert.ErrorContains(t, err, "log level")
}

func TestNewBuildsBothEncoders(t *testing.T) {
	prod, err := New(Options{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))

	dev, err := New(Options{Development: true, Verbose: true})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	_, err = New(Options{Level: "nope"})
	assert.Error(t, err)
}

func TestNewWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, Options{})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("catalog loaded")
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "catalog loaded", line["msg"])
	assert.Equal(t, "info", line["level"])
}
