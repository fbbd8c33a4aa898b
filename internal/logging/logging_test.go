// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.LogConfig
		wantLevel zerolog.Level
		wantErr   string
	}{
		{"defaults", types.LogConfig{}, zerolog.InfoLevel, ""},
		{"debug console", types.LogConfig{Level: "debug", Format: "console"}, zerolog.DebugLevel, ""},
		{"upper-case level", types.LogConfig{Level: "WARN", Format: "json"}, zerolog.WarnLevel, ""},
		{"bad level", types.LogConfig{Level: "loud"}, zerolog.Disabled, `invalid log level "loud"`},
		{"bad format", types.LogConfig{Format: "xml"}, zerolog.Disabled, `invalid log format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, &bytes.Buffer{})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("file", "cv.pdf").Msg("extracted")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "cv.pdf", event["file"])
	assert.Equal(t, "extracted", event["message"])
	assert.Contains(t, event, "time")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Warn().Str("file", "cv.pdf").Msg("content unusable")
	assert.Contains(t, buf.String(), "content unusable")
	assert.Contains(t, buf.String(), "file=")
}

func TestSetup(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	require.NoError(t, Setup(types.LogConfig{Level: "error", Format: "json"}, &buf))
	log.Warn().Msg("dropped")
	log.Error().Msg("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	assert.Error(t, Setup(types.LogConfig{Level: "nope"}, &buf))
}
