// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

// New builds a logger writing to w (stderr when nil) at the configured
// level. Format "console" renders human-readable lines; "json" writes one
// JSON object per event.
func New(cfg types.LogConfig, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (valid: console, json)", cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Setup builds a logger with New and installs it as log.Logger.
func Setup(cfg types.LogConfig, w io.Writer) error {
	zerolog.TimeFieldFormat = time.RFC3339
	logger, err := New(cfg, w)
	if err != nil {
		return err
	}
	log.Logger = logger
	return nil
}
