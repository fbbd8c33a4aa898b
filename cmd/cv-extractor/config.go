// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/cv-extractor/internal/extract"
	"github.com/pdiddy/cv-extractor/internal/lexicon"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// setDefaults registers every configuration key so that environment
// variables are honoured even without a config file.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("lexicon.file", d.Lexicon.File)
	v.SetDefault("extraction.header_lines", d.Extraction.HeaderLines)
	v.SetDefault("extraction.specialty_window", d.Extraction.SpecialtyWindow)
	v.SetDefault("extraction.specialty_max_words", d.Extraction.SpecialtyMaxWords)
	v.SetDefault("extraction.acronym_max_runes", d.Extraction.AcronymMaxRunes)
	v.SetDefault("decoder.backend", string(d.Decoder.Backend))
	v.SetDefault("decoder.min_usable_chars", d.Decoder.MinUsableChars)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("store.path", d.Store.Path)
}

// loadConfig decodes v into a Config. A config file that exists but cannot
// be parsed is an error.
func loadConfig(v *viper.Viper) (types.Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.ConfigFileUsed() != "" {
			return types.Config{}, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	c := types.DefaultConfig()
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// loadLexicon returns the configured lexicon, or the embedded one when no
// file is set.
func loadLexicon(c types.LexiconConfig) (*lexicon.Registry, error) {
	if c.File == "" {
		return lexicon.Default(), nil
	}
	return lexicon.LoadFile(c.File)
}

// newExtractor builds an Extractor from the lexicon and extraction sections.
func newExtractor(c types.Config) (*extract.Extractor, error) {
	lex, err := loadLexicon(c.Lexicon)
	if err != nil {
		return nil, err
	}
	return extract.New(lex, extract.WithLimits(extract.LimitsFromConfig(c.Extraction))), nil
}
