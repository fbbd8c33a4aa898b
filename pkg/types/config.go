// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LogConfig holds logger settings shared by every subcommand.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects "console" (human readable) or "json" output.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// LexiconConfig selects the lexicon data asset.
type LexiconConfig struct {
	// File is an optional path to a lexicon YAML file replacing the
	// embedded one. Empty means the embedded lexicon.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// ExtractionConfig holds the fixed bounds of the field heuristics. Changing
// any of them changes observable output.
type ExtractionConfig struct {
	// HeaderLines is how many leading lines are searched for a name (default 5).
	HeaderLines int `json:"header_lines" yaml:"header_lines" mapstructure:"header_lines"`

	// SpecialtyWindow is how many tokens after a degree are examined for a
	// field of study (default 10).
	SpecialtyWindow int `json:"specialty_window" yaml:"specialty_window" mapstructure:"specialty_window"`

	// SpecialtyMaxWords caps the specialty length (default 2).
	SpecialtyMaxWords int `json:"specialty_max_words" yaml:"specialty_max_words" mapstructure:"specialty_max_words"`

	// AcronymMaxRunes is the label length at or below which an undotted
	// degree label is upper-cased (default 2).
	AcronymMaxRunes int `json:"acronym_max_runes" yaml:"acronym_max_runes" mapstructure:"acronym_max_runes"`
}

// DecoderBackend identifies how binary documents are turned into text.
type DecoderBackend string

const (
	// DecoderNative decodes PDF and DOCX in-process.
	DecoderNative DecoderBackend = "native"
	// DecoderMarkitdown pipes documents through the markitdown container.
	DecoderMarkitdown DecoderBackend = "markitdown"
)

// DecoderConfig holds document decoding settings.
type DecoderConfig struct {
	// Backend selects native or markitdown decoding.
	Backend DecoderBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// MinUsableChars is the minimum trimmed text length below which the
	// decoded content is treated as unusable (default 10).
	MinUsableChars int `json:"min_usable_chars" yaml:"min_usable_chars" mapstructure:"min_usable_chars"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Host string `json:"host" yaml:"host" mapstructure:"host"`
	Port int    `json:"port" yaml:"port" mapstructure:"port"`

	// MaxUploadBytes limits the request body size (default 10 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig holds submission history settings.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups every section of the configuration file.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Lexicon    LexiconConfig    `json:"lexicon" yaml:"lexicon" mapstructure:"lexicon"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Decoder    DecoderConfig    `json:"decoder" yaml:"decoder" mapstructure:"decoder"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Extraction: ExtractionConfig{
			HeaderLines:       5,
			SpecialtyWindow:   10,
			SpecialtyMaxWords: 2,
			AcronymMaxRunes:   2,
		},
		Decoder: DecoderConfig{
			Backend:        DecoderNative,
			MinUsableChars: 10,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8000,
			MaxUploadBytes:  10 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
