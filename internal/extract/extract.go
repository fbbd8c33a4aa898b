// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recognizes candidate fields in plain résumé text: name,
// email, phone and degree. Every extractor is a deterministic function of
// its input and returns types.NotFound when nothing matches.
package extract

import (
	"github.com/pdiddy/cv-extractor/internal/lexicon"
	"github.com/pdiddy/cv-extractor/internal/normalize"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// Limits bounds the look-ahead windows of the heuristics.
type Limits struct {
	// HeaderLines is how many leading lines may hold the name.
	HeaderLines int
	// MinNameTokenRunes is the shortest header word considered a name part.
	MinNameTokenRunes int
	// MinEmailSegmentRunes is the shortest email local-part segment kept
	// by the name fallback.
	MinEmailSegmentRunes int
	// SpecialtyWindow is how many tokens after a degree are examined.
	SpecialtyWindow int
	// SpecialtyMaxWords caps the number of specialty words.
	SpecialtyMaxWords int
	// AcronymMaxRunes is the length at or below which an undotted degree
	// label is upper-cased instead of title-cased.
	AcronymMaxRunes int
}

// DefaultLimits returns the reference bounds.
func DefaultLimits() Limits {
	return Limits{
		HeaderLines:          5,
		MinNameTokenRunes:    3,
		MinEmailSegmentRunes: 2,
		SpecialtyWindow:      10,
		SpecialtyMaxWords:    2,
		AcronymMaxRunes:      2,
	}
}

// LimitsFromConfig overlays the configured bounds on DefaultLimits.
// Non-positive header, window and word values keep their defaults; a
// negative acronym length keeps its default, zero disables length-based
// upper-casing.
func LimitsFromConfig(cfg types.ExtractionConfig) Limits {
	l := DefaultLimits()
	if cfg.HeaderLines > 0 {
		l.HeaderLines = cfg.HeaderLines
	}
	if cfg.SpecialtyWindow > 0 {
		l.SpecialtyWindow = cfg.SpecialtyWindow
	}
	if cfg.SpecialtyMaxWords > 0 {
		l.SpecialtyMaxWords = cfg.SpecialtyMaxWords
	}
	if cfg.AcronymMaxRunes >= 0 {
		l.AcronymMaxRunes = cfg.AcronymMaxRunes
	}
	return l
}

// Extractor runs the lexicon-backed heuristics. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	lex     *lexicon.Registry
	degrees []lexicon.Phrase
	limits  Limits
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLimits replaces the default bounds.
func WithLimits(l Limits) Option {
	return func(e *Extractor) { e.limits = l }
}

// New returns an Extractor backed by lex, or by lexicon.Default when lex is
// nil.
func New(lex *lexicon.Registry, opts ...Option) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	e := &Extractor{
		lex:     lex,
		degrees: lex.Degrees(),
		limits:  DefaultLimits(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Limits returns the bounds in effect.
func (e *Extractor) Limits() Limits {
	return e.limits
}

// Extract normalizes raw once and assembles the five fields into a record.
// The name heuristic reads the raw, line-preserving text; the others read
// the normalized text.
func (e *Extractor) Extract(raw string) types.CandidateRecord {
	normalized := normalize.Text(raw)

	email := Email(normalized)
	first, last := e.Name(raw, email)

	return types.CandidateRecord{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     Phone(normalized),
		Degree:    e.Degree(normalized),
	}
}
