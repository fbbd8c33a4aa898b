// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one document through decoding, the usability check,
// field extraction and optional persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/cv-extractor/internal/decode"
	"github.com/pdiddy/cv-extractor/internal/extract"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// ErrContentUnusable is returned when a document cannot be decoded or its
// text is too short to be a résumé.
var ErrContentUnusable = errors.New("content unusable")

const defaultMinUsableChars = 10

// DocumentDecoder turns a document into text. *decode.Router implements it.
type DocumentDecoder interface {
	Decode(ctx context.Context, doc types.Document) (string, error)
}

// Recorder persists submissions. *store.Store implements it.
type Recorder interface {
	Save(ctx context.Context, sub *types.Submission) error
}

// Processor is safe for concurrent use when its decoder and recorder are.
type Processor struct {
	decoder   DocumentDecoder
	extractor *extract.Extractor
	recorder  Recorder
	minUsable int
	logger    zerolog.Logger
	now       func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithRecorder saves every successful submission to r.
func WithRecorder(r Recorder) Option {
	return func(p *Processor) { p.recorder = r }
}

// WithMinUsableChars sets the trimmed text length below which decoded
// content is unusable. Non-positive values keep the default of 10.
func WithMinUsableChars(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.minUsable = n
		}
	}
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// New returns a Processor. A nil extractor uses extract.New(nil).
func New(dec DocumentDecoder, ex *extract.Extractor, opts ...Option) *Processor {
	if ex == nil {
		ex = extract.New(nil)
	}
	p := &Processor{
		decoder:   dec,
		extractor: ex,
		minUsable: defaultMinUsableChars,
		logger:    log.Logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process decodes doc and extracts its record. Unsupported media types are
// reported with decode.ErrUnsupportedMediaType; decoder failures and short
// text with ErrContentUnusable. When a recorder is configured the
// submission is saved and carries the assigned ID.
func (p *Processor) Process(ctx context.Context, doc types.Document) (types.Submission, error) {
	logger := p.logger.With().Str("file", doc.Filename).Logger()

	text, err := p.decoder.Decode(ctx, doc)
	if err != nil {
		if errors.Is(err, decode.ErrUnsupportedMediaType) || ctx.Err() != nil {
			return types.Submission{}, err
		}
		logger.Warn().Err(err).Msg("decoding failed")
		return types.Submission{}, fmt.Errorf("%w: %v", ErrContentUnusable, err)
	}

	sub, err := p.extract(doc, text)
	if err != nil {
		logger.Warn().Int("chars", sub.TextLength).Msg("content unusable")
		return types.Submission{}, err
	}

	if p.recorder != nil {
		if err := p.recorder.Save(ctx, &sub); err != nil {
			return types.Submission{}, fmt.Errorf("saving %s: %w", doc.Filename, err)
		}
	}

	logger.Info().
		Str("id", sub.ID).
		Int("chars", sub.TextLength).
		Strs("missing", sub.Record.MissingFields()).
		Msg("extracted")
	return sub, nil
}

// ProcessText extracts a record from already-decoded text. Recording and
// the usability check apply as in Process.
func (p *Processor) ProcessText(ctx context.Context, name, text string) (types.Submission, error) {
	return p.Process(ctx, types.Document{
		Filename:  name,
		MediaType: types.MediaPlain,
		Data:      []byte(text),
	})
}

func (p *Processor) extract(doc types.Document, text string) (types.Submission, error) {
	sub := types.Submission{
		Filename:   doc.Filename,
		MediaType:  doc.MediaType,
		TextLength: utf8.RuneCountInString(text),
		CreatedAt:  p.now(),
	}
	if sub.MediaType == "" {
		sub.MediaType = types.MediaTypeFromFilename(doc.Filename)
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < p.minUsable {
		return sub, fmt.Errorf("%s: %w: decoded text shorter than %d characters", doc.Filename, ErrContentUnusable, p.minUsable)
	}
	sub.Record = p.extractor.Extract(text)
	return sub, nil
}
