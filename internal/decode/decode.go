// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decode turns uploaded documents into plain, line-preserving text
// with pluggable backends.
package decode

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/cv-extractor/internal/container"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// ErrUnsupportedMediaType is returned when no decoder handles a document's
// media type.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Decoder transforms document bytes into text. Different backends (native
// PDF and DOCX readers, markitdown) implement this interface.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (string, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, data []byte) (string, error)

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Router dispatches documents to a Decoder by media type.
type Router struct {
	decoders map[types.MediaType]Decoder
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{decoders: make(map[types.MediaType]Decoder)}
}

// Handle registers d for media type mt, replacing any previous decoder.
func (r *Router) Handle(mt types.MediaType, d Decoder) *Router {
	r.decoders[mt] = d
	return r
}

// Supports reports whether a decoder is registered for mt.
func (r *Router) Supports(mt types.MediaType) bool {
	_, ok := r.decoders[mt]
	return ok
}

// Decode decodes doc with the decoder registered for its media type. When
// the document carries no media type it is inferred from the filename.
func (r *Router) Decode(ctx context.Context, doc types.Document) (string, error) {
	mt := doc.MediaType
	if mt == "" {
		mt = types.MediaTypeFromFilename(doc.Filename)
	}
	d, ok := r.decoders[mt]
	if !ok {
		return "", fmt.Errorf("%s (%q): %w", doc.Filename, mt, ErrUnsupportedMediaType)
	}
	text, err := d.Decode(ctx, doc.Data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", doc.Filename, err)
	}
	return text, nil
}

// NewNative returns a Router backed by the in-process PDF, DOCX and plain
// text decoders.
func NewNative() *Router {
	return NewRouter().
		Handle(types.MediaPDF, PDFDecoder{}).
		Handle(types.MediaDOCX, DOCXDecoder{}).
		Handle(types.MediaPlain, PlainTextDecoder{})
}

// New builds the Router selected by cfg.Backend. The markitdown backend
// detects a container runtime and verifies the image before returning.
func New(ctx context.Context, cfg types.DecoderConfig) (*Router, error) {
	switch cfg.Backend {
	case "", types.DecoderNative:
		return NewNative(), nil
	case types.DecoderMarkitdown:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewMarkitdown(ctx, rt)
	default:
		return nil, fmt.Errorf("unknown decoder backend %q (valid: %s, %s)",
			cfg.Backend, types.DecoderNative, types.DecoderMarkitdown)
	}
}
