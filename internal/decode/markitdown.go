// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/cv-extractor/internal/container"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownDecoder converts documents by piping them through the
// markitdown container image. Extension is passed as the stdin format hint
// ("pdf", "docx").
type MarkitdownDecoder struct {
	runtime   container.Runtime
	extension string
}

// NewMarkitdownDecoder creates a decoder that uses rt to run the markitdown
// image. It verifies that the image exists locally before returning.
func NewMarkitdownDecoder(ctx context.Context, rt container.Runtime, extension string) (*MarkitdownDecoder, error) {
	if err := rt.ImageExists(ctx, imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownDecoder{runtime: rt, extension: extension}, nil
}

// Decode implements Decoder.
func (m *MarkitdownDecoder) Decode(ctx context.Context, data []byte) (string, error) {
	var out, stderr bytes.Buffer
	err := m.runtime.Run(ctx, container.RunSpec{
		Image:  imageMarkitdown,
		Args:   []string{"-x", m.extension},
		Stdin:  bytes.NewReader(data),
		Stdout: &out,
		Stderr: &stderr,
	})
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("markitdown %s: %w: %s", m.extension, err, msg)
		}
		return "", fmt.Errorf("markitdown %s: %w", m.extension, err)
	}
	if out.Len() == 0 {
		return "", errors.New("markitdown produced empty output")
	}
	return out.String(), nil
}

// NewMarkitdown returns a Router that decodes PDF and DOCX through the
// markitdown container and plain text in-process.
func NewMarkitdown(ctx context.Context, rt container.Runtime) (*Router, error) {
	pdfDec, err := NewMarkitdownDecoder(ctx, rt, "pdf")
	if err != nil {
		return nil, err
	}
	docxDec, err := NewMarkitdownDecoder(ctx, rt, "docx")
	if err != nil {
		return nil, err
	}
	return NewRouter().
		Handle(types.MediaPDF, pdfDec).
		Handle(types.MediaDOCX, docxDec).
		Handle(types.MediaPlain, PlainTextDecoder{}), nil
}
