// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFDecoder extracts text from PDF files row by row, one output line per
// text row, so the first lines of the page stay the first lines of the text.
type PDFDecoder struct{}

// Decode implements Decoder.
func (PDFDecoder) Decode(ctx context.Context, data []byte) (out string, err error) {
	// The PDF library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	pages := reader.NumPage()
	if pages == 0 {
		return "", errors.New("PDF has no pages")
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading PDF page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
