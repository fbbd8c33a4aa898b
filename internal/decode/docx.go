// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	// paragraphBreaks turn WordprocessingML paragraph and line breaks into
	// newlines before the markup is removed.
	paragraphBreaks = strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:cr/>", "\n",
		"<w:tab/>", "\t",
	)
	xmlTag = regexp.MustCompile(`<[^>]*>`)
)

// DOCXDecoder extracts the body text of Word documents, one line per
// paragraph.
type DOCXDecoder struct{}

// Decode implements Decoder.
func (DOCXDecoder) Decode(_ context.Context, data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening DOCX: %w", err)
	}
	defer doc.Close()

	return documentText(doc.Editable().GetContent()), nil
}

// documentText reduces word/document.xml to its text content.
func documentText(xml string) string {
	s := paragraphBreaks.Replace(xml)
	s = xmlTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
