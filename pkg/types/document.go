// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// MediaType identifies the encoding of an uploaded document.
type MediaType string

const (
	MediaPDF   MediaType = "application/pdf"
	MediaDOCX  MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaPlain MediaType = "text/plain"
)

// extMediaTypes maps lowercase file extensions to their media type.
var extMediaTypes = map[string]MediaType{
	".pdf":  MediaPDF,
	".docx": MediaDOCX,
	".txt":  MediaPlain,
}

// MediaTypeFromFilename returns the media type implied by the file
// extension, or "" when the extension is not recognized.
func MediaTypeFromFilename(name string) MediaType {
	return extMediaTypes[strings.ToLower(filepath.Ext(name))]
}

// ParseMediaType strips parameters (e.g. "; charset=utf-8") from a
// Content-Type value and returns the bare media type in lowercase.
func ParseMediaType(contentType string) MediaType {
	mt, _, _ := strings.Cut(contentType, ";")
	return MediaType(strings.ToLower(strings.TrimSpace(mt)))
}

// IsUploadable reports whether the media type is accepted by the upload
// endpoint. Plain text is only accepted locally through the CLI.
func (m MediaType) IsUploadable() bool {
	return m == MediaPDF || m == MediaDOCX
}

// Document is a file handed to the pipeline for decoding and extraction.
type Document struct {
	Filename  string
	MediaType MediaType
	Data      []byte
}
