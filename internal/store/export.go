// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Export writes every stored submission to w, oldest first, in the
// requested format.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format) error {
	subs, err := s.List(ctx, ListOptions{Limit: -1})
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	for i, j := 0, len(subs)-1; i < j; i, j = i+1, j-1 {
		subs[i], subs[j] = subs[j], subs[i]
	}
	if subs == nil {
		subs = []types.Submission{}
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(subs); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(subs); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (valid: %s, %s)", format, FormatJSON, FormatYAML)
	}
	return nil
}
