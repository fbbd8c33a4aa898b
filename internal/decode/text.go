// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"context"
	"strings"
)

// PlainTextDecoder passes UTF-8 text through, replacing invalid byte
// sequences and dropping a leading byte order mark.
type PlainTextDecoder struct{}

// Decode implements Decoder.
func (PlainTextDecoder) Decode(_ context.Context, data []byte) (string, error) {
	s := strings.ToValidUTF8(string(data), "\uFFFD")
	return strings.TrimPrefix(s, "\ufeff"), nil
}
