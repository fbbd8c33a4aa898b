// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

// emailPattern requires at least one dot after the @. Domain labels are
// matched whole, so a sentence-ending period is not swallowed.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)+`)

// Email returns the leftmost email-shaped substring of text.
func Email(text string) string {
	if m := emailPattern.FindString(text); m != "" {
		return m
	}
	return types.NotFound
}
