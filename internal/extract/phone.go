// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

var (
	// phonePattern is an optional country code followed by 8 to 15 digits
	// with at most one space, dot or hyphen between consecutive digits.
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\s.-]?)?(?:\d[\s.-]?){7,14}\d`)

	// yearSpan matches a lone year or a year range such as 2020-2022.
	yearSpan = regexp.MustCompile(`^\d{4}(-\d{2,4})?$`)
)

// Phone returns the first phone-shaped span of text that is not a year
// range, separators preserved.
func Phone(text string) string {
	for _, m := range phonePattern.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if yearSpan.MatchString(m) {
			continue
		}
		return m
	}
	return types.NotFound
}
