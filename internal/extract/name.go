// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

// wordPattern matches Latin-1 letter runs, accented letters included.
var wordPattern = regexp.MustCompile(`[A-Za-zÀ-ÿ]+`)

// lineBreaks folds every line terminator into \n.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n", "\v", "\n")

// Name returns first and last name from the header lines of raw, falling
// back to the local part of email. Both are NotFound when neither source
// yields two words.
func (e *Extractor) Name(raw, email string) (first, last string) {
	for _, line := range headerLines(raw, e.limits.HeaderLines) {
		if words := e.nameWords(line); len(words) >= 2 {
			return capitalize(words[0]), capitalize(words[1])
		}
	}

	if parts := e.emailNameParts(email); len(parts) >= 2 {
		return capitalize(parts[0]), capitalize(parts[1])
	}
	return types.NotFound, types.NotFound
}

func headerLines(raw string, n int) []string {
	if raw == "" || n <= 0 {
		return nil
	}
	lines := strings.SplitN(lineBreaks.Replace(raw), "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

// nameWords returns the words of line long enough to be a name part and
// absent from the skip lexicon, in order.
func (e *Extractor) nameWords(line string) []string {
	var words []string
	for _, w := range wordPattern.FindAllString(line, -1) {
		if utf8.RuneCountInString(w) < e.limits.MinNameTokenRunes {
			continue
		}
		if e.lex.IsSkipKeyword(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

// emailNameParts splits the digit-free local part of email on . _ and -.
func (e *Extractor) emailNameParts(email string) []string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return nil
	}
	local = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, local)

	var parts []string
	for _, seg := range strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	}) {
		if utf8.RuneCountInString(seg) >= e.limits.MinEmailSegmentRunes {
			parts = append(parts, seg)
		}
	}
	return parts
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
