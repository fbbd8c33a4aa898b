// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize produces the canonical lowercase ASCII form of résumé
// text that the email, phone and degree extractors scan.
package normalize

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// symbols expands characters that have no ASCII decomposition. It runs
// before transliteration, which would otherwise drop them.
var symbols = strings.NewReplacer(
	"œ", "oe",
	"æ", "ae",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"€", "euro",
	"£", "livre",
	"‘", "'",
	"’", "'",
	"‚", "'",
	"′", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"«", `"`,
	"»", `"`,
	"–", "-",
	"—", "-",
	"−", "-",
)

// asciiSpace maps every Unicode space to an ASCII space so that words
// separated by e.g. a thin space survive the non-ASCII filter.
func asciiSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

func nonASCII(r rune) bool { return r > unicode.MaxASCII }

// newTransliterator builds the decomposition chain. transform.Chain keeps
// internal state, so each call to Text gets its own.
func newTransliterator() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Map(asciiSpace),
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(nonASCII)),
	)
}

// Text lowercases s, expands symbols, strips diacritics and collapses
// whitespace. Text is idempotent. If transliteration fails, s is returned
// unchanged.
func Text(s string) (out string) {
	if s == "" {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Msg("normalize: falling back to raw text")
			out = s
		}
	}()

	lowered := symbols.Replace(strings.ToLower(s))
	ascii, _, err := transform.String(newTransliterator(), lowered)
	if err != nil {
		log.Debug().Err(err).Msg("normalize: falling back to raw text")
		return s
	}
	return strings.Join(strings.Fields(ascii), " ")
}

