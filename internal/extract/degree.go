// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/cv-extractor/internal/lexicon"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

const (
	// edgePunct may surround a degree phrase in running text, e.g. "(Master,".
	edgePunct = `.,;:!?()[]{}"'`
	// specialtyTrail is stripped from the end of specialty words.
	specialtyTrail = `.,;:!?)]}"'`
)

// Degree returns the first catalogue degree found in normalized text,
// followed by up to Limits.SpecialtyMaxWords words of specialty. At each
// token position the longest matching catalogue entry wins.
func (e *Extractor) Degree(normalized string) string {
	tokens := strings.Fields(normalized)
	for i := range tokens {
		for _, p := range e.degrees {
			if !matchAt(tokens, i, p.Words) {
				continue
			}
			label := e.formatLabel(p.Label)
			rest := tokens[i+len(p.Words):]
			if specialty := e.specialty(rest); len(specialty) > 0 {
				return strings.TrimSpace(label + " " + strings.Join(specialty, " "))
			}
			return label
		}
	}
	return types.NotFound
}

// matchAt reports whether words occur at tokens[i:]. Punctuation is
// ignored only at the outer edges of the phrase.
func matchAt(tokens []string, i int, words []string) bool {
	if i+len(words) > len(tokens) {
		return false
	}
	last := len(words) - 1
	for k, w := range words {
		tok := tokens[i+k]
		if k == 0 {
			tok = strings.TrimLeft(tok, edgePunct)
		}
		if k == last {
			tok = strings.TrimRight(tok, edgePunct)
		}
		if tok != w {
			return false
		}
	}
	return true
}

// formatLabel upper-cases dotted abbreviations and short acronyms and
// title-cases everything else.
func (e *Extractor) formatLabel(label string) string {
	if strings.Contains(label, ".") || utf8.RuneCountInString(label) <= e.limits.AcronymMaxRunes {
		return strings.ToUpper(label)
	}
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// specialty collects the field-of-study words that follow a degree.
func (e *Extractor) specialty(rest []string) []string {
	if len(rest) > e.limits.SpecialtyWindow {
		rest = rest[:e.limits.SpecialtyWindow]
	}
	var words []string
	for _, tok := range rest {
		if len(words) >= e.limits.SpecialtyMaxWords {
			break
		}
		w := specialtyWord(e.lex, tok)
		if w == "" || e.lex.IsDegreeStopWord(w) {
			continue
		}
		words = append(words, capitalize(w))
	}
	return words
}

// specialtyWord strips trailing punctuation and a leading elision whose
// head is a stop word ("l'informatique" becomes "informatique"). It returns
// "" for tokens without letters, purely numeric ones included.
func specialtyWord(lex *lexicon.Registry, tok string) string {
	w := strings.TrimRight(tok, specialtyTrail)
	w = strings.TrimLeft(w, `("[{`)
	if head, tail, ok := strings.Cut(w, "'"); ok && tail != "" && lex.IsDegreeStopWord(head) {
		w = tail
	}
	if strings.IndexFunc(w, unicode.IsLetter) < 0 {
		return ""
	}
	return w
}
