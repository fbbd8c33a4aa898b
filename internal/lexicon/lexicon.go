// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon loads the exclusion and inclusion word lists used by the
// field heuristics. A Registry is immutable once built and may be shared by
// any number of goroutines without locking.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cv-extractor/internal/normalize"
)

//go:embed lexicon.yaml
var embedded []byte

// defaultRegistry is built from the embedded asset during package
// initialization. A malformed asset is a build defect, so it panics.
var defaultRegistry = mustParse(embedded)

// Phrase is one catalogue entry split into normalized words.
type Phrase struct {
	// Label is the normalized entry, words joined by single spaces.
	Label string
	// Words are the whitespace-separated parts of Label.
	Words []string
}

// Counts reports the size of each list after deduplication.
type Counts struct {
	SkipKeywords    int `json:"skip_keywords" yaml:"skip_keywords"`
	DegreeStopWords int `json:"degree_stop_words" yaml:"degree_stop_words"`
	KnownDegrees    int `json:"known_degrees" yaml:"known_degrees"`
}

// Registry holds the three lexicons.
type Registry struct {
	skip    map[string]struct{}
	stop    map[string]struct{}
	degrees []Phrase
}

// file mirrors the YAML layout of a lexicon asset.
type file struct {
	SkipKeywords    map[string][]string `yaml:"skip_keywords"`
	DegreeStopWords map[string][]string `yaml:"degree_stop_words"`
	KnownDegrees    []string            `yaml:"known_degrees"`
}

// Default returns the registry built from the embedded lexicon.
func Default() *Registry {
	return defaultRegistry
}

// Embedded returns a copy of the embedded lexicon asset.
func Embedded() []byte {
	out := make([]byte, len(embedded))
	copy(out, embedded)
	return out
}

// LoadFile parses the lexicon YAML file at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return r, nil
}

// Parse builds a Registry from lexicon YAML. Skip keywords are lowercased;
// degree stop words and catalogue entries are fully normalized. The
// catalogue is deduplicated and ordered by descending length so that a
// phrase is always tried before any shorter entry it contains.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lexicon YAML: %w", err)
	}

	skip, err := buildSet("skip_keywords", f.SkipKeywords, strings.ToLower)
	if err != nil {
		return nil, err
	}
	stop, err := buildSet("degree_stop_words", f.DegreeStopWords, normalize.Text)
	if err != nil {
		return nil, err
	}
	degrees, err := buildCatalogue(f.KnownDegrees)
	if err != nil {
		return nil, err
	}

	return &Registry{skip: skip, stop: stop, degrees: degrees}, nil
}

func mustParse(data []byte) *Registry {
	r, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return r
}

func buildSet(name string, groups map[string][]string, fold func(string) string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for group, words := range groups {
		for i, w := range words {
			key := strings.TrimSpace(fold(w))
			if key == "" {
				return nil, fmt.Errorf("%s.%s[%d]: blank entry", name, group, i)
			}
			set[key] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%s: no entries", name)
	}
	return set, nil
}

func buildCatalogue(entries []string) ([]Phrase, error) {
	seen := make(map[string]bool, len(entries))
	phrases := make([]Phrase, 0, len(entries))
	for i, e := range entries {
		label := normalize.Text(e)
		if label == "" {
			return nil, fmt.Errorf("known_degrees[%d]: blank entry", i)
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		phrases = append(phrases, Phrase{Label: label, Words: strings.Fields(label)})
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("known_degrees: no entries")
	}

	sort.SliceStable(phrases, func(i, j int) bool {
		return utf8.RuneCountInString(phrases[i].Label) > utf8.RuneCountInString(phrases[j].Label)
	})
	return phrases, nil
}

// IsSkipKeyword reports whether the lowercased token is excluded from name
// detection.
func (r *Registry) IsSkipKeyword(token string) bool {
	_, ok := r.skip[strings.ToLower(token)]
	return ok
}

// IsDegreeStopWord reports whether a normalized token is excluded from
// specialty detection.
func (r *Registry) IsDegreeStopWord(token string) bool {
	_, ok := r.stop[token]
	return ok
}

// Degrees returns the catalogue, longest entry first. The returned slice is
// a copy; the Words slices are shared and must not be modified.
func (r *Registry) Degrees() []Phrase {
	out := make([]Phrase, len(r.degrees))
	copy(out, r.degrees)
	return out
}

// Counts returns the number of distinct entries in each lexicon.
func (r *Registry) Counts() Counts {
	return Counts{
		SkipKeywords:    len(r.skip),
		DegreeStopWords: len(r.stop),
		KnownDegrees:    len(r.degrees),
	}
}
