// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-extractor/internal/lexicon"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

const sampleResume = `Jean Dupont
Développeur Full-Stack
Tél : 06 12 34 56 78
Email : jean.dupont@gmail.com

Formation
Titulaire d'un BUT Informatique de Gestion.

Expérience
Google, 2020-2022.`

func TestExtract(t *testing.T) {
	got := New(nil).Extract(sampleResume)
	assert.Equal(t, types.CandidateRecord{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "jean.dupont@gmail.com",
		Phone:     "06 12 34 56 78",
		Degree:    "But Informatique Gestion",
	}, got)
}

func TestExtract_SparseHeader(t *testing.T) {
	raw := "Curriculum Vitae\nDéveloppeuse Web\n\nContact : marie.curie@mail.com\nLicence professionnelle"
	got := New(nil).Extract(raw)
	assert.Equal(t, "Marie", got.FirstName)
	assert.Equal(t, "Curie", got.LastName)
	assert.Equal(t, "marie.curie@mail.com", got.Email)
	assert.Equal(t, types.NotFound, got.Phone)
	assert.Equal(t, "Licence Professionnelle", got.Degree)
}

func TestExtract_EmptyInput(t *testing.T) {
	e := New(nil)
	assert.Equal(t, types.EmptyRecord(), e.Extract(""))
	assert.Equal(t, types.EmptyRecord(), e.Extract(" \n\t\n "))
}

func TestExtract_NeverEmpty(t *testing.T) {
	inputs := []string{
		"",
		"@",
		"a@b",
		"+",
		"2020-2022",
		"master",
		"'''",
		"\x00\xff\xfe",
		"Ø Ł ★ ﬁ “”",
		"Jean",
	}
	e := New(nil)
	for _, in := range inputs {
		r := e.Extract(in)
		for _, f := range r.Fields() {
			assert.NotEmpty(t, f[1], "field %s for input %q", f[0], in)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := New(nil)
	want := e.Extract(sampleResume)
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, e.Extract(sampleResume))
	}
}

func TestExtract_Concurrent(t *testing.T) {
	e := New(nil)
	want := e.Extract(sampleResume)

	var wg sync.WaitGroup
	results := make([]types.CandidateRecord, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Extract(sampleResume)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestExtract_CustomLexicon(t *testing.T) {
	lex, err := lexicon.Parse([]byte(`
skip_keywords:
  roles: [chef, cuisinier]
degree_stop_words:
  connectors: [en, de]
known_degrees: [cap, "cap cuisine"]
`))
	require.NoError(t, err)

	got := New(lex).Extract("Chef Cuisinier\nPaul Bocuse\nTitulaire d'un CAP cuisine en restauration")
	assert.Equal(t, "Paul", got.FirstName)
	assert.Equal(t, "Bocuse", got.LastName)
	assert.Equal(t, "Cap Cuisine Restauration", got.Degree)
}
