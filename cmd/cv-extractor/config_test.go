// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix("CV_EXTRACTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := loadConfig(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv-extractor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
extraction:
  header_lines: 8
decoder:
  backend: markitdown
server:
  port: 9000
  shutdown_timeout: 30s
store:
  path: /var/lib/cv-extractor/history.db
`), 0o644))

	t.Setenv("CV_EXTRACTOR_SERVER_PORT", "9100")
	t.Setenv("CV_EXTRACTOR_LOG_FORMAT", "json")

	v := newTestViper(t)
	v.SetConfigFile(path)
	c, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format, "env overrides default")
	assert.Equal(t, 8, c.Extraction.HeaderLines)
	assert.Equal(t, 10, c.Extraction.SpecialtyWindow, "unset keys keep defaults")
	assert.Equal(t, types.DecoderMarkitdown, c.Decoder.Backend)
	assert.Equal(t, 9100, c.Server.Port, "env overrides file")
	assert.Equal(t, 30*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "/var/lib/cv-extractor/history.db", c.Store.Path)
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv-extractor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o644))

	v := newTestViper(t)
	v.SetConfigFile(path)
	_, err := loadConfig(v)
	assert.ErrorContains(t, err, "reading config")
}

func TestLoadLexicon(t *testing.T) {
	lex, err := loadLexicon(types.LexiconConfig{})
	require.NoError(t, err)
	assert.Positive(t, lex.Counts().KnownDegrees)

	_, err = loadLexicon(types.LexiconConfig{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "reading lexicon")
}

func TestWriteOutput(t *testing.T) {
	rec := types.CandidateRecord{FirstName: "Éloïse", LastName: "Martin", Email: "e&m@mail.fr", Phone: types.NotFound, Degree: "Licence"}

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, "json", rec))
	assert.Contains(t, buf.String(), `"email": "e&m@mail.fr"`)
	var back types.CandidateRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, rec, back)

	buf.Reset()
	require.NoError(t, writeOutput(&buf, "yaml", rec))
	assert.Contains(t, buf.String(), "first_name: Éloïse\n")
	assert.Contains(t, buf.String(), "phone: Not found\n")

	assert.ErrorContains(t, writeOutput(&buf, "xml", rec), `unknown output format "xml"`)
}

func TestExtractCommand_Stdin(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetArgs([]string{"extract", "--text", "--log-level", "error"})
	rootCmd.SetIn(strings.NewReader("Marie Curie\nmarie.curie@mail.com\n+33 6 12 34 56 78\nDoctorat en physique"))
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var got types.CandidateRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Marie", got.FirstName)
	assert.Equal(t, "Curie", got.LastName)
	assert.Equal(t, "marie.curie@mail.com", got.Email)
	assert.Equal(t, "+33 6 12 34 56 78", got.Phone)
}
