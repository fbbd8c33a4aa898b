// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-extractor/internal/container"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// fakeDecoder returns canned text or an error.
type fakeDecoder struct {
	output string
	err    error
	calls  int
}

func (f *fakeDecoder) Decode(_ context.Context, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestRouter_Decode(t *testing.T) {
	pdfDec := &fakeDecoder{output: "pdf text"}
	docxDec := &fakeDecoder{err: errors.New("corrupt archive")}
	r := NewRouter().Handle(types.MediaPDF, pdfDec).Handle(types.MediaDOCX, docxDec)

	tests := []struct {
		name    string
		doc     types.Document
		want    string
		wantErr error
		errMsg  string
	}{
		{
			name: "explicit media type",
			doc:  types.Document{Filename: "cv.bin", MediaType: types.MediaPDF},
			want: "pdf text",
		},
		{
			name: "media type inferred from filename",
			doc:  types.Document{Filename: "CV.PDF"},
			want: "pdf text",
		},
		{
			name:    "unregistered media type",
			doc:     types.Document{Filename: "cv.txt", MediaType: types.MediaPlain},
			wantErr: ErrUnsupportedMediaType,
		},
		{
			name:    "unknown extension",
			doc:     types.Document{Filename: "cv.odt"},
			wantErr: ErrUnsupportedMediaType,
		},
		{
			name:   "decoder failure is wrapped",
			doc:    types.Document{Filename: "cv.docx"},
			errMsg: "decoding cv.docx: corrupt archive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Decode(context.Background(), tt.doc)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				assert.EqualError(t, err, tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
	assert.Equal(t, 2, pdfDec.calls)
}

func TestRouter_Supports(t *testing.T) {
	r := NewNative()
	assert.True(t, r.Supports(types.MediaPDF))
	assert.True(t, r.Supports(types.MediaDOCX))
	assert.True(t, r.Supports(types.MediaPlain))
	assert.False(t, r.Supports("application/msword"))
}

func TestDecoderFunc(t *testing.T) {
	d := DecoderFunc(func(_ context.Context, data []byte) (string, error) {
		return strings.ToUpper(string(data)), nil
	})
	got, err := d.Decode(context.Background(), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", got)
}

func TestNew(t *testing.T) {
	r, err := New(context.Background(), types.DecoderConfig{Backend: types.DecoderNative})
	require.NoError(t, err)
	assert.True(t, r.Supports(types.MediaDOCX))

	r, err = New(context.Background(), types.DecoderConfig{})
	require.NoError(t, err)
	assert.True(t, r.Supports(types.MediaPDF))

	_, err = New(context.Background(), types.DecoderConfig{Backend: "ocr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown decoder backend "ocr"`)
}

func TestPlainTextDecoder(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"utf8 passthrough", []byte("Jean Dupont\nIngénieur"), "Jean Dupont\nIngénieur"},
		{"byte order mark dropped", []byte("\xef\xbb\xbfJean"), "Jean"},
		{"invalid bytes replaced", []byte("Jean\xffDupont"), "Jean\uFFFDDupont"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlainTextDecoder{}.Decode(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPDFDecoder_Invalid(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not a pdf at all"), []byte("%PDF-1.4\ngarbage")} {
		_, err := PDFDecoder{}.Decode(context.Background(), data)
		assert.Error(t, err)
	}
}

// buildDOCX assembles a minimal Word archive whose body holds paragraphs.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDOCXDecoder(t *testing.T) {
	data := buildDOCX(t, "Jean Dupont", "jean.dupont@gmail.com", "Recherche &amp; Développement")

	got, err := DOCXDecoder{}.Decode(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont\njean.dupont@gmail.com\nRecherche & Développement", got)
}

func TestDOCXDecoder_Invalid(t *testing.T) {
	_, err := DOCXDecoder{}.Decode(context.Background(), []byte("PK not really a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening DOCX")
}

func TestDocumentText(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>Jean</w:t></w:r><w:r><w:tab/><w:t>Dupont</w:t></w:r></w:p>` +
		`<w:p></w:p><w:p><w:r><w:t>Ligne</w:t><w:br/><w:t>suivante</w:t></w:r></w:p></w:body>`
	assert.Equal(t, "Jean\tDupont\nLigne\nsuivante", documentText(xml))
}

// fakeRuntime implements container.Runtime for the markitdown decoder.
type fakeRuntime struct {
	imageErr error
	run      func(spec container.RunSpec) error
	specs    []container.RunSpec
}

func (f *fakeRuntime) Name() string                             { return "docker" }
func (f *fakeRuntime) Available(context.Context) bool            { return true }
func (f *fakeRuntime) ImageExists(context.Context, string) error { return f.imageErr }

func (f *fakeRuntime) Run(_ context.Context, spec container.RunSpec) error {
	f.specs = append(f.specs, spec)
	return f.run(spec)
}

func TestMarkitdownDecoder(t *testing.T) {
	rt := &fakeRuntime{run: func(spec container.RunSpec) error {
		data, _ := io.ReadAll(spec.Stdin)
		_, _ = io.WriteString(spec.Stdout, "# "+string(data))
		return nil
	}}

	r, err := NewMarkitdown(context.Background(), rt)
	require.NoError(t, err)

	got, err := r.Decode(context.Background(), types.Document{Filename: "cv.docx", Data: []byte("Jean Dupont")})
	require.NoError(t, err)
	assert.Equal(t, "# Jean Dupont", got)
	require.Len(t, rt.specs, 1)
	assert.Equal(t, imageMarkitdown, rt.specs[0].Image)
	assert.Equal(t, []string{"-x", "docx"}, rt.specs[0].Args)

	got, err = r.Decode(context.Background(), types.Document{Filename: "notes.txt", Data: []byte("plain")})
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
	assert.Len(t, rt.specs, 1, "plain text never reaches the container")
}

func TestMarkitdownDecoder_Failures(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		_, err := NewMarkitdownDecoder(context.Background(), &fakeRuntime{imageErr: errors.New("no such image")}, "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "markitdown image not available in docker")
	})

	t.Run("container error carries stderr", func(t *testing.T) {
		rt := &fakeRuntime{run: func(spec container.RunSpec) error {
			_, _ = io.WriteString(spec.Stderr, "UnsupportedFormatException\n")
			return errors.New("exit status 1")
		}}
		d, err := NewMarkitdownDecoder(context.Background(), rt, "pdf")
		require.NoError(t, err)
		_, err = d.Decode(context.Background(), []byte("%PDF"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UnsupportedFormatException")
	})

	t.Run("empty output", func(t *testing.T) {
		rt := &fakeRuntime{run: func(container.RunSpec) error { return nil }}
		d, err := NewMarkitdownDecoder(context.Background(), rt, "pdf")
		require.NoError(t, err)
		_, err = d.Decode(context.Background(), []byte("%PDF"))
		assert.EqualError(t, err, "markitdown produced empty output")
	})
}
