package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data []byte
		want string
	}{
		{name: "resume.PDF", want: TypePDF},
		{name: "resume.docx", want: TypeDOCX},
		{name: "notes.md", want: TypeText},
		{name: "upload", data: []byte("%PDF-1.4\n"), want: TypePDF},
		{name: "upload", data: []byte("plain words"), want: TypeText},
		{name: "upload", data: []byte("PK\x03\x04rest"), want: TypeDOCX},
		{name: "upload", data: []byte("\x89PNG\r\n\x1a\n"), want: "image/png"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectType(tc.name, tc.data), tc.name)
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	text, err := Extract("resume.txt", []byte("\xef\xbb\xbfJane Doe\r\nPython\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPython", text)
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	_, err := Extract("resume.txt", []byte("   \n"))
	assert.ErrorIs(t, err, ErrNoText)

	_, err = Extract("photo.png", []byte("\x89PNG\r\n\x1a\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Extract("broken.pdf", []byte("%PDF-1.4 garbage"))
	assert.ErrorIs(t, err, ErrNoText)
	assert.Contains(t, err.Error(), "Could not extract text from PDF")
}

func TestExtractPDF(t *testing.T) {
	t.Parallel()

	text, err := Extract("resume.pdf", minimalPDF("Hello Resume"))
	require.NoError(t, err)
	assert.Contains(t, text, "Hello Resume")
}

func TestExtractDOCX(t *testing.T) {
	t.Parallel()

	data := minimalDOCX(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t>Python &amp; SQL</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := Extract("resume.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills:\tPython & SQL", text)
}

func TestExtractFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go developer"), 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", text)

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// minimalPDF builds a single-page PDF that shows text in Helvetica.
func minimalPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func minimalDOCX(t *testing.T, document string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":            document,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
