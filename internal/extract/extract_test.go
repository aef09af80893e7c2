package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromUploadTxt(t *testing.T) {
	line := strings.Repeat("x", 50)
	text := strings.Join([]string{line, line, line, line, line}, "\n")

	res, err := FromUpload(context.Background(), []byte(text), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("FromUpload: %v", err)
	}
	if res.Text != text {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if res.LowConfidence {
		t.Fatalf("expected confident extraction for long multi-line text")
	}
}

func TestFromUploadTrimsText(t *testing.T) {
	res, err := FromUpload(context.Background(), []byte("\n\n  Jane Doe  \n\n"), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("FromUpload: %v", err)
	}
	if res.Text != "Jane Doe" {
		t.Fatalf("expected trimmed text, got %q", res.Text)
	}
}

func TestFromUploadLowConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "short text",
			text: "Jane Doe\nGo\nSQL\nDocker\nKubernetes",
			want: true,
		},
		{
			name: "few lines",
			text: strings.Repeat("a", 300),
			want: true,
		},
		{
			// 150 runes over 5 lines is 450 bytes; the gate counts runes.
			name: "multi-byte text below threshold",
			text: strings.Join([]string{
				strings.Repeat("日", 30),
				strings.Repeat("本", 30),
				strings.Repeat("語", 30),
				strings.Repeat("履", 30),
				strings.Repeat("歴", 30),
			}, "\n"),
			want: true,
		},
		{
			name: "exactly at thresholds",
			text: strings.Join([]string{
				strings.Repeat("a", 48),
				strings.Repeat("b", 48),
				strings.Repeat("c", 48),
				strings.Repeat("d", 48),
				strings.Repeat("e", 4),
			}, "\n"),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, err := FromUpload(context.Background(), []byte(tt.text), "text/plain", "resume.txt")
			if err != nil {
				t.Fatalf("FromUpload: %v", err)
			}
			if res.LowConfidence != tt.want {
				t.Fatalf("LowConfidence = %v, want %v (len=%d)", res.LowConfidence, tt.want, len(res.Text))
			}
		})
	}
}

func TestFromUploadDocx(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Senior Go Engineer</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDocx(t, doc)

	res, err := FromUpload(context.Background(), data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if err != nil {
		t.Fatalf("FromUpload: %v", err)
	}
	if !strings.Contains(res.Text, "Jane Doe") || !strings.Contains(res.Text, "Senior Go Engineer") {
		t.Fatalf("unexpected docx text: %q", res.Text)
	}
	if !strings.Contains(res.Text, "\n") {
		t.Fatalf("expected paragraph break in docx text: %q", res.Text)
	}
}

func TestFromUploadDocxByExtension(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>Jane</w:t></w:r></w:p></w:body></w:document>`)

	// Browsers sometimes send docx as a generic zip.
	if _, err := FromUpload(context.Background(), data, "application/zip", "resume.docx"); err != nil {
		t.Fatalf("expected extension fallback for docx, got %v", err)
	}
}

func TestFromUploadUnsupportedType(t *testing.T) {
	_, err := FromUpload(context.Background(), []byte("binary"), "image/png", "scan.png")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestFromUploadEmptyContent(t *testing.T) {
	_, err := FromUpload(context.Background(), []byte("   \n\t\n  "), "text/plain", "resume.txt")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}
