package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeTXT  = "text/plain"
)

// Thresholds below which extracted text is treated as scanned-like: too
// little text to trust downstream parsing.
const (
	minTrustedLength = 200
	minTrustedLines  = 5
)

var (
	// ErrUnsupportedType is returned for file types outside the accepted set.
	ErrUnsupportedType = errors.New("unsupported file type, upload a PDF, DOC, DOCX or TXT file")
	// ErrEmptyContent is returned when extraction yields no text.
	ErrEmptyContent = errors.New("could not extract text from resume")
)

// Result is the outcome of text extraction.
type Result struct {
	Text string
	// LowConfidence marks text too short or too flat to parse reliably,
	// typically a scanned or image-only document.
	LowConfidence bool
}

// FromUpload extracts plain text from an uploaded resume payload. Dispatch
// uses the declared mime type first and falls back to the file extension.
func FromUpload(ctx context.Context, data []byte, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	mime := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))

	var (
		text string
		err  error
	)
	switch {
	case mime == mimePDF || ext == ".pdf":
		text, err = extractPDF(data)
	case mime == mimeDOCX || ext == ".docx":
		text, err = extractDOCX(data)
	case mime == mimeTXT || ext == ".txt":
		text = string(data)
	case mime == mimeDOC || ext == ".doc" || ext == ".rtf" || ext == ".odt":
		text, err = extractWithDocconv(data, mime, ext)
	default:
		return Result{}, ErrUnsupportedType
	}
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: %w", strings.TrimPrefix(ext, "."), err)
	}

	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return Result{}, ErrEmptyContent
	}

	length := utf8.RuneCountInString(cleaned)
	lineCount := len(splitLines(cleaned))
	return Result{
		Text:          cleaned,
		LowConfidence: length < minTrustedLength || lineCount < minTrustedLines,
	}, nil
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func extractWithDocconv(data []byte, mime string, ext string) (string, error) {
	if mime == "" || mime == "application/octet-stream" {
		mime = docconv.MimeTypeByExtension("file" + ext)
	}
	res, err := docconv.Convert(bytes.NewReader(data), mime, true)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}
