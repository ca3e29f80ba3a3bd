// Package document extracts plain text from uploaded resumes and job postings.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Supported content types.
const (
	TypeText = "text/plain"
	TypePDF  = "application/pdf"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// NoTextMessage is shown when a document held no extractable text.
const NoTextMessage = "Could not extract text from PDF. Please try a different file or check if the PDF contains selectable text."

var (
	// ErrNoText is returned when every extraction strategy produced empty text.
	ErrNoText = errors.New(NoTextMessage)
	// ErrUnsupportedType is returned for documents that are neither text, PDF nor DOCX.
	ErrUnsupportedType = errors.New("unsupported document type")
)

var extensions = map[string]string{
	".txt":  TypeText,
	".text": TypeText,
	".md":   TypeText,
	".pdf":  TypePDF,
	".docx": TypeDOCX,
}

// DetectType picks the content type from the file extension, falling back to content sniffing.
func DetectType(name string, data []byte) string {
	if typ, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return typ
	}

	sniffed := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(sniffed, TypePDF):
		return TypePDF
	case strings.HasPrefix(sniffed, TypeText):
		return TypeText
	case strings.HasPrefix(sniffed, "application/zip"):
		return TypeDOCX
	}
	return sniffed
}

// Extract returns the text of the named document.
func Extract(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch typ := DetectType(name, data); typ {
	case TypeText:
		text, err = extractText(data)
	case TypePDF:
		text, err = extractPDF(data)
	case TypeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// ExtractFile reads path and extracts its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Extract(filepath.Base(path), data)
}

func extractText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedType)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
