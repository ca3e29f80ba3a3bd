package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

type pdfStrategy struct {
	name    string
	extract func(r *pdf.Reader) (string, error)
}

// pdfStrategies are tried in order until one yields text.
var pdfStrategies = []pdfStrategy{
	{name: "pages", extract: pagesPlainText},
	{name: "document", extract: documentPlainText},
	{name: "rows", extract: pageRows},
}

func extractPDF(data []byte) (string, error) {
	reader, err := openPDF(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, err)
	}

	for _, strategy := range pdfStrategies {
		text, err := safely(strategy.extract, reader)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	return "", ErrNoText
}

func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// safely converts panics raised on malformed content streams into errors.
func safely(fn func(r *pdf.Reader) (string, error), r *pdf.Reader) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf: %v", rec)
		}
	}()
	return fn(r)
}

func pagesPlainText(r *pdf.Reader) (string, error) {
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func documentPlainText(r *pdf.Reader) (string, error) {
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func pageRows(r *pdf.Reader) (string, error) {
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, text := range row.Content {
				words = append(words, text.S)
			}
			b.WriteString(strings.Join(words, ""))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
