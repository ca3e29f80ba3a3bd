// Package render prints advisor results for the terminal or as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spigell/career-assistant/internal/advisor"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer writes advisor results.
type Renderer interface {
	Resume(res *advisor.ResumeAnalysis) error
	Match(res *advisor.JobMatch) error
	Company(res *advisor.CompanyResearch) error
	Interview(res *advisor.InterviewPrep) error
	Comprehensive(res *advisor.Comprehensive) error
}

// New returns the renderer for format.
func New(format string, w io.Writer, noColor bool) (Renderer, error) {
	switch format {
	case "", FormatText:
		return NewText(w, noColor), nil
	case FormatJSON:
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// JSON writes results as indented JSON documents.
type JSON struct {
	w io.Writer
}

// NewJSON creates a JSON renderer.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (j *JSON) encode(v any) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (j *JSON) Resume(res *advisor.ResumeAnalysis) error { return j.encode(res) }
func (j *JSON) Match(res *advisor.JobMatch) error { return j.encode(res) }
func (j *JSON) Company(res *advisor.CompanyResearch) error { return j.encode(res) }
func (j *JSON) Interview(res *advisor.InterviewPrep) error { return j.encode(res) }
func (j *JSON) Comprehensive(res *advisor.Comprehensive) error { return j.encode(res) }
