package skills

import "strings"

// Extractor finds vocabulary labels in text.
type Extractor struct {
	labels []string
	lower  []string
}

// NewExtractor returns an extractor over the given vocabulary, or over Vocabulary when none is given.
func NewExtractor(vocabulary ...string) *Extractor {
	if len(vocabulary) == 0 {
		vocabulary = Vocabulary
	}

	e := &Extractor{
		labels: make([]string, 0, len(vocabulary)),
		lower:  make([]string, 0, len(vocabulary)),
	}
	for _, label := range vocabulary {
		if strings.TrimSpace(label) == "" {
			continue
		}
		e.labels = append(e.labels, label)
		e.lower = append(e.lower, strings.ToLower(label))
	}

	return e
}

// Extract returns every label that occurs in text as a case-insensitive substring.
// Labels are tested independently, so "Java" and "JavaScript" both match "JavaScript".
func (e *Extractor) Extract(text string) Set {
	if text == "" {
		return Set{}
	}

	haystack := strings.ToLower(text)
	found := make([]string, 0)
	for i, needle := range e.lower {
		if strings.Contains(haystack, needle) {
			found = append(found, e.labels[i])
		}
	}

	return NewSet(found...)
}

var defaultExtractor = NewExtractor()

// Extract runs the default vocabulary extractor.
func Extract(text string) Set {
	return defaultExtractor.Extract(text)
}
