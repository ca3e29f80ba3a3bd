package skills

import (
	"encoding/json"
	"sort"
)

// Set is an immutable set of skill labels. Labels iterate in vocabulary order;
// labels outside the vocabulary sort after it, alphabetically.
type Set struct {
	labels []string
}

// NewSet builds a set from labels, dropping duplicates and empty strings.
func NewSet(labels ...string) Set {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return Set{labels: out}
}

func less(a, b string) bool {
	ia, okA := vocabularyIndex[a]
	ib, okB := vocabularyIndex[b]
	switch {
	case okA && okB:
		return ia < ib
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

// Len returns the number of labels in the set.
func (s Set) Len() int { return len(s.labels) }

// Labels returns a copy of the labels in iteration order.
func (s Set) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Contains reports whether label is a member of the set.
func (s Set) Contains(label string) bool {
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}

// Intersect returns the labels present in both s and other.
func (s Set) Intersect(other Set) Set {
	out := make([]string, 0, len(s.labels))
	for _, l := range s.labels {
		if other.Contains(l) {
			out = append(out, l)
		}
	}
	return Set{labels: out}
}

// Difference returns the labels of s that are absent from other.
func (s Set) Difference(other Set) Set {
	out := make([]string, 0, len(s.labels))
	for _, l := range s.labels {
		if !other.Contains(l) {
			out = append(out, l)
		}
	}
	return Set{labels: out}
}

// Equal reports whether both sets hold the same labels.
func (s Set) Equal(other Set) bool {
	if len(s.labels) != len(other.labels) {
		return false
	}
	for i := range s.labels {
		if s.labels[i] != other.labels[i] {
			return false
		}
	}
	return true
}

// First returns up to n labels in iteration order.
func (s Set) First(n int) []string {
	if n > len(s.labels) {
		n = len(s.labels)
	}
	if n < 0 {
		n = 0
	}
	return s.Labels()[:n]
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewSet(labels...)
	return nil
}
