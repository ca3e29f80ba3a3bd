package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Empty(t *testing.T) {
	got := Extract("")
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Labels())
}

func TestExtract_CanonicalCasing(t *testing.T) {
	got := Extract("worked with PYTHON, docker and kubernetes every day")
	assert.Equal(t, []string{"Python", "Docker", "Kubernetes"}, got.Labels())
}

func TestExtract_OverlappingLabels(t *testing.T) {
	got := Extract("Frontend in JavaScript")

	assert.True(t, got.Contains("Java"), "Java is a substring of JavaScript")
	assert.True(t, got.Contains("JavaScript"))
}

func TestExtract_SubsetOfVocabulary(t *testing.T) {
	texts := []string{
		"Senior engineer: Go, Rust, Python, SQL, AWS, leadership and communication",
		"Data scientist with Pandas, NumPy, PyTorch and Spark",
		"nothing relevant here",
		"AI AI AI",
	}

	for _, text := range texts {
		for _, label := range Extract(text).Labels() {
			assert.True(t, Known(label), "label %q must come from the vocabulary", label)
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "React, Node.js and PostgreSQL on Linux with CI/CD via Jenkins"

	once := Extract(text)
	twice := Extract(text + text)

	assert.True(t, once.Equal(twice))
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Agile Scrum team using Django, Flask and FastAPI behind a REST API"
	first := Extract(text)
	for i := 0; i < 10; i++ {
		require.Equal(t, first.Labels(), Extract(text).Labels())
	}
}

func TestNewExtractor_CustomVocabulary(t *testing.T) {
	e := NewExtractor("Go", "Terraform", "  ")

	got := e.Extract("terraform modules in go")
	assert.Equal(t, []string{"Go", "Terraform"}, got.Labels())
}
