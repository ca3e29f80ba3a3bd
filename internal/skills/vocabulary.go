// Package skills recognizes skill labels in free text and scores one skill set against another.
package skills

// Vocabulary is the closed list of labels the extractor recognizes, in canonical casing.
// Its order defines the iteration order of every Set.
var Vocabulary = []string{
	"Python", "Java", "JavaScript", "React", "Node.js", "SQL", "MongoDB",
	"AWS", "Azure", "Docker", "Kubernetes", "Git", "Machine Learning",
	"AI", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy",
	"Streamlit", "Flask", "Django", "FastAPI", "REST API", "GraphQL",
	"HTML", "CSS", "Bootstrap", "Tailwind", "Vue.js", "Angular",
	"PostgreSQL", "MySQL", "Redis", "Elasticsearch", "Spark",
	"Linux", "Unix", "Bash", "PowerShell", "CI/CD", "Jenkins",
	"Agile", "Scrum", "Project Management", "Leadership", "Communication",
}

var vocabularyIndex = func() map[string]int {
	idx := make(map[string]int, len(Vocabulary))
	for i, label := range Vocabulary {
		idx[label] = i
	}
	return idx
}()

// Known reports whether label is a canonical vocabulary label.
func Known(label string) bool {
	_, ok := vocabularyIndex[label]
	return ok
}
