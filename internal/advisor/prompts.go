package advisor

import (
	"embed"
	"strings"
)

//go:embed prompts/*.md
var promptFS embed.FS

const (
	promptSystem    = "system"
	promptResume    = "resume"
	promptMatch     = "match"
	promptCompany   = "company"
	promptInterview = "interview"
	promptSummary   = "summary"
)

// Excerpt sizes of user-provided text placed into prompts.
const (
	resumeExcerpt         = 2000
	matchResumeExcerpt    = 1500
	jobExcerpt            = 1000
	candidateExcerpt      = 1000
	noneFound             = "None"
	generalMarketAnalysis = "General market analysis"
)

// buildPrompt fills the {{PLACEHOLDER}} markers of the named template.
// Substitution is a single pass, so user text containing markers is left alone.
func buildPrompt(name string, pairs ...string) string {
	raw, err := promptFS.ReadFile("prompts/" + name + ".md")
	if err != nil {
		return ""
	}

	args := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		args = append(args, "{{"+pairs[i]+"}}", pairs[i+1])
	}

	return strings.TrimSpace(strings.NewReplacer(args...).Replace(string(raw)))
}

func systemPrompt() string {
	return buildPrompt(promptSystem)
}
