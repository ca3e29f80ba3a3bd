// Package ats estimates how well a resume's plain text would pass applicant tracking screening.
package ats

import (
	"regexp"
	"strings"
)

const (
	maxScore = 100

	minWords = 200
	maxWords = 1000
)

const (
	IssueTooShort     = "Resume may be too short (< 200 words)"
	IssueTooLong      = "Resume may be too long (> 1000 words)"
	IssueNoEmail      = "Missing email address"
	IssueNoPhone      = "Phone number format may not be ATS-friendly"
	IssueNoSkillsHead = "Missing dedicated skills section"
)

// phonePattern accepts ASCII digits only; parsers read phone numbers in that form.
var phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)

var skillsHeaders = []string{"skills", "technical skills", "expertise", "proficiency"}

var suggestions = []string{
	"Use standard section headers (Experience, Education, Skills)",
	"Include relevant keywords from job descriptions",
	"Save as PDF to preserve formatting",
	"Use a clean, simple layout",
}

// Report is the outcome of scoring a resume.
type Report struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	WordCount   int      `json:"word_count"`
}

type rule struct {
	penalty int
	issue   string
	failed  func(text string, words int) bool
}

// rules are evaluated in order and never short-circuit each other.
var rules = []rule{
	{penalty: 20, issue: IssueTooShort, failed: func(_ string, words int) bool { return words < minWords }},
	{penalty: 10, issue: IssueTooLong, failed: func(_ string, words int) bool { return words > maxWords }},
	{penalty: 15, issue: IssueNoEmail, failed: func(text string, _ int) bool { return !strings.Contains(text, "@") }},
	{penalty: 10, issue: IssueNoPhone, failed: func(text string, _ int) bool { return !phonePattern.MatchString(text) }},
	{penalty: 15, issue: IssueNoSkillsHead, failed: func(text string, _ int) bool { return !hasSkillsSection(text) }},
}

// Score applies the heuristic checks to resumeText.
func Score(resumeText string) Report {
	words := len(strings.Fields(resumeText))

	score := maxScore
	issues := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.failed(resumeText, words) {
			score -= r.penalty
			issues = append(issues, r.issue)
		}
	}

	if score < 0 {
		score = 0
	}

	return Report{
		Score:       score,
		Issues:      issues,
		Suggestions: Suggestions(),
		WordCount:   words,
	}
}

// Suggestions returns the generic improvement tips attached to every report.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

func hasSkillsSection(text string) bool {
	lower := strings.ToLower(text)
	for _, header := range skillsHeaders {
		if strings.Contains(lower, header) {
			return true
		}
	}
	return false
}
