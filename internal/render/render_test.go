package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-assistant/internal/advisor"
	"github.com/spigell/career-assistant/internal/ats"
	"github.com/spigell/career-assistant/internal/compat"
	"github.com/spigell/career-assistant/internal/fallback"
	"github.com/spigell/career-assistant/internal/market"
	"github.com/spigell/career-assistant/internal/skills"
)

func sampleMatch() *advisor.JobMatch {
	return &advisor.JobMatch{
		ResumeSkills: skills.NewSet("Python", "SQL"),
		JobSkills:    skills.NewSet("Python", "SQL", "Docker"),
		Compatibility: &compat.Report{
			Score:          66.7,
			MatchedSkills:  skills.NewSet("Python", "SQL"),
			MissingSkills:  skills.NewSet("Docker"),
			TotalRequired:  3,
			Market:         fallback.Degrade(market.Fallback(), "market data provider is not configured"),
			JobTitle:       "data scientist",
			Recommendation: "Good match! Consider developing: Docker to strengthen your profile.",
		},
		Analysis: fallback.Live("Focus on containers."),
	}
}

func TestTextMatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, true).Match(sampleMatch()))

	out := buf.String()
	assert.Contains(t, out, "Compatibility: 66.7/100 for Data Scientist")
	assert.Contains(t, out, "Missing: Docker")
	assert.Contains(t, out, "(fallback data: market data provider is not configured)")
	assert.Contains(t, out, "Total jobs: Data not available")
	assert.Contains(t, out, "Salary range: $50,000 - $120,000 (estimated)")
	assert.Contains(t, out, "Focus on containers.")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextResume(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	res := &advisor.ResumeAnalysis{
		ATS:      ats.Score("short text"),
		Skills:   skills.NewSet(),
		Analysis: fallback.Degrade(advisor.UnavailableAnalysis, "ai model not available"),
	}
	require.NoError(t, NewText(&buf, true).Resume(res))

	out := buf.String()
	assert.Contains(t, out, "ATS score: 40/100")
	assert.Contains(t, out, "• Missing email address")
	assert.Contains(t, out, "No known skills found")
	assert.Contains(t, out, "(fallback data: ai model not available)")
}

func TestTextLiveMarket(t *testing.T) {
	t.Parallel()

	match := sampleMatch()
	match.Compatibility.Market = fallback.Live(market.Snapshot{
		TotalJobs:     120,
		AverageSalary: 135000,
		TopCompanies:  []string{"Acme"},
		SampleJobs:    []market.Listing{{Title: "Go Developer", Company: "Acme", Location: "Remote", Salary: "Not specified"}},
	})

	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, true).Match(match))

	out := buf.String()
	assert.Contains(t, out, "Total jobs: 120")
	assert.Contains(t, out, "Average salary: $135,000")
	assert.Contains(t, out, "• Go Developer at Acme (Remote), Not specified")
}

func TestScoreColors(t *testing.T) {
	t.Parallel()

	text := NewText(&bytes.Buffer{}, false)
	text.good.EnableColor()
	text.fair.EnableColor()
	text.poor.EnableColor()

	assert.Equal(t, text.good.Sprint("80/100"), text.Score(80))
	assert.Equal(t, text.fair.Sprint("60/100"), text.Score(60))
	assert.Equal(t, text.poor.Sprint("59.9/100"), text.Score(59.9))
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := New(FormatJSON, &buf, false)
	require.NoError(t, err)
	require.NoError(t, r.Match(sampleMatch()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	compatibility := decoded["compatibility"].(map[string]any)
	assert.Equal(t, 66.7, compatibility["score"])
	assert.Equal(t, []any{"Docker"}, compatibility["missing_skills"])
	assert.Equal(t, true, compatibility["market_data"].(map[string]any)["degraded"])
}

func TestNewUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New("yaml", &bytes.Buffer{}, true)
	assert.Error(t, err)
}
