package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-assistant/internal/company"
	"github.com/spigell/career-assistant/internal/compat"
	"github.com/spigell/career-assistant/internal/market"
)

const resume = `Jane Doe jane@example.com 555-123-4567
Skills: Python, Docker, SQL, Leadership`

type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	systems []string
	prompts []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systems = append(s.systems, system)
	s.prompts = append(s.prompts, message)
	return s.reply, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

func (s *stubGenerator) prompt(t *testing.T, marker string) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prompts {
		if strings.Contains(p, marker) {
			return p
		}
	}
	t.Fatalf("no prompt containing %q", marker)
	return ""
}

func newAssistant(gen *stubGenerator) *Assistant {
	deps := Deps{Logger: zap.NewNop()}
	if gen != nil {
		deps.Generator = gen
	}
	return New(deps, Config{})
}

func TestAnalyzeResume(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "```markdown\n## Report\n<p>Great <b>resume</b></p>\n```"}
	res, err := newAssistant(gen).AnalyzeResume(context.Background(), resume)
	require.NoError(t, err)

	assert.Equal(t, 80, res.ATS.Score)
	assert.Equal(t, []string{"Python", "SQL", "Docker", "Leadership"}, res.Skills.Labels())
	assert.False(t, res.Analysis.Degraded)
	assert.Equal(t, "## Report\n\nGreat **resume**", res.Analysis.Data)

	prompt := gen.prompt(t, "Analyze this resume")
	assert.Contains(t, prompt, "ATS Score: 80/100")
	assert.Contains(t, prompt, "Issues Found: Resume may be too short (< 200 words)")
	assert.Contains(t, prompt, "Extracted Skills: Python, SQL, Docker, Leadership")
	assert.NotContains(t, prompt, "{{")
	assert.Contains(t, gen.systems[0], "career advisor")
}

func TestAnalyzeResumeEmpty(t *testing.T) {
	t.Parallel()

	_, err := newAssistant(nil).AnalyzeResume(context.Background(), "  \n ")
	assert.ErrorIs(t, err, ErrEmptyResume)
}

func TestGeneratorMissingDegrades(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	a := New(Deps{Logger: zap.New(core)}, Config{})

	res, err := a.AnalyzeResume(context.Background(), resume)
	require.NoError(t, err)

	assert.True(t, res.Analysis.Degraded)
	assert.Equal(t, ErrGeneratorUnavailable.Error(), res.Analysis.Reason)
	assert.Equal(t, UnavailableAnalysis, res.Analysis.Data)
	// Deterministic parts are unaffected.
	assert.Equal(t, 80, res.ATS.Score)
	assert.Equal(t, 1, logs.FilterMessage("generator is not configured").Len())
}

func TestGeneratorFailureDegrades(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	a := New(Deps{Generator: gen, Logger: zap.New(core)}, Config{})

	res, err := a.MatchJobs(context.Background(), resume, "Data Scientist: Python, Pandas, SQL")
	require.NoError(t, err)

	assert.True(t, res.Analysis.Degraded)
	assert.Equal(t, "quota exceeded", res.Analysis.Reason)
	require.NotNil(t, res.Compatibility)
	assert.Equal(t, 66.7, res.Score())

	entries := logs.FilterMessage("content generation failed, returning local results only").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "quota exceeded", entries[0].ContextMap()["reason"])
}

func TestMatchJobsWithoutDescription(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "advice"}
	res, err := newAssistant(gen).MatchJobs(context.Background(), resume, "")
	require.NoError(t, err)

	assert.Nil(t, res.Compatibility)
	assert.Zero(t, res.Score())
	assert.Equal(t, 0, res.JobSkills.Len())

	prompt := gen.prompt(t, "job matching analysis")
	assert.Contains(t, prompt, "Job Requirements: General market analysis")
	assert.Contains(t, prompt, "Compatibility Score: 0/100")
	assert.NotContains(t, prompt, "Job Description:")
}

func TestMatchJobsPromptIncludesMarket(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "advice"}
	res, err := newAssistant(gen).MatchJobs(context.Background(), resume, "Software Engineer with Python and Kubernetes")
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.Score())
	assert.True(t, res.Compatibility.Market.Degraded)

	prompt := gen.prompt(t, "job matching analysis")
	assert.Contains(t, prompt, "Inferred Job Title: software engineer")
	assert.Contains(t, prompt, "Market Data (estimated): demand High demand expected")
	assert.Contains(t, prompt, "Job Description: Software Engineer with Python and Kubernetes...")
}

func TestResearchCompany(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "briefing"}
	res, err := newAssistant(gen).ResearchCompany(context.Background(), " Acme ", "")
	require.NoError(t, err)

	assert.Equal(t, "Acme", res.Profile.Name)
	assert.True(t, res.Profile.News.Degraded)
	assert.Equal(t, "briefing", res.Analysis.Data)

	prompt := gen.prompt(t, "COMPANY: Acme")
	assert.Contains(t, prompt, "• Acme announces new product launch: Company expands market presence")
	assert.Contains(t, prompt, "Recent Analysis for Acme:")
	assert.NotContains(t, prompt, "CANDIDATE PROFILE")

	_, err = newAssistant(gen).ResearchCompany(context.Background(), " ", resume)
	assert.ErrorIs(t, err, ErrEmptyCompany)
}

func TestPrepareInterview(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "guide"}
	res, err := newAssistant(gen).PrepareInterview(context.Background(), "Senior Data Scientist", "Acme", resume)
	require.NoError(t, err)

	assert.Equal(t, "Explain the bias-variance tradeoff in machine learning", res.Questions.Technical[0])

	prompt := gen.prompt(t, "Interview Preparation Guide")
	assert.Contains(t, prompt, "COMPANY: Acme")
	assert.Contains(t, prompt, "CANDIDATE PROFILE: Jane Doe")

	_, err = newAssistant(gen).PrepareInterview(context.Background(), "", "", resume)
	assert.ErrorIs(t, err, ErrNothingToPrepare)
}

func TestComprehensiveRunsApplicableStages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		req        Request
		components int
		enabled    map[string]bool
	}{
		{
			name:       "resume only",
			req:        Request{Resume: resume},
			components: 2,
			enabled:    map[string]bool{"resume_analysis": true, "job_matching": false, "company_research": false, "interview_prep": false},
		},
		{
			name:       "resume and job",
			req:        Request{Resume: resume, JobDescription: "Python developer"},
			components: 4,
			enabled:    map[string]bool{"resume_analysis": true, "job_matching": true, "company_research": false, "interview_prep": true},
		},
		{
			name:       "everything",
			req:        Request{Resume: resume, JobDescription: "Python developer", CompanyName: "Acme"},
			components: 5,
			enabled:    map[string]bool{"resume_analysis": true, "job_matching": true, "company_research": true, "interview_prep": true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen := &stubGenerator{reply: "text"}
			out, err := newAssistant(gen).Comprehensive(context.Background(), tc.req)
			require.NoError(t, err)

			assert.Equal(t, tc.components, out.TotalComponents())
			require.Len(t, out.Stages, 4)
			for _, status := range out.Stages {
				assert.Equal(t, tc.enabled[status.Name], status.Enabled, status.Name)
			}
			assert.False(t, out.Summary.Degraded)
			assert.Contains(t, gen.prompt(t, "career strategy summary"), "ATS Score: 80/100")
		})
	}
}

func TestComprehensiveEmptyResume(t *testing.T) {
	t.Parallel()

	_, err := newAssistant(nil).Comprehensive(context.Background(), Request{JobDescription: "Go"})
	assert.ErrorIs(t, err, ErrEmptyResume)
}

func TestRunStagesHonorsDisabledStage(t *testing.T) {
	t.Parallel()

	stages := DefaultStages()
	DisableByName(stages, "company_research", "skipped by user")

	out, err := newAssistant(nil).RunStages(context.Background(), Request{Resume: resume, CompanyName: "Acme"}, stages)
	require.NoError(t, err)

	assert.Nil(t, out.Company)
	assert.NotNil(t, out.Interview)
	assert.Equal(t, "skipped by user", out.Stages[2].Reason)
	assert.True(t, out.Stages[0].Degraded)
	assert.True(t, out.Summary.Degraded)
}

func TestAssistantUsesInjectedCollaborators(t *testing.T) {
	t.Parallel()

	engine := compat.NewEngine(stubMarket{}, compat.Config{}, nil)
	researcher := company.NewResearcher(nil)
	a := New(Deps{Engine: engine, Researcher: researcher}, Config{MaxLogLength: 10})

	res, err := a.MatchJobs(context.Background(), resume, "Python")
	require.NoError(t, err)
	assert.False(t, res.Compatibility.Market.Degraded)
	assert.Equal(t, 3, res.Compatibility.Market.Data.TotalJobs)
}

type stubMarket struct{}

func (stubMarket) LookupJobs(context.Context, string, string) (*market.Snapshot, error) {
	return &market.Snapshot{TotalJobs: 3}, nil
}

func TestBuildPromptSinglePass(t *testing.T) {
	t.Parallel()

	prompt := buildPrompt(promptCompany, "COMPANY", "{{NEWS}}", "NEWS", "news")
	assert.Contains(t, prompt, "COMPANY: {{NEWS}}")
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"plain":                      "plain",
		"```\ntext\n```":             "text",
		"```markdown\n# Title\n```": "# Title",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripFences(in))
	}
}
