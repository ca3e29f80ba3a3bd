// Package advisor runs the career analyses: it combines the deterministic scorers
// with generated advice and degrades to the deterministic parts when the generator fails.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/ai"
	"github.com/spigell/career-assistant/internal/ats"
	"github.com/spigell/career-assistant/internal/company"
	"github.com/spigell/career-assistant/internal/compat"
	"github.com/spigell/career-assistant/internal/fallback"
	"github.com/spigell/career-assistant/internal/interview"
	"github.com/spigell/career-assistant/internal/logger"
	"github.com/spigell/career-assistant/internal/skills"
	"github.com/spigell/career-assistant/internal/textclean"
	"github.com/spigell/career-assistant/internal/utils"
)

const defaultMaxLogLength = 200

// UnavailableAnalysis replaces generated text when no generator answered.
const UnavailableAnalysis = "AI analysis is not available. The scores above are computed locally; configure a Gemini API key for a written report."

var (
	// ErrEmptyResume is returned when an analysis needs resume text and none was given.
	ErrEmptyResume = errors.New("no resume text provided")
	// ErrEmptyCompany is returned by ResearchCompany for a blank company name.
	ErrEmptyCompany = errors.New("no company name provided")
	// ErrNothingToPrepare is returned by PrepareInterview when neither job nor company is given.
	ErrNothingToPrepare = errors.New("job description or company name is required")
	// ErrGeneratorUnavailable is the degradation reason used when no generator is configured.
	ErrGeneratorUnavailable = errors.New("ai model not available")
)

// Deps are the collaborators of an Assistant. Nil members degrade gracefully.
type Deps struct {
	Generator  ai.Generator
	Engine     *compat.Engine
	Researcher *company.Researcher
	Logger     *zap.Logger
}

// Config tunes an Assistant.
type Config struct {
	MaxLogLength int
}

// Assistant answers the career questions of a single user.
type Assistant struct {
	generator  ai.Generator
	engine     *compat.Engine
	researcher *company.Researcher
	extractor  *skills.Extractor
	logger     *zap.Logger
	maxLogLen  int
}

// ResumeAnalysis is the result of AnalyzeResume.
type ResumeAnalysis struct {
	ATS      ats.Report              `json:"ats"`
	Skills   skills.Set              `json:"extracted_skills"`
	Analysis fallback.Result[string] `json:"analysis"`
}

// JobMatch is the result of MatchJobs. Compatibility is nil when no job description was given.
type JobMatch struct {
	ResumeSkills  skills.Set              `json:"resume_skills"`
	JobSkills     skills.Set              `json:"job_skills"`
	Compatibility *compat.Report          `json:"compatibility,omitempty"`
	Analysis      fallback.Result[string] `json:"analysis"`
}

// Score is the compatibility score, zero without a job description.
func (m *JobMatch) Score() float64 {
	if m == nil || m.Compatibility == nil {
		return 0
	}
	return m.Compatibility.Score
}

// CompanyResearch is the result of ResearchCompany.
type CompanyResearch struct {
	Profile  *company.Profile        `json:"profile"`
	Analysis fallback.Result[string] `json:"analysis"`
}

// InterviewPrep is the result of PrepareInterview.
type InterviewPrep struct {
	Company   string                  `json:"company,omitempty"`
	Questions interview.QuestionBank  `json:"questions"`
	Analysis  fallback.Result[string] `json:"analysis"`
}

// New creates an Assistant.
func New(deps Deps, cfg Config) *Assistant {
	log := logger.WithFields(deps.Logger)

	engine := deps.Engine
	if engine == nil {
		engine = compat.NewEngine(nil, compat.Config{}, log)
	}

	researcher := deps.Researcher
	if researcher == nil {
		researcher = company.NewResearcher(log)
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Assistant{
		generator:  deps.Generator,
		engine:     engine,
		researcher: researcher,
		extractor:  skills.NewExtractor(),
		logger:     log,
		maxLogLen:  maxLogLen,
	}
}

// AnalyzeResume scores the resume for ATS compatibility and asks for a written review.
func (a *Assistant) AnalyzeResume(ctx context.Context, resume string) (*ResumeAnalysis, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, ErrEmptyResume
	}

	report := ats.Score(resume)
	found := a.extractor.Extract(resume)

	issues := noneFound
	if len(report.Issues) > 0 {
		issues = strings.Join(report.Issues, ", ")
	}

	prompt := buildPrompt(promptResume,
		"RESUME", excerpt(resume, resumeExcerpt),
		"ATS_SCORE", fmt.Sprint(report.Score),
		"ATS_ISSUES", issues,
		"SKILLS", strings.Join(found.Labels(), ", "),
	)

	return &ResumeAnalysis{
		ATS:      report,
		Skills:   found,
		Analysis: a.generate(ctx, promptResume, prompt),
	}, nil
}

// MatchJobs compares the resume with a job description. An empty description yields
// general market advice without a compatibility report.
func (a *Assistant) MatchJobs(ctx context.Context, resume, job string) (*JobMatch, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, ErrEmptyResume
	}

	job = strings.TrimSpace(job)
	match := &JobMatch{
		ResumeSkills: a.extractor.Extract(resume),
		JobSkills:    a.extractor.Extract(job),
	}

	jobSkills := generalMarketAnalysis
	jobSection := ""
	marketSection := ""
	if job != "" {
		match.Compatibility = a.engine.Evaluate(ctx, resume, job)
		if match.JobSkills.Len() > 0 {
			jobSkills = strings.Join(match.JobSkills.Labels(), ", ")
		}
		jobSection = "Job Description: " + excerpt(job, jobExcerpt)
		marketSection = marketContext(match.Compatibility)
	}

	prompt := buildPrompt(promptMatch,
		"RESUME_SKILLS", strings.Join(match.ResumeSkills.Labels(), ", "),
		"JOB_SKILLS", jobSkills,
		"SCORE", fmt.Sprint(match.Score()),
		"MARKET", marketSection,
		"RESUME", excerpt(resume, matchResumeExcerpt),
		"JOB", jobSection,
	)

	match.Analysis = a.generate(ctx, promptMatch, prompt)
	return match, nil
}

// ResearchCompany gathers company data and asks for an interview-oriented briefing.
func (a *Assistant) ResearchCompany(ctx context.Context, name, resume string) (*CompanyResearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCompany
	}

	profile := a.researcher.Research(ctx, name)

	news := make([]string, 0, len(profile.News.Data))
	for _, article := range profile.News.Data {
		news = append(news, fmt.Sprintf("• %s: %s", article.Title, article.Description))
	}

	prompt := buildPrompt(promptCompany,
		"COMPANY", name,
		"NEWS", strings.Join(news, "\n"),
		"SUMMARY", profile.Summary,
		"CANDIDATE", candidateSection(resume),
	)

	return &CompanyResearch{
		Profile:  profile,
		Analysis: a.generate(ctx, promptCompany, prompt),
	}, nil
}

// PrepareInterview picks the question bank for the role described by job and asks for a preparation guide.
func (a *Assistant) PrepareInterview(ctx context.Context, job, companyName, resume string) (*InterviewPrep, error) {
	job = strings.TrimSpace(job)
	companyName = strings.TrimSpace(companyName)
	if job == "" && companyName == "" {
		return nil, ErrNothingToPrepare
	}

	bank := interview.QuestionsFor(job)

	prompt := buildPrompt(promptInterview,
		"JOB", excerpt(job, jobExcerpt),
		"COMPANY", companyName,
		"TECHNICAL", strings.Join(bank.Technical, ", "),
		"BEHAVIORAL", strings.Join(bank.Behavioral, ", "),
		"CANDIDATE", candidateSection(resume),
	)

	return &InterviewPrep{
		Company:   companyName,
		Questions: bank,
		Analysis:  a.generate(ctx, promptInterview, prompt),
	}, nil
}

// generate asks the generator for text and cleans it. Failures degrade to UnavailableAnalysis.
func (a *Assistant) generate(ctx context.Context, name, prompt string) fallback.Result[string] {
	log := a.logger.With(zap.String("prompt", name))

	if a.generator == nil {
		log.Debug("generator is not configured", logger.DegradedFields(ErrGeneratorUnavailable.Error())...)
		return fallback.Degrade(UnavailableAnalysis, ErrGeneratorUnavailable.Error())
	}

	log = logger.WithCommonFields(log, "generator", a.generator.Model())
	log.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt(), prompt)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = ai.ErrEmptyResponse
	}
	if err != nil {
		log.Warn("content generation failed, returning local results only",
			append(logger.DegradedFields(err.Error()), zap.Error(err))...)
		return fallback.Degrade(UnavailableAnalysis, err.Error())
	}

	log.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	text := textclean.HTML(stripFences(raw))
	if text == "" {
		return fallback.Degrade(UnavailableAnalysis, ai.ErrEmptyResponse.Error())
	}
	return fallback.Live(text)
}

// stripFences removes a markdown code fence wrapping the whole answer.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if idx := strings.Index(raw, "\n"); idx != -1 {
		raw = raw[idx+1:]
	} else {
		raw = strings.TrimLeft(raw, "`")
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return utils.Clip(s, limit) + "..."
}

func candidateSection(resume string) string {
	if strings.TrimSpace(resume) == "" {
		return ""
	}
	return "CANDIDATE PROFILE: " + excerpt(resume, candidateExcerpt)
}

func marketContext(report *compat.Report) string {
	if report == nil {
		return ""
	}

	snapshot := report.Market.Data
	var b strings.Builder
	fmt.Fprintf(&b, "Inferred Job Title: %s\n", report.JobTitle)
	if report.Market.Degraded {
		fmt.Fprintf(&b, "Market Data (estimated): demand %s, salary range %s\n", snapshot.MarketDemand, snapshot.SalaryRange)
		return b.String()
	}

	fmt.Fprintf(&b, "Market Data: %d open positions", snapshot.TotalJobs)
	if snapshot.AverageSalary > 0 {
		fmt.Fprintf(&b, ", average maximum salary %d", snapshot.AverageSalary)
	}
	if len(snapshot.TopCompanies) > 0 {
		fmt.Fprintf(&b, ", hiring companies: %s", strings.Join(snapshot.TopCompanies, ", "))
	}
	b.WriteString("\n")
	return b.String()
}
