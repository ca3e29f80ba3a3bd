package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/career-assistant/internal/advisor"
	"github.com/spigell/career-assistant/internal/fallback"
	"github.com/spigell/career-assistant/internal/market"
)

// Text writes human readable reports with colored scores.
type Text struct {
	w       io.Writer
	heading *color.Color
	good    *color.Color
	fair    *color.Color
	poor    *color.Color
	muted   *color.Color
	title   cases.Caser
	err     error
}

// NewText creates a text renderer. noColor disables ANSI escapes.
func NewText(w io.Writer, noColor bool) *Text {
	t := &Text{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen, color.Bold),
		fair:    color.New(color.FgYellow, color.Bold),
		poor:    color.New(color.FgRed, color.Bold),
		muted:   color.New(color.Faint),
		title:   cases.Title(language.English),
	}
	if noColor {
		for _, c := range []*color.Color{t.heading, t.good, t.fair, t.poor, t.muted} {
			c.DisableColor()
		}
	}
	return t
}

// Score colors a 0-100 score: green from 80, yellow from 60, red below.
func (t *Text) Score(score float64) string {
	label := fmt.Sprintf("%v/100", score)
	switch {
	case score >= 80:
		return t.good.Sprint(label)
	case score >= 60:
		return t.fair.Sprint(label)
	default:
		return t.poor.Sprint(label)
	}
}

func (t *Text) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *Text) section(name string) {
	t.printf("\n%s\n", t.heading.Sprint(name))
}

func (t *Text) list(items []string, empty string) {
	if len(items) == 0 {
		t.printf("  %s\n", t.muted.Sprint(empty))
		return
	}
	for _, item := range items {
		t.printf("  • %s\n", item)
	}
}

func (t *Text) degraded(degraded bool, reason string) {
	if degraded {
		t.printf("  %s\n", t.muted.Sprintf("(fallback data: %s)", reason))
	}
}

func (t *Text) analysis(res fallback.Result[string]) {
	t.section("Analysis")
	t.degraded(res.Degraded, res.Reason)
	t.printf("%s\n", res.Data)
}

func (t *Text) done() error {
	err := t.err
	t.err = nil
	return err
}

func (t *Text) Resume(res *advisor.ResumeAnalysis) error {
	t.resume(res)
	return t.done()
}

func (t *Text) resume(res *advisor.ResumeAnalysis) {
	t.section("Resume Analysis")
	t.printf("ATS score: %s (%d words)\n", t.Score(float64(res.ATS.Score)), res.ATS.WordCount)
	t.printf("Issues:\n")
	t.list(res.ATS.Issues, "No issues found")
	t.printf("Suggestions:\n")
	t.list(res.ATS.Suggestions, "")
	t.printf("Extracted skills:\n")
	t.list(res.Skills.Labels(), "No known skills found")
	t.analysis(res.Analysis)
}

func (t *Text) Match(res *advisor.JobMatch) error {
	t.match(res)
	return t.done()
}

func (t *Text) match(res *advisor.JobMatch) {
	t.section("Job Matching")
	t.printf("Resume skills: %s\n", joinOr(res.ResumeSkills.Labels(), "none"))
	t.printf("Job skills: %s\n", joinOr(res.JobSkills.Labels(), "general market analysis"))

	if report := res.Compatibility; report != nil {
		t.printf("Compatibility: %s for %s\n", t.Score(report.Score), t.title.String(report.JobTitle))
		t.printf("Matched: %s\n", joinOr(report.MatchedSkills.Labels(), "none"))
		t.printf("Missing: %s\n", joinOr(report.MissingSkills.Labels(), "none"))
		t.printf("%s\n", report.Recommendation)
		t.market(report.Market)
	}

	t.analysis(res.Analysis)
}

func (t *Text) market(res fallback.Result[market.Snapshot]) {
	t.section("Job Market")
	t.degraded(res.Degraded, res.Reason)

	s := res.Data
	if res.Degraded {
		t.printf("Total jobs: %s\n", market.DataUnavailable)
		t.printf("Market demand: %s\n", s.MarketDemand)
		t.printf("Salary range: %s\n", s.SalaryRange)
		return
	}

	t.printf("Total jobs: %d\n", s.TotalJobs)
	if s.AverageSalary > 0 {
		t.printf("Average salary: %s\n", market.FormatSalary(s.AverageSalary))
	} else {
		t.printf("Average salary: Not specified\n")
	}
	if len(s.TopCompanies) > 0 {
		t.printf("Top companies: %s\n", strings.Join(s.TopCompanies, ", "))
	}
	if len(s.Locations) > 0 {
		t.printf("Locations: %s\n", strings.Join(s.Locations, ", "))
	}
	for _, job := range s.SampleJobs {
		t.printf("  • %s at %s (%s), %s\n", job.Title, job.Company, job.Location, job.Salary)
	}
}

func (t *Text) Company(res *advisor.CompanyResearch) error {
	t.company(res)
	return t.done()
}

func (t *Text) company(res *advisor.CompanyResearch) {
	p := res.Profile
	t.section("Company Research: " + p.Name)
	t.printf("%s\n", p.Summary)

	t.section("Recent News")
	t.degraded(p.News.Degraded, p.News.Reason)
	for _, article := range p.News.Data {
		t.printf("  • %s: %s\n", article.Title, article.Description)
	}

	if p.Financials != nil {
		f := p.Financials.Data
		t.section("Financials (" + p.Symbol + ")")
		t.degraded(p.Financials.Degraded, p.Financials.Reason)
		t.printf("Market cap: %s\nSector: %s\n", f.MarketCap, f.Sector)
		if f.Industry != "" {
			t.printf("Industry: %s\nP/E: %s\nProfit margin: %s\n", f.Industry, f.PERatio, f.ProfitMargin)
		}
	}

	t.analysis(res.Analysis)
}

func (t *Text) Interview(res *advisor.InterviewPrep) error {
	t.interview(res)
	return t.done()
}

func (t *Text) interview(res *advisor.InterviewPrep) {
	t.section("Interview Preparation")
	t.printf("Technical questions:\n")
	t.list(res.Questions.Technical, "")
	t.printf("Behavioral questions:\n")
	t.list(res.Questions.Behavioral, "")
	t.analysis(res.Analysis)
}

func (t *Text) Comprehensive(res *advisor.Comprehensive) error {
	if res.Resume != nil {
		t.resume(res.Resume)
	}
	if res.Match != nil {
		t.match(res.Match)
	}
	if res.Company != nil {
		t.company(res.Company)
	}
	if res.Interview != nil {
		t.interview(res.Interview)
	}

	t.section("Career Strategy")
	t.degraded(res.Summary.Degraded, res.Summary.Reason)
	t.printf("%s\n", res.Summary.Data)

	t.section("Stages")
	for _, stage := range res.Stages {
		state := t.good.Sprint("done")
		switch {
		case !stage.Enabled:
			state = t.muted.Sprintf("skipped (%s)", stage.Reason)
		case stage.Degraded:
			state = t.fair.Sprint("done with fallback data")
		}
		t.printf("  %s: %s\n", stage.Name, state)
	}
	t.printf("Total components: %d\n", res.TotalComponents())

	return t.done()
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
