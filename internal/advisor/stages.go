package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-assistant/internal/fallback"
)

// Request is the input of a comprehensive analysis.
type Request struct {
	Resume         string
	JobDescription string
	CompanyName    string
}

// Comprehensive collects the results of every stage that ran.
type Comprehensive struct {
	Resume    *ResumeAnalysis         `json:"resume_analysis,omitempty"`
	Match     *JobMatch               `json:"job_matching,omitempty"`
	Company   *CompanyResearch        `json:"company_research,omitempty"`
	Interview *InterviewPrep          `json:"interview_prep,omitempty"`
	Summary   fallback.Result[string] `json:"comprehensive_summary"`
	Stages    []Status                `json:"stages"`
}

// TotalComponents counts the stage results plus the summary.
func (c *Comprehensive) TotalComponents() int {
	total := 1
	if c.Resume != nil {
		total++
	}
	if c.Match != nil {
		total++
	}
	if c.Company != nil {
		total++
	}
	if c.Interview != nil {
		total++
	}
	return total
}

// Stage is a single analysis step of a comprehensive run.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(req *Request) error
	Run(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (Step, error)
}

// Step describes the outcome of a stage run.
type Step struct {
	Duration time.Duration
	Degraded bool
}

// Status represents runtime information about a stage.
type Status struct {
	Name     string            `json:"name"`
	Enabled  bool              `json:"enabled"`
	Reason   string            `json:"reason,omitempty"`
	Degraded bool              `json:"degraded,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

type stage struct {
	name    string
	enabled bool
	reason  string
	step    Step
	ran     bool
	need    func(req *Request) string
	run     func(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (bool, error)
}

func (s *stage) Name() string { return s.name }

func (s *stage) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *stage) IsEnabled() bool { return s.enabled }

// Validate disables the stage when its input is missing.
func (s *stage) Validate(req *Request) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if s.need == nil {
		return nil
	}
	if reason := s.need(req); reason != "" {
		s.Disable(reason)
	}
	return nil
}

func (s *stage) Run(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (Step, error) {
	started := time.Now()
	degraded, err := s.run(ctx, a, req, out)
	s.ran = true
	s.step = Step{Duration: time.Since(started), Degraded: degraded}
	return s.step, err
}

func (s *stage) Status() Status {
	details := map[string]string{}
	if s.ran {
		details["duration"] = s.step.Duration.Round(time.Millisecond).String()
	}
	return Status{
		Name:     s.name,
		Enabled:  s.enabled,
		Reason:   s.reason,
		Degraded: s.step.Degraded,
		Details:  details,
	}
}

// NewResumeStage always runs.
func NewResumeStage() Stage {
	return &stage{
		name:    "resume_analysis",
		enabled: true,
		run: func(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (bool, error) {
			res, err := a.AnalyzeResume(ctx, req.Resume)
			if err != nil {
				return false, err
			}
			out.Resume = res
			return res.Analysis.Degraded, nil
		},
	}
}

// NewMatchStage runs when a job description is given.
func NewMatchStage() Stage {
	return &stage{
		name:    "job_matching",
		enabled: true,
		need: func(req *Request) string {
			if strings.TrimSpace(req.JobDescription) == "" {
				return "no job description"
			}
			return ""
		},
		run: func(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (bool, error) {
			res, err := a.MatchJobs(ctx, req.Resume, req.JobDescription)
			if err != nil {
				return false, err
			}
			out.Match = res
			return res.Analysis.Degraded || (res.Compatibility != nil && res.Compatibility.Market.Degraded), nil
		},
	}
}

// NewCompanyStage runs when a company name is given.
func NewCompanyStage() Stage {
	return &stage{
		name:    "company_research",
		enabled: true,
		need: func(req *Request) string {
			if strings.TrimSpace(req.CompanyName) == "" {
				return "no company name"
			}
			return ""
		},
		run: func(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (bool, error) {
			res, err := a.ResearchCompany(ctx, req.CompanyName, req.Resume)
			if err != nil {
				return false, err
			}
			out.Company = res
			return res.Analysis.Degraded || res.Profile.News.Degraded, nil
		},
	}
}

// NewInterviewStage runs when a job description or a company name is given.
func NewInterviewStage() Stage {
	return &stage{
		name:    "interview_prep",
		enabled: true,
		need: func(req *Request) string {
			if strings.TrimSpace(req.JobDescription) == "" && strings.TrimSpace(req.CompanyName) == "" {
				return "no job description or company name"
			}
			return ""
		},
		run: func(ctx context.Context, a *Assistant, req *Request, out *Comprehensive) (bool, error) {
			res, err := a.PrepareInterview(ctx, req.JobDescription, req.CompanyName, req.Resume)
			if err != nil {
				return false, err
			}
			out.Interview = res
			return res.Analysis.Degraded, nil
		},
	}
}

// DefaultStages returns a fresh set of the four analysis stages in report order.
func DefaultStages() []Stage {
	return []Stage{NewResumeStage(), NewMatchStage(), NewCompanyStage(), NewInterviewStage()}
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, s := range stages {
		if s.Name() == name {
			s.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, s := range stages {
		if reporter, ok := s.(interface{ Status() Status }); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: s.Name(), Enabled: s.IsEnabled()})
	}
	return statuses
}

// Comprehensive runs every applicable default stage and writes a summary.
func (a *Assistant) Comprehensive(ctx context.Context, req Request) (*Comprehensive, error) {
	return a.RunStages(ctx, req, DefaultStages())
}

// RunStages validates the stages, runs the enabled ones concurrently and then asks for a
// summary connecting their findings. Stages write disjoint fields of the result.
func (a *Assistant) RunStages(ctx context.Context, req Request, stages []Stage) (*Comprehensive, error) {
	if strings.TrimSpace(req.Resume) == "" {
		return nil, ErrEmptyResume
	}

	for _, s := range stages {
		if !s.IsEnabled() {
			continue
		}
		if err := s.Validate(&req); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
	}

	out := &Comprehensive{}
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range stages {
		if !s.IsEnabled() {
			a.logger.Info("stage disabled", zap.String("name", s.Name()))
			continue
		}

		g.Go(func() error {
			info, err := s.Run(gctx, a, &req, out)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
			a.logger.Info("stage completed",
				zap.String("name", s.Name()),
				zap.Duration("duration", info.Duration),
				zap.Bool("degraded", info.Degraded),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Stages = Describe(stages)
	out.Summary = a.generate(ctx, promptSummary, buildPrompt(promptSummary, "FINDINGS", findings(out)))
	return out, nil
}

// findings lists the local results that ground the summary.
func findings(c *Comprehensive) string {
	var lines []string
	if c.Resume != nil {
		lines = append(lines,
			"ATS Score: "+strconv.Itoa(c.Resume.ATS.Score)+"/100",
			"Resume Skills: "+strings.Join(c.Resume.Skills.Labels(), ", "),
		)
	}
	if c.Match != nil && c.Match.Compatibility != nil {
		lines = append(lines,
			fmt.Sprintf("Job Compatibility: %v/100 (%s)", c.Match.Compatibility.Score, c.Match.Compatibility.JobTitle),
			"Missing Skills: "+strings.Join(c.Match.Compatibility.MissingSkills.Labels(), ", "),
		)
	}
	if c.Company != nil && c.Company.Profile != nil {
		lines = append(lines, "Company: "+c.Company.Profile.Name)
	}
	if c.Interview != nil {
		lines = append(lines, fmt.Sprintf("Interview Questions Prepared: %d", len(c.Interview.Questions.Technical)+len(c.Interview.Questions.Behavioral)))
	}
	if len(lines) == 0 {
		return ""
	}
	return "Findings:\n- " + strings.Join(lines, "\n- ")
}
