// Package compat evaluates how well a resume fits a job description.
package compat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/fallback"
	"github.com/spigell/career-assistant/internal/logger"
	"github.com/spigell/career-assistant/internal/market"
	"github.com/spigell/career-assistant/internal/skills"
)

// DefaultTitle is used when the job description names none of the known titles.
const DefaultTitle = "software engineer"

// titles are scanned in priority order.
var titles = []string{"software engineer", "data scientist", "product manager", "developer", "analyst"}

// Tier thresholds; lower bounds are inclusive.
const (
	excellentThreshold = 80
	goodThreshold      = 60
	moderateThreshold  = 40
)

// Report is the compatibility verdict for one resume and one job description.
type Report struct {
	Score          float64                          `json:"score"`
	MatchedSkills  skills.Set                       `json:"matched_skills"`
	MissingSkills  skills.Set                       `json:"missing_skills"`
	TotalRequired  int                              `json:"total_required"`
	Market         fallback.Result[market.Snapshot] `json:"market_data"`
	JobTitle       string                           `json:"job_title"`
	Recommendation string                           `json:"recommendation"`
}

// Config tunes the market lookup made during evaluation.
type Config struct {
	Location string
	Timeout  time.Duration
}

// Engine combines skill matching with job-market data.
type Engine struct {
	extractor *skills.Extractor
	market    market.Provider
	cfg       Config
	logger    *zap.Logger
}

// NewEngine creates an Engine. A nil provider makes every report carry fallback market data.
func NewEngine(provider market.Provider, cfg Config, log *zap.Logger) *Engine {
	return &Engine{
		extractor: skills.NewExtractor(),
		market:    provider,
		cfg:       cfg,
		logger:    logger.WithFields(log),
	}
}

// Evaluate scores resumeText against jobDescription. It never fails; an unreachable
// market provider is reported through Report.Market.
func (e *Engine) Evaluate(ctx context.Context, resumeText, jobDescription string) *Report {
	resumeSkills := e.extractor.Extract(resumeText)
	jobSkills := e.extractor.Extract(jobDescription)
	match := skills.Score(resumeSkills, jobSkills)

	title := InferTitle(jobDescription)
	snapshot := market.Lookup(ctx, e.market, title, e.cfg.Location, e.cfg.Timeout, e.logger)

	e.logger.Debug("compatibility evaluated",
		zap.Float64("score", match.Score),
		zap.Int("total_required", match.TotalRequired),
		zap.Int("total_matched", match.TotalMatched),
		zap.String("job_title", title),
		zap.Bool(logger.FieldDegraded, snapshot.Degraded),
	)

	return &Report{
		Score:          match.Score,
		MatchedSkills:  match.Matched,
		MissingSkills:  match.Missing,
		TotalRequired:  match.TotalRequired,
		Market:         snapshot,
		JobTitle:       title,
		Recommendation: Recommend(match),
	}
}

// InferTitle returns the first known job title contained in the description.
func InferTitle(jobDescription string) string {
	lower := strings.ToLower(jobDescription)
	for _, title := range titles {
		if strings.Contains(lower, title) {
			return title
		}
	}
	return DefaultTitle
}

// Recommend phrases the advice that matches the score tier of m.
func Recommend(m skills.MatchResult) string {
	switch {
	case m.Score >= excellentThreshold:
		return fmt.Sprintf("Excellent match! You meet %d out of %d requirements. Strong candidate for this role.",
			m.TotalMatched, m.TotalRequired)
	case m.Score >= goodThreshold:
		return fmt.Sprintf("Good match! Consider developing: %s to strengthen your profile.",
			strings.Join(m.Missing.First(3), ", "))
	case m.Score >= moderateThreshold:
		return fmt.Sprintf("Moderate match. Focus on gaining experience in: %s before applying.",
			strings.Join(m.Missing.First(5), ", "))
	default:
		return fmt.Sprintf("Low match. Consider roles requiring: %s and build skills in: %s",
			strings.Join(m.Matched.Labels(), ", "), strings.Join(m.Missing.First(3), ", "))
	}
}
