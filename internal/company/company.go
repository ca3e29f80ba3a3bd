// Package company gathers news, financial and sentiment data about an employer.
package company

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-assistant/internal/fallback"
	"github.com/spigell/career-assistant/internal/logger"
)

// DefaultTimeout bounds each collaborator call made during research.
const DefaultTimeout = 15 * time.Second

const notAvailable = "N/A"

// ErrNotConfigured is returned by sources that lack credentials.
var ErrNotConfigured = errors.New("company data source is not configured")

// errNoData is the degradation reason for a source that returned neither data nor an error.
var errNoData = errors.New("no data")

// Article is a news item about the company.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Financials is the overview of a listed company.
type Financials struct {
	MarketCap     string `json:"market_cap"`
	PERatio       string `json:"pe_ratio,omitempty"`
	DividendYield string `json:"dividend_yield,omitempty"`
	ProfitMargin  string `json:"profit_margin,omitempty"`
	Sector        string `json:"sector"`
	Industry      string `json:"industry,omitempty"`
	GrowthStatus  string `json:"growth_status,omitempty"`
}

// Sentiment describes public interest in the company.
type Sentiment struct {
	Sentiment      string `json:"sentiment"`
	Trend          string `json:"trend"`
	SearchVolume   string `json:"search_volume,omitempty"`
	MarketInterest string `json:"market_interest,omitempty"`
}

// Profile is the outcome of Researcher.Research.
type Profile struct {
	Name       string                       `json:"company_name"`
	Symbol     string                       `json:"symbol,omitempty"`
	News       fallback.Result[[]Article]   `json:"recent_news"`
	Financials *fallback.Result[Financials] `json:"financial_data,omitempty"`
	Sentiment  fallback.Result[Sentiment]   `json:"market_sentiment"`
	Summary    string                       `json:"research_summary"`
}

// NewsSource returns recent articles mentioning a company.
type NewsSource interface {
	News(ctx context.Context, company string) ([]Article, error)
}

// FinancialSource returns the financial overview of a ticker symbol.
type FinancialSource interface {
	Overview(ctx context.Context, symbol string) (*Financials, error)
}

// SentimentSource returns market sentiment for a company.
type SentimentSource interface {
	Sentiment(ctx context.Context, company string) (*Sentiment, error)
}

// MockNews is the placeholder news used when no news source answers.
func MockNews(company string) []Article {
	return []Article{
		{Title: company + " announces new product launch", Description: "Company expands market presence"},
		{Title: company + " reports strong quarterly results", Description: "Revenue growth exceeds expectations"},
		{Title: company + " hiring initiative launched", Description: "Company plans to hire 1000+ employees"},
	}
}

// FallbackFinancials is the placeholder overview used when no financial data is available.
func FallbackFinancials() Financials {
	return Financials{
		MarketCap:    "Data not available",
		Sector:       "Technology/Services",
		GrowthStatus: "Stable/Growing",
	}
}

// FallbackSentiment is the placeholder sentiment used when no sentiment source answers.
func FallbackSentiment() Sentiment {
	return Sentiment{
		Sentiment:      "Neutral",
		Trend:          "Stable",
		MarketInterest: "Moderate",
	}
}

var symbols = []struct {
	name   string
	symbol string
}{
	{"google", "GOOGL"},
	{"microsoft", "MSFT"},
	{"apple", "AAPL"},
	{"amazon", "AMZN"},
	{"netflix", "NFLX"},
	{"tesla", "TSLA"},
	{"meta", "META"},
	{"nvidia", "NVDA"},
	{"salesforce", "CRM"},
}

// Symbol returns the stock ticker of a well-known company mentioned in name.
func Symbol(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, s := range symbols {
		if strings.Contains(lower, s.name) {
			return s.symbol, true
		}
	}
	return "", false
}

// Researcher combines the configured sources. Nil sources degrade to placeholders.
type Researcher struct {
	news      NewsSource
	finance   FinancialSource
	sentiment SentimentSource
	timeout   time.Duration
	logger    *zap.Logger
}

// Option customizes a Researcher.
type Option func(*Researcher)

// WithNews sets the news source.
func WithNews(src NewsSource) Option {
	return func(r *Researcher) { r.news = src }
}

// WithFinancials sets the financial source.
func WithFinancials(src FinancialSource) Option {
	return func(r *Researcher) { r.finance = src }
}

// WithSentiment sets the sentiment source.
func WithSentiment(src SentimentSource) Option {
	return func(r *Researcher) { r.sentiment = src }
}

// WithTimeout bounds each source call.
func WithTimeout(d time.Duration) Option {
	return func(r *Researcher) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewResearcher builds a Researcher.
func NewResearcher(log *zap.Logger, opts ...Option) *Researcher {
	r := &Researcher{
		timeout: DefaultTimeout,
		logger:  logger.WithFields(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Research queries every source concurrently and summarizes the answers.
// Source failures never fail the research; they are reported as degraded results.
func (r *Researcher) Research(ctx context.Context, name string) *Profile {
	name = strings.TrimSpace(name)
	log := r.logger.With(zap.String("company", name))

	profile := &Profile{Name: name}
	symbol, listed := Symbol(name)
	if listed {
		profile.Symbol = symbol
	}

	// Each goroutine writes its own field and always returns nil.
	var g errgroup.Group

	g.Go(func() error {
		profile.News = r.fetchNews(ctx, name, log)
		return nil
	})

	if listed {
		g.Go(func() error {
			res := r.fetchFinancials(ctx, symbol, log)
			profile.Financials = &res
			return nil
		})
	}

	g.Go(func() error {
		profile.Sentiment = r.fetchSentiment(ctx, name, log)
		return nil
	})

	_ = g.Wait()

	profile.Summary = summarize(profile)
	return profile
}

func (r *Researcher) fetchNews(ctx context.Context, name string, log *zap.Logger) fallback.Result[[]Article] {
	if r.news == nil {
		return fallback.Degrade(MockNews(name), ErrNotConfigured.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	articles, err := r.news.News(ctx, name)
	if err == nil && len(articles) == 0 {
		err = errors.New("no articles found")
	}
	if err != nil {
		log.Warn("news lookup failed, using mock news", append(logger.DegradedFields(err.Error()), zap.Error(err))...)
		return fallback.Degrade(MockNews(name), err.Error())
	}
	return fallback.Live(articles)
}

func (r *Researcher) fetchFinancials(ctx context.Context, symbol string, log *zap.Logger) fallback.Result[Financials] {
	if r.finance == nil {
		return fallback.Degrade(FallbackFinancials(), ErrNotConfigured.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	overview, err := r.finance.Overview(ctx, symbol)
	if err == nil && overview == nil {
		err = errNoData
	}
	if err != nil {
		log.Warn("financial lookup failed, using fallback data",
			append(logger.DegradedFields(err.Error()), zap.String("symbol", symbol), zap.Error(err))...)
		return fallback.Degrade(FallbackFinancials(), err.Error())
	}
	return fallback.Live(*overview)
}

func (r *Researcher) fetchSentiment(ctx context.Context, name string, log *zap.Logger) fallback.Result[Sentiment] {
	if r.sentiment == nil {
		return fallback.Degrade(FallbackSentiment(), ErrNotConfigured.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	s, err := r.sentiment.Sentiment(ctx, name)
	if err == nil && s == nil {
		err = errNoData
	}
	if err != nil {
		log.Debug("sentiment lookup failed, using fallback data", logger.DegradedFields(err.Error())...)
		return fallback.Degrade(FallbackSentiment(), err.Error())
	}
	return fallback.Live(*s)
}

func summarize(p *Profile) string {
	sector := "Technology/Services"
	health := "Strong"
	if p.Financials != nil {
		sector = valueOr(p.Financials.Data.Sector, sector)
		marketCap := valueOr(p.Financials.Data.MarketCap, health)
		if strings.Contains(marketCap, notAvailable) {
			health = "Stable"
		} else {
			health = marketCap
		}
	}

	newsCount := 0
	for _, a := range p.News.Data {
		if a.Title != "" {
			newsCount++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent Analysis for %s:\n", p.Name)
	fmt.Fprintf(&b, "• Found %d recent news articles\n", newsCount)
	fmt.Fprintf(&b, "• Market Sector: %s\n", sector)
	fmt.Fprintf(&b, "• Market Sentiment: %s\n", valueOr(p.Sentiment.Data.Sentiment, "Positive"))
	fmt.Fprintf(&b, "• Search Trend: %s\n", valueOr(p.Sentiment.Data.Trend, "Growing"))
	fmt.Fprintf(&b, "• Financial Health: %s", health)
	return b.String()
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
