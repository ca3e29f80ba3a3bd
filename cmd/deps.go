package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/advisor"
	"github.com/spigell/career-assistant/internal/ai"
	"github.com/spigell/career-assistant/internal/ai/gemini"
	"github.com/spigell/career-assistant/internal/company"
	"github.com/spigell/career-assistant/internal/compat"
	"github.com/spigell/career-assistant/internal/market"
	"github.com/spigell/career-assistant/internal/secrets"
)

// credentials are the resolved secrets of every external collaborator.
type credentials struct {
	gemini       string
	adzunaAppID  string
	adzunaAPIKey string
	newsAPI      string
	alphaVantage string
	serpAPI      string
}

func loadCredentials(config *Config) (*credentials, error) {
	creds := &credentials{}
	sources := []struct {
		dst *string
		src secrets.Source
	}{
		{&creds.gemini, secrets.Source{Name: "gemini api key", Value: config.AI.Gemini.APIKey, File: config.AI.Gemini.APIKeyFile}},
		{&creds.adzunaAppID, secrets.Source{Name: "adzuna app id", Value: config.Market.Adzuna.AppID, File: config.Market.Adzuna.AppIDFile}},
		{&creds.adzunaAPIKey, secrets.Source{Name: "adzuna api key", Value: config.Market.Adzuna.APIKey, File: config.Market.Adzuna.APIKeyFile}},
		{&creds.newsAPI, secrets.Source{Name: "newsapi key", Value: config.Company.NewsAPI.APIKey, File: config.Company.NewsAPI.APIKeyFile}},
		{&creds.alphaVantage, secrets.Source{Name: "alpha vantage key", Value: config.Company.AlphaVantage.APIKey, File: config.Company.AlphaVantage.APIKeyFile}},
		{&creds.serpAPI, secrets.Source{Name: "serpapi key", Value: config.Company.SerpAPI.APIKey, File: config.Company.SerpAPI.APIKeyFile}},
	}

	for _, s := range sources {
		value, err := secrets.LoadOptional(s.src)
		if err != nil {
			return nil, err
		}
		*s.dst = value
	}

	return creds, nil
}

// newAssistant wires every collaborator that has credentials. Missing ones make the
// assistant fall back to local scoring and mock data.
func newAssistant(ctx context.Context, config *Config, log *zap.Logger) (*advisor.Assistant, error) {
	creds, err := loadCredentials(config)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	generator, err := newGenerator(ctx, config.AI, creds.gemini, log)
	if err != nil {
		return nil, err
	}

	var provider market.Provider
	if creds.adzunaAppID != "" && creds.adzunaAPIKey != "" {
		provider = market.NewAdzuna(market.AdzunaConfig{
			AppID:          creds.adzunaAppID,
			APIKey:         creds.adzunaAPIKey,
			BaseURL:        config.Market.Adzuna.BaseURL,
			Timeout:        config.Market.Timeout,
			ResultsPerPage: config.Market.ResultsPerPage,
		}, log)
	} else {
		log.Info("adzuna credentials are not set, market data will use fallback values")
	}

	engine := compat.NewEngine(provider, compat.Config{
		Location: config.Market.Location,
		Timeout:  config.Market.Timeout,
	}, log)

	opts := []company.Option{company.WithTimeout(config.Company.Timeout)}
	if creds.newsAPI != "" {
		opts = append(opts, company.WithNews(company.NewNewsAPI(creds.newsAPI, config.Company.NewsAPI.BaseURL, log)))
	}
	if creds.alphaVantage != "" {
		opts = append(opts, company.WithFinancials(company.NewAlphaVantage(creds.alphaVantage, config.Company.AlphaVantage.BaseURL, log)))
	}
	if creds.serpAPI != "" {
		opts = append(opts, company.WithSentiment(company.NewSearchSentiment(creds.serpAPI)))
	}

	return advisor.New(advisor.Deps{
		Generator:  generator,
		Engine:     engine,
		Researcher: company.NewResearcher(log, opts...),
		Logger:     log,
	}, advisor.Config{MaxLogLength: config.AI.MaxLogLength}), nil
}

// newGenerator returns a nil generator when no api key is configured.
func newGenerator(ctx context.Context, config *AIConfig, apiKey string, log *zap.Logger) (ai.Generator, error) {
	if apiKey == "" {
		log.Warn("gemini api key is not set, AI analysis is disabled")
		return nil, nil
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:      apiKey,
		Model:       config.Gemini.Model,
		Temperature: config.Gemini.Temperature,
		MaxRetries:  config.Gemini.MaxRetries,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return generator, nil
}
