package company

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/logger"
)

const (
	alphaVantageURL  = "https://www.alphavantage.co"
	alphaVantagePath = "/query"
)

// AlphaVantage reads company overviews from the Alpha Vantage API.
type AlphaVantage struct {
	apiKey string
	http   *resty.Client
	logger *zap.Logger
}

// NewAlphaVantage creates the client. An empty baseURL selects the public endpoint.
func NewAlphaVantage(apiKey, baseURL string, log *zap.Logger) *AlphaVantage {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = alphaVantageURL
	}

	return &AlphaVantage{
		apiKey: strings.TrimSpace(apiKey),
		http:   newHTTPClient(baseURL),
		logger: logger.WithCommonFields(log, "alphavantage", baseURL),
	}
}

// Overview returns the OVERVIEW fundamentals of symbol.
func (a *AlphaVantage) Overview(ctx context.Context, symbol string) (*Financials, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}

	a.logger.Debug("make request", zap.String("symbol", symbol))

	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "OVERVIEW",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		}).
		Get(alphaVantagePath)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("alphavantage request: bad status: %s", resp.Status())
	}

	return parseOverview(resp.Body())
}

func parseOverview(body []byte) (*Financials, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("alphavantage: invalid json payload")
	}

	fields := gjson.GetManyBytes(body, "Symbol", "MarketCapitalization", "PERatio", "DividendYield", "ProfitMargin", "Sector", "Industry")
	if !fields[0].Exists() {
		// Rate limits and unknown symbols come back as 200 with a note instead of data.
		return nil, fmt.Errorf("alphavantage: no overview in response")
	}

	str := func(r gjson.Result) string {
		if !r.Exists() || strings.TrimSpace(r.String()) == "" {
			return notAvailable
		}
		return r.String()
	}

	return &Financials{
		MarketCap:     str(fields[1]),
		PERatio:       str(fields[2]),
		DividendYield: str(fields[3]),
		ProfitMargin:  str(fields[4]),
		Sector:        str(fields[5]),
		Industry:      str(fields[6]),
	}, nil
}
