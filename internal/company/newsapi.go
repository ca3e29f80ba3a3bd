package company

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/logger"
	"github.com/spigell/career-assistant/internal/textclean"
)

const (
	newsAPIURL      = "https://newsapi.org"
	newsAPIPath     = "/v2/everything"
	newsPageSize    = "10"
	maxArticles     = 8
	noDescription   = "No description available"
	clientUserAgent = "spigell/career-assistant"
)

// NewsAPI fetches articles from newsapi.org.
type NewsAPI struct {
	apiKey string
	http   *resty.Client
	logger *zap.Logger
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// NewNewsAPI creates a NewsAPI client. An empty baseURL selects the public endpoint.
func NewNewsAPI(apiKey, baseURL string, log *zap.Logger) *NewsAPI {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = newsAPIURL
	}

	return &NewsAPI{
		apiKey: strings.TrimSpace(apiKey),
		http:   newHTTPClient(baseURL),
		logger: logger.WithCommonFields(log, "newsapi", baseURL),
	}
}

// News returns up to eight recent English articles quoting the company name.
func (n *NewsAPI) News(ctx context.Context, company string) ([]Article, error) {
	if n.apiKey == "" {
		return nil, ErrNotConfigured
	}

	n.logger.Debug("make request", zap.String("path", newsAPIPath), zap.String("company", company))

	resp, err := n.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        `"` + company + `"`,
			"sortBy":   "publishedAt",
			"pageSize": newsPageSize,
			"language": "en",
			"apiKey":   n.apiKey,
		}).
		Get(newsAPIPath)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("newsapi request: bad status: %s", resp.Status())
	}

	return parseArticles(resp.Body())
}

func parseArticles(body []byte) ([]Article, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("newsapi: invalid json payload")
	}

	var raw []*newsArticle
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(gjson.GetBytes(body, "articles").Value()); err != nil {
		return nil, fmt.Errorf("decode newsapi articles: %w", err)
	}

	if len(raw) > maxArticles {
		raw = raw[:maxArticles]
	}

	articles := make([]Article, 0, len(raw))
	for _, a := range raw {
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Description) == "" {
			continue
		}
		description := textclean.Inline(a.Description)
		if description == "" {
			description = noDescription
		}
		articles = append(articles, Article{
			Title:       textclean.Inline(a.Title),
			Description: description,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}

func newHTTPClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", clientUserAgent).
		SetHeader("Accept", "application/json")
}
