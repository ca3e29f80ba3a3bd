package market

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/career-assistant/internal/logger"
)

const (
	adzunaURL       = "https://api.adzuna.com"
	adzunaPath      = "/v1/api/jobs/%s/search/1"
	userAgent       = "spigell/career-assistant"
	resultsPerPage  = 20
	sortBySalary    = "salary"
	notSpecified    = "Not specified"
	unknownLocation = "N/A"

	// Only the first postings feed location/company lists and samples.
	aggregateWindow = 10
	sampleSize      = 5
)

// AdzunaConfig holds credentials and tuning for the Adzuna job search API.
type AdzunaConfig struct {
	AppID          string
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	ResultsPerPage int
}

// Adzuna is a Provider backed by the Adzuna search API.
type Adzuna struct {
	appID   string
	apiKey  string
	perPage int
	http    *resty.Client
	logger  *zap.Logger
}

// SearchParams are the query parameters of a search request.
type SearchParams struct {
	// adzuna is a custom tag read by buildParams.
	AppID          string `adzuna:"app_id"`
	AppKey         string `adzuna:"app_key"`
	What           string `adzuna:"what"`
	ResultsPerPage int    `adzuna:"results_per_page"`
	SortBy         string `adzuna:"sort_by"`
}

type adzunaJob struct {
	Title     string  `json:"title"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
	Company   *struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location *struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// NewAdzuna creates the client. Missing credentials are reported by LookupJobs.
func NewAdzuna(cfg AdzunaConfig, log *zap.Logger) *Adzuna {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = adzunaURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	perPage := cfg.ResultsPerPage
	if perPage <= 0 {
		perPage = resultsPerPage
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Adzuna{
		appID:   strings.TrimSpace(cfg.AppID),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		perPage: perPage,
		http:    client,
		logger:  logger.WithCommonFields(log, "adzuna", baseURL),
	}
}

// LookupJobs searches postings for title in the given country and aggregates them.
func (a *Adzuna) LookupJobs(ctx context.Context, title, location string) (*Snapshot, error) {
	if a.appID == "" || a.apiKey == "" {
		return nil, ErrNotConfigured
	}

	if location == "" {
		location = DefaultLocation
	}

	params := &SearchParams{
		AppID:          a.appID,
		AppKey:         a.apiKey,
		What:           title,
		ResultsPerPage: a.perPage,
		SortBy:         sortBySalary,
	}

	path := fmt.Sprintf(adzunaPath, location)
	a.logger.Debug("make request", zap.String("path", path), zap.String("what", title))

	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParams(buildParams(params)).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("adzuna search: bad status: %s", resp.Status())
	}

	return parseSearch(resp.Body())
}

func parseSearch(body []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("adzuna search: invalid json payload")
	}

	var jobs []*adzunaJob
	cfg := &mapstructure.DecoderConfig{
		Result:           &jobs,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(gjson.GetBytes(body, "results").Value()); err != nil {
		return nil, fmt.Errorf("decode adzuna results: %w", err)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("adzuna search returned no postings")
	}

	snapshot := &Snapshot{
		TotalJobs:     int(gjson.GetBytes(body, "count").Int()),
		AverageSalary: averageSalary(jobs),
	}

	window := jobs
	if len(window) > aggregateWindow {
		window = window[:aggregateWindow]
	}

	for _, job := range window {
		snapshot.Locations = appendUnique(snapshot.Locations, job.location())
		if job.Company != nil {
			snapshot.TopCompanies = appendUnique(snapshot.TopCompanies, job.company())
		}
	}

	for i, job := range jobs {
		if i == sampleSize {
			break
		}
		snapshot.SampleJobs = append(snapshot.SampleJobs, Listing{
			Title:    valueOr(job.Title, unknownLocation),
			Company:  job.company(),
			Location: job.location(),
			Salary:   job.salary(),
		})
	}

	return snapshot, nil
}

func averageSalary(jobs []*adzunaJob) int {
	var sum float64
	var count int
	for _, job := range jobs {
		if job.SalaryMax > 0 {
			sum += job.SalaryMax
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}

var printer = message.NewPrinter(language.English)

// FormatSalary renders an amount the way postings display it, e.g. "$120,000".
func FormatSalary(amount int) string {
	return printer.Sprintf("$%d", amount)
}

func (j *adzunaJob) salary() string {
	if j.SalaryMax <= 0 {
		return notSpecified
	}
	return FormatSalary(int(j.SalaryMin)) + " - " + FormatSalary(int(j.SalaryMax))
}

func (j *adzunaJob) company() string {
	if j.Company == nil {
		return unknownLocation
	}
	return valueOr(j.Company.DisplayName, unknownLocation)
}

func (j *adzunaJob) location() string {
	if j.Location == nil {
		return unknownLocation
	}
	return valueOr(j.Location.DisplayName, unknownLocation)
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// buildParams converts the tagged fields of params into query parameters, skipping zero values.
func buildParams(params *SearchParams) map[string]string {
	q := make(map[string]string)
	value := reflect.ValueOf(params).Elem()
	for _, field := range reflect.VisibleFields(value.Type()) {
		key := field.Tag.Get("adzuna")
		if key == "" {
			continue
		}

		var v string
		switch f := value.FieldByIndex(field.Index); f.Kind() {
		case reflect.Int:
			if f.Int() == 0 {
				continue
			}
			v = strconv.FormatInt(f.Int(), 10)
		default:
			v = strings.TrimSpace(fmt.Sprintf("%v", f.Interface()))
		}

		if v != "" {
			q[key] = v
		}
	}
	return q
}
