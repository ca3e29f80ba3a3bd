// Package market looks up aggregate job-market figures for a job title.
package market

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/fallback"
	"github.com/spigell/career-assistant/internal/logger"
)

const (
	// DefaultLocation is the country code used when the caller does not pick one.
	DefaultLocation = "us"
	// DefaultTimeout bounds a single market lookup.
	DefaultTimeout = 15 * time.Second

	// DataUnavailable is shown in place of figures a fallback snapshot cannot provide.
	DataUnavailable = "Data not available"
)

// ErrNotConfigured is returned by providers that lack credentials.
var ErrNotConfigured = errors.New("market data provider is not configured")

// Provider answers job-market queries.
type Provider interface {
	LookupJobs(ctx context.Context, title, location string) (*Snapshot, error)
}

// Snapshot aggregates the postings found for a title.
type Snapshot struct {
	TotalJobs     int       `json:"total_jobs,omitempty"`
	AverageSalary int       `json:"average_salary,omitempty"`
	Locations     []string  `json:"job_locations,omitempty"`
	TopCompanies  []string  `json:"top_companies,omitempty"`
	SampleJobs    []Listing `json:"sample_jobs,omitempty"`
	MarketDemand  string    `json:"market_demand,omitempty"`
	SalaryRange   string    `json:"salary_range,omitempty"`
}

// Listing is a single sample posting.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
}

// Fallback is the documented placeholder used when no live data is available.
func Fallback() Snapshot {
	return Snapshot{
		MarketDemand: "High demand expected",
		SalaryRange:  "$50,000 - $120,000 (estimated)",
	}
}

// Lookup performs a single bounded call to p. It never fails: a missing provider,
// an error or a timeout all produce the fallback snapshot marked as degraded.
func Lookup(ctx context.Context, p Provider, title, location string, timeout time.Duration, log *zap.Logger) fallback.Result[Snapshot] {
	log = logger.WithFields(log, zap.String("job_title", title))

	if p == nil {
		log.Debug("market lookup skipped", logger.DegradedFields(ErrNotConfigured.Error())...)
		return fallback.Degrade(Fallback(), ErrNotConfigured.Error())
	}

	if location == "" {
		location = DefaultLocation
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snapshot, err := p.LookupJobs(ctx, title, location)
	if err != nil || snapshot == nil {
		if err == nil {
			err = errors.New("market data provider returned no data")
		}
		log.Warn("market lookup failed, using fallback data", append(logger.DegradedFields(err.Error()), zap.Error(err))...)
		return fallback.Degrade(Fallback(), err.Error())
	}

	log.Debug("market lookup completed",
		zap.Int("total_jobs", snapshot.TotalJobs),
		zap.Int("average_salary", snapshot.AverageSalary),
	)

	return fallback.Live(*snapshot)
}
