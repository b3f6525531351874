// Package dashboard answers the page's and the API's questions about the
// currently loaded dataset, memoizing each answer under the dataset version.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dashboard.covid19.org/internal/aggregate"
	"dashboard.covid19.org/internal/charts"
	"dashboard.covid19.org/internal/countrycode"
	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/memo"
	"dashboard.covid19.org/internal/whodata"
)

// ErrUnknownRegion is returned for a region code that is not a WHO region.
var ErrUnknownRegion = errors.New("unknown WHO region")

// Overview is the summary text shown above the charts.
type Overview struct {
	Summary               aggregate.Summary `json:"summary"`
	LatestReportDate      time.Time         `json:"latestReportDate"`
	LatestVaccinationDate time.Time         `json:"latestVaccinationDate"`
	Version               uint64            `json:"version"`
	LoadedAt              time.Time         `json:"loadedAt"`
}

type Service struct {
	manager *whodata.Manager
	cache   *memo.Cache
	mapper  countrycode.Mapper
	logger  *slog.Logger
}

func NewService(manager *whodata.Manager, cache *memo.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		manager: manager,
		cache:   cache,
		mapper:  countrycode.Table(countrycode.WHOOverrides),
		logger:  logger.With(slog.String("component", "dashboard")),
	}
}

// Snapshot is the dataset every call made now would read.
func (s *Service) Snapshot() *whodata.Dataset {
	return s.manager.Snapshot()
}

func (s *Service) Version() uint64 {
	if data := s.manager.Snapshot(); data != nil {
		return data.Version
	}
	return 0
}

func (s *Service) CacheStats() memo.Stats {
	return s.cache.Stats()
}

func (s *Service) Overview() (Overview, error) {
	data := s.manager.Snapshot()
	return memo.Do(s.cache, memo.Key{Fn: "overview", Version: data.Version}, func() (Overview, error) {
		agg := aggregate.New(data)
		summary, err := agg.GlobalSummary()
		if err != nil {
			return Overview{}, err
		}
		reported, err := agg.LatestReportDate()
		if err != nil {
			return Overview{}, err
		}
		vaccinated, err := agg.LatestVaccinationDate()
		if err != nil {
			return Overview{}, err
		}
		return Overview{
			Summary:               summary,
			LatestReportDate:      reported,
			LatestVaccinationDate: vaccinated,
			Version:               data.Version,
			LoadedAt:              data.LoadedAt,
		}, nil
	})
}

func (s *Service) Choropleth(choice Choice) (charts.Choropleth, error) {
	data := s.manager.Snapshot()
	key := memo.Key{Fn: "choropleth", Version: data.Version, Args: string(choice.Metric) + "/" + string(choice.Hover)}
	return memo.Do(s.cache, key, func() (charts.Choropleth, error) {
		return charts.BuildChoropleth(data.Cases, choice.Metric, choice.Hover, s.mapper)
	})
}

// GlobalHistogram charts yField summed over all countries per report date.
func (s *Service) GlobalHistogram(yField whodata.Field) (charts.Histogram, error) {
	data := s.manager.Snapshot()
	key := memo.Key{Fn: "global_histogram", Version: data.Version, Args: string(yField)}
	return memo.Do(s.cache, key, func() (charts.Histogram, error) {
		return charts.BuildTimeSeriesHistogram(data.Cases, whodata.FieldDateReported, yField, charts.Label(yField))
	})
}

// RegionTimeSeries stacks yField per report date by WHO region.
func (s *Service) RegionTimeSeries(yField whodata.Field) (charts.StackedHistogram, error) {
	data := s.manager.Snapshot()
	key := memo.Key{Fn: "region_time_series", Version: data.Version, Args: string(yField)}
	return memo.Do(s.cache, key, func() (charts.StackedHistogram, error) {
		return charts.BuildRegionTimeSeries(data.Cases, yField, charts.Label(yField)+" by WHO region")
	})
}

func (s *Service) RegionHistogram(code string) (charts.Histogram, error) {
	region, ok := whodata.LookupRegion(code)
	if !ok {
		return charts.Histogram{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	data := s.manager.Snapshot()
	key := memo.Key{Fn: "region_histogram", Version: data.Version, Args: code}
	return memo.Do(s.cache, key, func() (charts.Histogram, error) {
		return charts.BuildRegionHistogram(aggregate.New(data), region)
	})
}

func (s *Service) RegionBreakdown() (charts.Histogram, error) {
	data := s.manager.Snapshot()
	return memo.Do(s.cache, memo.Key{Fn: "region_breakdown", Version: data.Version}, func() (charts.Histogram, error) {
		return charts.BuildRegionBreakdown(aggregate.New(data)), nil
	})
}

func (s *Service) RegionTotals() ([]aggregate.RegionTotal, error) {
	data := s.manager.Snapshot()
	return memo.Do(s.cache, memo.Key{Fn: "region_totals", Version: data.Version}, func() ([]aggregate.RegionTotal, error) {
		return aggregate.New(data).RegionTotals(), nil
	})
}

// Reload replaces the dataset and drops every memoized result. On failure
// the previous dataset and its cached results stay in use.
func (s *Service) Reload(ctx context.Context) (*whodata.Dataset, error) {
	start := time.Now()
	data, err := s.manager.Reload(ctx)
	if err != nil {
		logging.LogError(s.logger, "reload failed, keeping current dataset", err,
			slog.Uint64("version", s.Version()))
		return nil, err
	}
	s.cache.Purge()
	logging.LogOperation(s.logger, "dataset_reloaded",
		slog.Uint64("version", data.Version),
		slog.Duration("duration", time.Since(start)))
	return data, nil
}
