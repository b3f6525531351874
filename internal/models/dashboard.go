package models

import (
	"time"

	"dashboard.covid19.org/internal/aggregate"
	"dashboard.covid19.org/internal/charts"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/whodata"
)

// ReadableDateLayout is how dates are written in summary text,
// e.g. "05 January 2020".
const ReadableDateLayout = "02 January 2006"

// SummaryModel is the entry of /api/summary.json.
type SummaryModel struct {
	NewCasesLast24h        int64            `json:"newCasesLast24h"`
	CumulativeCases        int64            `json:"cumulativeCases"`
	CumulativeDeaths       int64            `json:"cumulativeDeaths"`
	CumulativeVaccineDoses int64            `json:"cumulativeVaccineDoses"`
	LatestReportDate       string           `json:"latestReportDate"`
	LatestVaccinationDate  string           `json:"latestVaccinationDate"`
	Formatted              FormattedSummary `json:"formatted"`
	DatasetVersion         uint64           `json:"datasetVersion"`
	LoadedAt               int64            `json:"loadedAt"`
}

// FormattedSummary holds the same figures as display text.
type FormattedSummary struct {
	NewCasesLast24h        string `json:"newCasesLast24h"`
	CumulativeCases        string `json:"cumulativeCases"`
	CumulativeDeaths       string `json:"cumulativeDeaths"`
	CumulativeVaccineDoses string `json:"cumulativeVaccineDoses"`
	LatestReportDate       string `json:"latestReportDate"`
	LatestVaccinationDate  string `json:"latestVaccinationDate"`
}

func NewSummaryModel(o dashboard.Overview) SummaryModel {
	s := o.Summary
	return SummaryModel{
		NewCasesLast24h:        s.NewCasesLast24h,
		CumulativeCases:        s.CumulativeCases,
		CumulativeDeaths:       s.CumulativeDeaths,
		CumulativeVaccineDoses: s.CumulativeVaccineDoses,
		LatestReportDate:       o.LatestReportDate.Format(whodata.DateLayout),
		LatestVaccinationDate:  o.LatestVaccinationDate.Format(whodata.DateLayout),
		Formatted: FormattedSummary{
			NewCasesLast24h:        charts.FormatCount(s.NewCasesLast24h),
			CumulativeCases:        charts.FormatCount(s.CumulativeCases),
			CumulativeDeaths:       charts.FormatCount(s.CumulativeDeaths),
			CumulativeVaccineDoses: charts.FormatCount(s.CumulativeVaccineDoses),
			LatestReportDate:       o.LatestReportDate.Format(ReadableDateLayout),
			LatestVaccinationDate:  o.LatestVaccinationDate.Format(ReadableDateLayout),
		},
		DatasetVersion: o.Version,
		LoadedAt:       o.LoadedAt.UnixMilli(),
	}
}

// RegionModel is one WHO region with its total of new cases.
type RegionModel struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	Total          int64  `json:"total"`
	FormattedTotal string `json:"formattedTotal"`
}

func NewRegionModel(rt aggregate.RegionTotal) RegionModel {
	return RegionModel{
		Code:           rt.Region.Code,
		Name:           rt.Region.Name,
		Color:          rt.Region.Color,
		Total:          rt.Total,
		FormattedTotal: charts.FormatCount(rt.Total),
	}
}

// MetricModel is one entry of the map's metric selector.
type MetricModel struct {
	Slug      string        `json:"slug"`
	Label     string        `json:"label"`
	Metric    whodata.Field `json:"metric"`
	Hover     whodata.Field `json:"hover"`
	IsDefault bool          `json:"isDefault"`
}

// NewMetricModels lists dashboard.Choices in display order.
func NewMetricModels() []MetricModel {
	metrics := make([]MetricModel, 0, len(dashboard.Choices))
	def := dashboard.DefaultChoice()
	for _, c := range dashboard.Choices {
		metrics = append(metrics, MetricModel{
			Slug:      c.Slug,
			Label:     c.Label,
			Metric:    c.Metric,
			Hover:     c.Hover,
			IsDefault: c.Slug == def.Slug,
		})
	}
	return metrics
}

// ChartModel carries a chart specification and its plotly figure.
type ChartModel struct {
	Spec   interface{}   `json:"spec"`
	Figure charts.Figure `json:"figure"`
}

// ReloadModel reports the dataset installed by a reload.
type ReloadModel struct {
	DatasetVersion  uint64 `json:"datasetVersion"`
	LoadedAt        string `json:"loadedAt"`
	CaseRows        int    `json:"caseRows"`
	SummaryRows     int    `json:"summaryRows"`
	VaccinationRows int    `json:"vaccinationRows"`
}

func NewReloadModel(data *whodata.Dataset) ReloadModel {
	return ReloadModel{
		DatasetVersion:  data.Version,
		LoadedAt:        data.LoadedAt.Format(time.RFC3339),
		CaseRows:        len(data.Cases),
		SummaryRows:     len(data.Latest),
		VaccinationRows: len(data.Vaccinations),
	}
}
