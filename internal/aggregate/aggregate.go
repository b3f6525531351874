// Package aggregate derives the summary figures and per-region subsets shown
// on the dashboard. Every result is a pure function of one whodata.Dataset.
package aggregate

import (
	"time"

	"dashboard.covid19.org/internal/whodata"
)

// Summary holds the headline figures. Values are raw counts; formatting is
// left to the page.
type Summary struct {
	NewCasesLast24h        int64 `json:"newCasesLast24h"`
	CumulativeCases        int64 `json:"cumulativeCases"`
	CumulativeDeaths       int64 `json:"cumulativeDeaths"`
	CumulativeVaccineDoses int64 `json:"cumulativeVaccineDoses"`
}

// RegionTotal is the sum of new cases reported in one WHO region.
type RegionTotal struct {
	Region whodata.Region `json:"region"`
	Total  int64          `json:"total"`
}

type Aggregator struct {
	data *whodata.Dataset
}

// New wraps a dataset. A nil dataset behaves as an empty one.
func New(data *whodata.Dataset) *Aggregator {
	if data == nil {
		data = &whodata.Dataset{}
	}
	return &Aggregator{data: data}
}

// Dataset returns the wrapped dataset.
func (a *Aggregator) Dataset() *whodata.Dataset {
	return a.data
}

// GlobalSummary reads the headline counts from the first row of the latest
// summary table and sums the vaccination totals, counting missing totals as
// zero.
func (a *Aggregator) GlobalSummary() (Summary, error) {
	if len(a.data.Latest) == 0 {
		return Summary{}, &whodata.EmptyDatasetError{Source: whodata.SourceSummary}
	}
	if len(a.data.Vaccinations) == 0 {
		return Summary{}, &whodata.EmptyDatasetError{Source: whodata.SourceVaccinations}
	}

	global := a.data.Latest[0]
	summary := Summary{
		NewCasesLast24h:  global.CasesLast24h,
		CumulativeCases:  global.CumulativeCases,
		CumulativeDeaths: global.CumulativeDeaths,
	}
	for _, v := range a.data.Vaccinations {
		summary.CumulativeVaccineDoses += v.TotalVaccinations.ValueOrZero()
	}
	return summary, nil
}

// RegionTotal sums new cases over the rows of one region. An unknown code or
// a region without rows yields zero.
func (a *Aggregator) RegionTotal(code string) int64 {
	var total int64
	for _, r := range a.data.Cases {
		if r.WHORegion == code {
			total += r.NewCases
		}
	}
	return total
}

// RegionTotals returns the total for each WHO region, ordered by code.
func (a *Aggregator) RegionTotals() []RegionTotal {
	sums := make(map[string]int64, len(whodata.Regions))
	for _, r := range a.data.Cases {
		sums[r.WHORegion] += r.NewCases
	}

	totals := make([]RegionTotal, 0, len(whodata.Regions))
	for _, region := range whodata.Regions {
		totals = append(totals, RegionTotal{Region: region, Total: sums[region.Code]})
	}
	return totals
}

// FilterByRegion returns the rows of one region in load order.
func (a *Aggregator) FilterByRegion(code string) []whodata.CaseRecord {
	var rows []whodata.CaseRecord
	for _, r := range a.data.Cases {
		if r.WHORegion == code {
			rows = append(rows, r)
		}
	}
	return rows
}

// LatestReportDate is the newest report date in the case series.
func (a *Aggregator) LatestReportDate() (time.Time, error) {
	var latest time.Time
	for _, r := range a.data.Cases {
		if r.DateReported.After(latest) {
			latest = r.DateReported.Time
		}
	}
	if latest.IsZero() {
		return time.Time{}, &whodata.EmptyDatasetError{Source: whodata.SourceCases}
	}
	return latest, nil
}

// LatestVaccinationDate is the newest update date in the vaccination table.
// Rows without a date are ignored.
func (a *Aggregator) LatestVaccinationDate() (time.Time, error) {
	var latest time.Time
	for _, v := range a.data.Vaccinations {
		if v.DateUpdated.After(latest) {
			latest = v.DateUpdated.Time
		}
	}
	if latest.IsZero() {
		return time.Time{}, &whodata.EmptyDatasetError{Source: whodata.SourceVaccinations}
	}
	return latest, nil
}
