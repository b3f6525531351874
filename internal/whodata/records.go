package whodata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date format used by all WHO CSV exports and by the API.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "2006/01/02", time.RFC3339, "1/2/2006"}

// OptionalCount is an integer cell that remembers whether a value was present.
type OptionalCount struct {
	Value int64
	Valid bool
}

// ValueOrZero treats a missing cell as zero.
func (c OptionalCount) ValueOrZero() int64 {
	if !c.Valid {
		return 0
	}
	return c.Value
}

func (c OptionalCount) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(c.Value, 10)), nil
}

func parseCount(s string) (int64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("invalid count %q", s)
	}
	return int64(math.Round(f)), true, nil
}

// Date is a calendar date cell. An empty cell yields the zero Date.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in any of the layouts seen in WHO exports.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// CaseRecord is one row of the daily case/death series.
type CaseRecord struct {
	DateReported     Date   `json:"dateReported"`
	CountryCode      string `json:"countryCode"`
	Country          string `json:"country"`
	WHORegion        string `json:"whoRegion"`
	NewCases         int64  `json:"newCases"`
	CumulativeCases  int64  `json:"cumulativeCases"`
	NewDeaths        int64  `json:"newDeaths"`
	CumulativeDeaths int64  `json:"cumulativeDeaths"`
}

// LatestSummaryRecord is one row of the latest-day table. The first row is
// the global total.
type LatestSummaryRecord struct {
	Name             string `json:"name"`
	WHORegion        string `json:"whoRegion"`
	CumulativeCases  int64  `json:"cumulativeCases"`
	CasesLast24h     int64  `json:"casesLast24h"`
	CumulativeDeaths int64  `json:"cumulativeDeaths"`
}

// VaccinationRecord is one row of the vaccination table.
type VaccinationRecord struct {
	Country           string        `json:"country"`
	ISO3              string        `json:"iso3"`
	WHORegion         string        `json:"whoRegion"`
	DateUpdated       Date          `json:"dateUpdated"`
	TotalVaccinations OptionalCount `json:"totalVaccinations"`
}

// Dataset is one complete load of the three sources. It is never mutated
// after Load returns.
type Dataset struct {
	Cases        []CaseRecord
	Latest       []LatestSummaryRecord
	Vaccinations []VaccinationRecord

	Version  uint64
	LoadedAt time.Time
}
