package whodata

import "fmt"

// The *Row types mirror the CSV headers exactly. Every cell is read as text
// and converted afterwards so that empty or float-formatted numbers in the
// WHO exports do not fail the decoder.

type caseRow struct {
	DateReported     string `csv:"Date_reported"`
	CountryCode      string `csv:"Country_code"`
	Country          string `csv:"Country"`
	WHORegion        string `csv:"WHO_region"`
	NewCases         string `csv:"New_cases"`
	CumulativeCases  string `csv:"Cumulative_cases"`
	NewDeaths        string `csv:"New_deaths"`
	CumulativeDeaths string `csv:"Cumulative_deaths"`
}

func (r caseRow) record() (CaseRecord, error) {
	date, err := ParseDate(r.DateReported)
	if err != nil {
		return CaseRecord{}, fmt.Errorf("column Date_reported: %w", err)
	}
	rec := CaseRecord{
		DateReported: date,
		CountryCode:  r.CountryCode,
		Country:      r.Country,
		WHORegion:    r.WHORegion,
	}
	cells := []struct {
		name string
		raw  string
		dst  *int64
	}{
		{"New_cases", r.NewCases, &rec.NewCases},
		{"Cumulative_cases", r.CumulativeCases, &rec.CumulativeCases},
		{"New_deaths", r.NewDeaths, &rec.NewDeaths},
		{"Cumulative_deaths", r.CumulativeDeaths, &rec.CumulativeDeaths},
	}
	for _, c := range cells {
		n, _, err := parseCount(c.raw)
		if err != nil {
			return CaseRecord{}, fmt.Errorf("column %s: %w", c.name, err)
		}
		*c.dst = n
	}
	return rec, nil
}

type latestRow struct {
	Name             string `csv:"Name"`
	WHORegion        string `csv:"WHO Region"`
	CumulativeCases  string `csv:"Cases - cumulative total"`
	CasesLast24h     string `csv:"Cases - newly reported in last 24 hours"`
	CumulativeDeaths string `csv:"Deaths - cumulative total"`
}

func (r latestRow) record() (LatestSummaryRecord, error) {
	rec := LatestSummaryRecord{Name: r.Name, WHORegion: r.WHORegion}
	var err error
	if rec.CumulativeCases, _, err = parseCount(r.CumulativeCases); err != nil {
		return rec, fmt.Errorf("column Cases - cumulative total: %w", err)
	}
	if rec.CasesLast24h, _, err = parseCount(r.CasesLast24h); err != nil {
		return rec, fmt.Errorf("column Cases - newly reported in last 24 hours: %w", err)
	}
	if rec.CumulativeDeaths, _, err = parseCount(r.CumulativeDeaths); err != nil {
		return rec, fmt.Errorf("column Deaths - cumulative total: %w", err)
	}
	return rec, nil
}

type vaccinationRow struct {
	Country           string `csv:"COUNTRY"`
	ISO3              string `csv:"ISO3"`
	WHORegion         string `csv:"WHO_REGION"`
	DateUpdated       string `csv:"DATE_UPDATED"`
	TotalVaccinations string `csv:"TOTAL_VACCINATIONS"`
}

func (r vaccinationRow) record() (VaccinationRecord, error) {
	rec := VaccinationRecord{Country: r.Country, ISO3: r.ISO3, WHORegion: r.WHORegion}
	if r.DateUpdated != "" {
		date, err := ParseDate(r.DateUpdated)
		if err != nil {
			return rec, fmt.Errorf("column DATE_UPDATED: %w", err)
		}
		rec.DateUpdated = date
	}
	n, ok, err := parseCount(r.TotalVaccinations)
	if err != nil {
		return rec, fmt.Errorf("column TOTAL_VACCINATIONS: %w", err)
	}
	rec.TotalVaccinations = OptionalCount{Value: n, Valid: ok}
	return rec, nil
}
