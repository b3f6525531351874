package whodata

import "fmt"

// Field names a column of the daily case/death series, using the CSV header
// spelling.
type Field string

const (
	FieldDateReported     Field = "Date_reported"
	FieldCountryCode      Field = "Country_code"
	FieldCountry          Field = "Country"
	FieldWHORegion        Field = "WHO_region"
	FieldNewCases         Field = "New_cases"
	FieldCumulativeCases  Field = "Cumulative_cases"
	FieldNewDeaths        Field = "New_deaths"
	FieldCumulativeDeaths Field = "Cumulative_deaths"
)

// NumericFields lists the fields that can be summed or mapped to a color.
var NumericFields = []Field{FieldNewCases, FieldCumulativeCases, FieldNewDeaths, FieldCumulativeDeaths}

// ParseField accepts a header name such as "New_cases".
func ParseField(s string) (Field, error) {
	f := Field(s)
	switch f {
	case FieldDateReported, FieldCountryCode, FieldCountry, FieldWHORegion,
		FieldNewCases, FieldCumulativeCases, FieldNewDeaths, FieldCumulativeDeaths:
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// IsNumeric reports whether f holds a count.
func (f Field) IsNumeric() bool {
	for _, n := range NumericFields {
		if f == n {
			return true
		}
	}
	return false
}

// Value returns the count held in a numeric field.
func (r CaseRecord) Value(f Field) (int64, bool) {
	switch f {
	case FieldNewCases:
		return r.NewCases, true
	case FieldCumulativeCases:
		return r.CumulativeCases, true
	case FieldNewDeaths:
		return r.NewDeaths, true
	case FieldCumulativeDeaths:
		return r.CumulativeDeaths, true
	}
	return 0, false
}

// Key returns the text of a non-numeric field, suitable for grouping. Dates
// use DateLayout so that keys sort chronologically.
func (r CaseRecord) Key(f Field) (string, bool) {
	switch f {
	case FieldDateReported:
		return r.DateReported.String(), true
	case FieldCountryCode:
		return r.CountryCode, true
	case FieldCountry:
		return r.Country, true
	case FieldWHORegion:
		return r.WHORegion, true
	}
	return "", false
}
