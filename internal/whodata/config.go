package whodata

import (
	"strings"
	"time"
)

const (
	DefaultCasesURL        = "https://covid19.who.int/WHO-COVID-19-global-data.csv"
	DefaultSummaryURL      = "https://covid19.who.int/WHO-COVID-19-global-table-data.csv"
	DefaultVaccinationsURL = "https://covid19.who.int/who-data/vaccination-data.csv"

	DefaultFetchTimeout = 60 * time.Second
)

// Source names one of the three WHO exports.
type Source string

const (
	SourceCases        Source = "cases"
	SourceSummary      Source = "summary"
	SourceVaccinations Source = "vaccinations"
)

// Config holds the locations of the three sources. A location that is not an
// http(s) URL is read from the local filesystem.
type Config struct {
	CasesURL        string
	SummaryURL      string
	VaccinationsURL string
	FetchTimeout    time.Duration
	Verbose         bool
}

// DefaultConfig points at the public WHO endpoints.
func DefaultConfig() Config {
	return Config{
		CasesURL:        DefaultCasesURL,
		SummaryURL:      DefaultSummaryURL,
		VaccinationsURL: DefaultVaccinationsURL,
		FetchTimeout:    DefaultFetchTimeout,
	}
}

func (config Config) location(source Source) string {
	switch source {
	case SourceCases:
		return config.CasesURL
	case SourceSummary:
		return config.SummaryURL
	case SourceVaccinations:
		return config.VaccinationsURL
	}
	return ""
}

func isLocalFile(location string) bool {
	return !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://")
}
