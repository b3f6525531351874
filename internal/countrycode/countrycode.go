// Package countrycode maps the two-letter country codes found in the WHO case
// series to the three-letter codes the choropleth map is keyed by.
package countrycode

import (
	"sync"

	"github.com/biter777/countries"
)

// Mapper converts an ISO2 code to ISO3. ok is false when there is no mapping.
type Mapper func(iso2 string) (iso3 string, ok bool)

var alpha3ByAlpha2 = sync.OnceValue(func() map[string]string {
	table := make(map[string]string, 256)
	for _, c := range countries.All() {
		a2, a3 := c.Alpha2(), c.Alpha3()
		if len(a2) != 2 || len(a3) != 3 {
			continue
		}
		table[a2] = a3
	}
	return table
})

// ToISO3 looks up the ISO 3166-1 alpha-3 code for an alpha-2 code. The code
// is matched as given: WHO publishes upper case, so "de" is not found.
func ToISO3(iso2 string) (string, bool) {
	if len(iso2) != 2 {
		return "", false
	}
	iso3, ok := alpha3ByAlpha2()[iso2]
	return iso3, ok
}

// Table returns a Mapper that consults the given overrides before the
// reference table. WHO uses a few codes of its own, such as "XK" for Kosovo.
func Table(overrides map[string]string) Mapper {
	return func(iso2 string) (string, bool) {
		if iso3, ok := overrides[iso2]; ok {
			return iso3, iso3 != ""
		}
		return ToISO3(iso2)
	}
}

// WHOOverrides are the codes that appear in the WHO series but not in
// ISO 3166-1, mapped to the identifiers plotly's world map uses.
var WHOOverrides = map[string]string{
	"XK": "XKX",
}
