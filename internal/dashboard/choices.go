package dashboard

import "dashboard.covid19.org/internal/whodata"

// Choice is one entry of the map's metric selector.
type Choice struct {
	Slug   string        `json:"slug"`
	Label  string        `json:"label"`
	Metric whodata.Field `json:"metric"`
	Hover  whodata.Field `json:"hover"`
}

// Choices is the selector in display order. The first entry is shown when no
// metric is requested.
var Choices = []Choice{
	{Slug: "cumulative-cases", Label: "Cumulative Cases", Metric: whodata.FieldCumulativeCases, Hover: whodata.FieldCumulativeDeaths},
	{Slug: "new-cases", Label: "New Cases", Metric: whodata.FieldNewCases, Hover: whodata.FieldNewDeaths},
	{Slug: "new-deaths", Label: "New Deaths", Metric: whodata.FieldNewDeaths, Hover: whodata.FieldNewCases},
	{Slug: "cumulative-deaths", Label: "Cumulative Deaths", Metric: whodata.FieldCumulativeDeaths, Hover: whodata.FieldCumulativeCases},
}

func DefaultChoice() Choice {
	return Choices[0]
}

// LookupChoice accepts a slug or, for API clients, the metric's field name.
func LookupChoice(s string) (Choice, bool) {
	for _, c := range Choices {
		if c.Slug == s || string(c.Metric) == s {
			return c, true
		}
	}
	return Choice{}, false
}

// PanelOrder is the order the region panels appear on the page.
var PanelOrder = []string{"EURO", "WPRO", "EMRO", "AMRO", "SEARO", "AFRO"}

// PanelRegions resolves PanelOrder to regions.
func PanelRegions() []whodata.Region {
	regions := make([]whodata.Region, 0, len(PanelOrder))
	for _, code := range PanelOrder {
		if r, ok := whodata.LookupRegion(code); ok {
			regions = append(regions, r)
		}
	}
	return regions
}
