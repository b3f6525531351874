package whodata

// Region is one of the six WHO regions together with the name and color the
// dashboard uses for it.
type Region struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Regions is ordered by code.
var Regions = []Region{
	{Code: "AFRO", Name: "Africa", Color: "royalblue"},
	{Code: "AMRO", Name: "Americas", Color: "goldenrod"},
	{Code: "EMRO", Name: "Eastern Mediterranean", Color: "limegreen"},
	{Code: "EURO", Name: "Europe", Color: "palegreen"},
	{Code: "SEARO", Name: "South-East Asia", Color: "purple"},
	{Code: "WPRO", Name: "Western Pacific", Color: "deeppink"},
}

// LookupRegion finds a region by its exact code.
func LookupRegion(code string) (Region, bool) {
	for _, r := range Regions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}
