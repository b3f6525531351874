// Package charts turns case records into chart specifications: plain values
// that the page renders with plotly.js, or that RenderHistogramSVG draws on
// the server.
package charts

import (
	"fmt"
	"sort"

	"dashboard.covid19.org/internal/countrycode"
	"dashboard.covid19.org/internal/whodata"
)

// ColorStop places a color at a relative position between 0 and 1.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}

// ColorScale maps the closed range [Min, Max] onto Stops.
type ColorScale struct {
	Name  string      `json:"name"`
	Min   int64       `json:"min"`
	Max   int64       `json:"max"`
	Stops []ColorStop `json:"stops"`
}

var viridisReversed = []string{
	"#fde725", "#b5de2b", "#6ece58", "#35b779", "#1f9e89",
	"#26828e", "#31688e", "#3e4989", "#482878", "#440154",
}

// ViridisReversed returns the scale used for the map, light for small values
// and dark for large ones.
func ViridisReversed(lo, hi int64) ColorScale {
	stops := make([]ColorStop, len(viridisReversed))
	last := float64(len(viridisReversed) - 1)
	for i, c := range viridisReversed {
		stops[i] = ColorStop{Position: float64(i) / last, Color: c}
	}
	return ColorScale{Name: "Viridis_r", Min: lo, Max: hi, Stops: stops}
}

// ChoroplethPoint is one country on one frame of the map.
type ChoroplethPoint struct {
	ISO3    string `json:"iso3"`
	Country string `json:"country"`
	Value   int64  `json:"value"`
	Hover   int64  `json:"hover"`
}

// Frame holds the points reported on one date.
type Frame struct {
	Date   string            `json:"date"`
	Points []ChoroplethPoint `json:"points"`
}

type Choropleth struct {
	Metric      whodata.Field `json:"metric"`
	HoverMetric whodata.Field `json:"hoverMetric"`
	Frames      []Frame       `json:"frames"`
	ColorScale  ColorScale    `json:"colorScale"`
}

// PointCount is the number of points over all frames.
func (c Choropleth) PointCount() int {
	n := 0
	for _, f := range c.Frames {
		n += len(f.Points)
	}
	return n
}

// BuildChoropleth produces one frame per report date, ascending, with one
// point per country. Rows whose country code has no ISO3 mapping are
// dropped. Rows repeating a country on the same date are summed. A nil
// mapper uses countrycode.ToISO3.
func BuildChoropleth(cases []whodata.CaseRecord, metric, hover whodata.Field, mapper countrycode.Mapper) (Choropleth, error) {
	if !metric.IsNumeric() {
		return Choropleth{}, fmt.Errorf("metric %q is not numeric", metric)
	}
	if !hover.IsNumeric() {
		return Choropleth{}, fmt.Errorf("hover metric %q is not numeric", hover)
	}
	if mapper == nil {
		mapper = countrycode.ToISO3
	}

	type slot struct {
		frame int
		point int
	}
	var frames []Frame
	frameIndex := map[string]int{}
	pointIndex := map[[2]string]slot{}

	for _, r := range cases {
		iso3, ok := mapper(r.CountryCode)
		if !ok {
			continue
		}
		value, _ := r.Value(metric)
		hoverValue, _ := r.Value(hover)
		date := r.DateReported.String()

		if s, ok := pointIndex[[2]string{date, iso3}]; ok {
			p := &frames[s.frame].Points[s.point]
			p.Value += value
			p.Hover += hoverValue
			continue
		}

		fi, ok := frameIndex[date]
		if !ok {
			fi = len(frames)
			frameIndex[date] = fi
			frames = append(frames, Frame{Date: date})
		}
		frames[fi].Points = append(frames[fi].Points, ChoroplethPoint{
			ISO3:    iso3,
			Country: r.Country,
			Value:   value,
			Hover:   hoverValue,
		})
		pointIndex[[2]string{date, iso3}] = slot{frame: fi, point: len(frames[fi].Points) - 1}
	}

	sort.SliceStable(frames, func(i, j int) bool { return frames[i].Date < frames[j].Date })

	var lo, hi int64
	first := true
	for _, f := range frames {
		for _, p := range f.Points {
			if first || p.Value < lo {
				lo = p.Value
			}
			if first || p.Value > hi {
				hi = p.Value
			}
			first = false
		}
	}

	return Choropleth{
		Metric:      metric,
		HoverMetric: hover,
		Frames:      frames,
		ColorScale:  ViridisReversed(lo, hi),
	}, nil
}
