package charts

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dashboard.covid19.org/internal/aggregate"
	"dashboard.covid19.org/internal/whodata"
)

// DefaultColor is used for histograms that do not belong to a region.
const DefaultColor = "grey"

// Bar is one x value and the sum of the y field over the rows sharing it.
type Bar struct {
	X     string `json:"x"`
	Y     int64  `json:"y"`
	Color string `json:"color,omitempty"`
}

type Histogram struct {
	Title        string        `json:"title"`
	XField       whodata.Field `json:"xField"`
	YField       whodata.Field `json:"yField"`
	Color        string        `json:"color"`
	Horizontal   bool          `json:"horizontal,omitempty"`
	Bars         []Bar         `json:"bars"`
	Caption      *int64        `json:"caption,omitempty"`
	CaptionLabel string        `json:"captionLabel,omitempty"`
}

// Total sums the bar heights.
func (h Histogram) Total() int64 {
	var total int64
	for _, b := range h.Bars {
		total += b.Y
	}
	return total
}

// BuildTimeSeriesHistogram groups rows by the text of xField and sums yField
// in each group. Bars are ordered by ascending x, which for dates is
// chronological.
func BuildTimeSeriesHistogram(cases []whodata.CaseRecord, xField, yField whodata.Field, title string) (Histogram, error) {
	if xField.IsNumeric() {
		return Histogram{}, fmt.Errorf("x field %q must not be numeric", xField)
	}
	if _, err := whodata.ParseField(string(xField)); err != nil {
		return Histogram{}, fmt.Errorf("x field: %w", err)
	}
	if !yField.IsNumeric() {
		return Histogram{}, fmt.Errorf("y field %q is not numeric", yField)
	}

	sums := map[string]int64{}
	for _, r := range cases {
		x, _ := r.Key(xField)
		y, _ := r.Value(yField)
		sums[x] += y
	}

	bars := make([]Bar, 0, len(sums))
	for x, y := range sums {
		bars = append(bars, Bar{X: x, Y: y})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].X < bars[j].X })

	return Histogram{
		Title:  title,
		XField: xField,
		YField: yField,
		Color:  DefaultColor,
		Bars:   bars,
	}, nil
}

// BuildRegionHistogram charts new cases by date for one region, in the
// region's color, captioned with the region total.
func BuildRegionHistogram(agg *aggregate.Aggregator, region whodata.Region) (Histogram, error) {
	h, err := BuildTimeSeriesHistogram(agg.FilterByRegion(region.Code),
		whodata.FieldDateReported, whodata.FieldNewCases, region.Name)
	if err != nil {
		return Histogram{}, err
	}
	total := agg.RegionTotal(region.Code)
	h.Color = region.Color
	h.Caption = &total
	h.CaptionLabel = "Total Cases"
	return h, nil
}

// BuildRegionBreakdown has one horizontal bar per WHO region holding its
// total of new cases.
func BuildRegionBreakdown(agg *aggregate.Aggregator) Histogram {
	totals := agg.RegionTotals()
	bars := make([]Bar, 0, len(totals))
	for _, rt := range totals {
		bars = append(bars, Bar{X: rt.Region.Name, Y: rt.Total, Color: rt.Region.Color})
	}
	return Histogram{
		Title:      "Situation by WHO Region",
		XField:     whodata.FieldWHORegion,
		YField:     whodata.FieldNewCases,
		Color:      DefaultColor,
		Horizontal: true,
		Bars:       bars,
	}
}

// FormatCount writes n with thousands separators, e.g. 776,798,873.
func FormatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
