package charts

import (
	"fmt"
	"sort"

	"dashboard.covid19.org/internal/whodata"
)

// Series is one colored group of a stacked histogram.
type Series struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Bars  []Bar  `json:"bars"`
}

type StackedHistogram struct {
	Title      string        `json:"title"`
	XField     whodata.Field `json:"xField"`
	YField     whodata.Field `json:"yField"`
	GroupField whodata.Field `json:"groupField"`
	Series     []Series      `json:"series"`
}

// Total sums every bar of every series.
func (s StackedHistogram) Total() int64 {
	var total int64
	for _, series := range s.Series {
		for _, b := range series.Bars {
			total += b.Y
		}
	}
	return total
}

// BuildRegionTimeSeries stacks yField per report date with one series per
// WHO region code found in the rows. Known regions use their dashboard name
// and color; any other code keeps the code as its name and DefaultColor.
// Series are ordered by code, bars by date.
func BuildRegionTimeSeries(cases []whodata.CaseRecord, yField whodata.Field, title string) (StackedHistogram, error) {
	if !yField.IsNumeric() {
		return StackedHistogram{}, fmt.Errorf("y field %q is not numeric", yField)
	}

	groups := map[string]map[string]int64{}
	for _, r := range cases {
		x, _ := r.Key(whodata.FieldDateReported)
		y, _ := r.Value(yField)
		sums, ok := groups[r.WHORegion]
		if !ok {
			sums = map[string]int64{}
			groups[r.WHORegion] = sums
		}
		sums[x] += y
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	series := make([]Series, 0, len(codes))
	for _, code := range codes {
		s := Series{Key: code, Name: code, Color: DefaultColor}
		if region, ok := whodata.LookupRegion(code); ok {
			s.Name, s.Color = region.Name, region.Color
		}
		for x, y := range groups[code] {
			s.Bars = append(s.Bars, Bar{X: x, Y: y})
		}
		sort.Slice(s.Bars, func(i, j int) bool { return s.Bars[i].X < s.Bars[j].X })
		series = append(series, s)
	}

	return StackedHistogram{
		Title:      title,
		XField:     whodata.FieldDateReported,
		YField:     yField,
		GroupField: whodata.FieldWHORegion,
		Series:     series,
	}, nil
}

// Figure draws one bar trace per series in stacked mode.
func (s StackedHistogram) Figure() Figure {
	traces := make([]map[string]any, 0, len(s.Series))
	for _, series := range s.Series {
		x := make([]string, len(series.Bars))
		y := make([]int64, len(series.Bars))
		for i, b := range series.Bars {
			x[i], y[i] = b.X, b.Y
		}
		traces = append(traces, map[string]any{
			"type":   "bar",
			"name":   series.Name,
			"x":      x,
			"y":      y,
			"marker": map[string]any{"color": series.Color},
		})
	}
	return Figure{
		Data: traces,
		Layout: map[string]any{
			"title":         map[string]any{"text": s.Title},
			"barmode":       "stack",
			"bargap":        0.3,
			"bargroupgap":   0.0,
			"plot_bgcolor":  "rgba(0,0,0,0)",
			"paper_bgcolor": "rgba(0,0,0,0)",
			"margin":        map[string]any{"l": 40, "r": 10, "t": 40, "b": 30},
			"xaxis":         map[string]any{"showgrid": false},
			"yaxis":         map[string]any{"showgrid": false},
		},
	}
}
