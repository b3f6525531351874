package charts

import (
	"errors"
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"dashboard.covid19.org/internal/whodata"
)

// ErrNoData is returned when a histogram without bars is rendered.
var ErrNoData = errors.New("charts: no data to render")

var cssColors = map[string]string{
	"grey":      "808080",
	"gray":      "808080",
	"palegreen": "98fb98",
	"deeppink":  "ff1493",
	"limegreen": "32cd32",
	"goldenrod": "daa520",
	"purple":    "800080",
	"royalblue": "4169e1",
}

func colorOf(name string) drawing.Color {
	if hex, ok := cssColors[name]; ok {
		return drawing.ColorFromHex(hex)
	}
	if len(name) == 7 && name[0] == '#' {
		return drawing.ColorFromHex(name[1:])
	}
	return drawing.ColorFromHex(cssColors[DefaultColor])
}

// yRange includes zero and is never empty, which go-chart rejects. WHO
// revisions can make daily counts negative.
func yRange(h Histogram) *chart.ContinuousRange {
	bottom, top := 0.0, 1.0
	for _, b := range h.Bars {
		y := float64(b.Y)
		if y > top {
			top = y
		}
		if y < bottom {
			bottom = y
		}
	}
	return &chart.ContinuousRange{Min: bottom, Max: top}
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatCount(int64(f))
	}
	return ""
}

// RenderHistogramSVG draws h as an SVG image of the given size: an area
// chart when bars are dated, a bar chart otherwise.
func RenderHistogramSVG(w io.Writer, h Histogram, width, height int) error {
	if len(h.Bars) == 0 {
		return ErrNoData
	}
	if h.XField != whodata.FieldDateReported {
		return renderBars(w, h, width, height)
	}

	xs := make([]time.Time, 0, len(h.Bars)+1)
	ys := make([]float64, 0, len(h.Bars)+1)
	for _, b := range h.Bars {
		d, err := whodata.ParseDate(b.X)
		if err != nil {
			return fmt.Errorf("bar %q: %w", b.X, err)
		}
		xs = append(xs, d.Time)
		ys = append(ys, float64(b.Y))
	}
	// go-chart cannot compute a range from a single point.
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	color := colorOf(h.Color)
	graph := chart.Chart{
		Title:  h.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 16, Right: 12, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(whodata.DateLayout),
		},
		YAxis: chart.YAxis{
			Range:          yRange(h),
			ValueFormatter: countFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    Label(h.YField),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					FillColor:   color.WithAlpha(160),
				},
			},
		},
	}
	return graph.Render(chart.SVG, w)
}

func renderBars(w io.Writer, h Histogram, width, height int) error {
	bars := make([]chart.Value, 0, len(h.Bars))
	for _, b := range h.Bars {
		color := h.Color
		if b.Color != "" {
			color = b.Color
		}
		bars = append(bars, chart.Value{
			Label: b.X,
			Value: float64(b.Y),
			Style: chart.Style{
				FillColor:   colorOf(color),
				StrokeColor: colorOf(color),
			},
		})
	}

	graph := chart.BarChart{
		Title:  h.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range:          yRange(h),
			ValueFormatter: countFormatter,
		},
		BarWidth: 40,
		Bars:     bars,
	}
	return graph.Render(chart.SVG, w)
}
