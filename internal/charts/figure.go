package charts

import (
	"strings"

	"dashboard.covid19.org/internal/whodata"
)

// Figure is the JSON shape plotly.newPlot accepts.
type Figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
	Frames []FigureFrame    `json:"frames,omitempty"`
}

type FigureFrame struct {
	Name string           `json:"name"`
	Data []map[string]any `json:"data"`
}

// Label turns a field name such as "New_cases" into "New cases".
func Label(f whodata.Field) string {
	return strings.ReplaceAll(string(f), "_", " ")
}

func (s ColorScale) plotly() [][2]any {
	out := make([][2]any, len(s.Stops))
	for i, stop := range s.Stops {
		out[i] = [2]any{stop.Position, stop.Color}
	}
	return out
}

func (c Choropleth) trace(f Frame) map[string]any {
	locations := make([]string, len(f.Points))
	z := make([]int64, len(f.Points))
	text := make([]string, len(f.Points))
	hover := make([]int64, len(f.Points))
	for i, p := range f.Points {
		locations[i] = p.ISO3
		z[i] = p.Value
		text[i] = p.Country
		hover[i] = p.Hover
	}
	return map[string]any{
		"type":       "choropleth",
		"locations":  locations,
		"z":          z,
		"text":       text,
		"customdata": hover,
		"zmin":       c.ColorScale.Min,
		"zmax":       c.ColorScale.Max,
		"colorscale": c.ColorScale.plotly(),
		"colorbar":   map[string]any{"title": map[string]any{"text": Label(c.Metric)}},
		"hovertemplate": "<b>%{text}</b><br>" + Label(c.Metric) + ": %{z:,}<br>" +
			Label(c.HoverMetric) + ": %{customdata:,}<extra>%{location}</extra>",
	}
}

// Figure builds an animated map with a play button and a date slider.
func (c Choropleth) Figure() Figure {
	fig := Figure{
		Data: []map[string]any{},
		Layout: map[string]any{
			"margin": map[string]any{"l": 0, "r": 0, "t": 0, "b": 0},
			"geo": map[string]any{
				"showframe":      false,
				"showcoastlines": false,
				"projection":     map[string]any{"type": "natural earth"},
			},
		},
	}
	if len(c.Frames) == 0 {
		return fig
	}

	steps := make([]map[string]any, 0, len(c.Frames))
	fig.Frames = make([]FigureFrame, 0, len(c.Frames))
	for _, f := range c.Frames {
		fig.Frames = append(fig.Frames, FigureFrame{Name: f.Date, Data: []map[string]any{c.trace(f)}})
		steps = append(steps, map[string]any{
			"label":  f.Date,
			"method": "animate",
			"args": []any{[]string{f.Date}, map[string]any{
				"mode":       "immediate",
				"frame":      map[string]any{"duration": 0, "redraw": true},
				"transition": map[string]any{"duration": 0},
			}},
		})
	}
	fig.Data = append(fig.Data, c.trace(c.Frames[0]))
	fig.Layout["sliders"] = []map[string]any{{
		"active":       0,
		"currentvalue": map[string]any{"prefix": "Date: "},
		"steps":        steps,
	}}
	fig.Layout["updatemenus"] = []map[string]any{{
		"type":       "buttons",
		"showactive": false,
		"buttons": []map[string]any{{
			"label":  "Play",
			"method": "animate",
			"args": []any{nil, map[string]any{
				"frame":       map[string]any{"duration": 200, "redraw": true},
				"fromcurrent": true,
			}},
		}},
	}}
	return fig
}

// Figure draws a date histogram as a filled area and a breakdown as
// horizontal bars.
func (h Histogram) Figure() Figure {
	x := make([]string, len(h.Bars))
	y := make([]int64, len(h.Bars))
	colors := make([]string, len(h.Bars))
	for i, b := range h.Bars {
		x[i], y[i], colors[i] = b.X, b.Y, b.Color
		if colors[i] == "" {
			colors[i] = h.Color
		}
	}

	var trace map[string]any
	if h.Horizontal {
		trace = map[string]any{
			"type":        "bar",
			"orientation": "h",
			"x":           y,
			"y":           x,
			"marker":      map[string]any{"color": colors},
		}
	} else {
		trace = map[string]any{
			"type":      "scatter",
			"mode":      "lines",
			"fill":      "tozeroy",
			"x":         x,
			"y":         y,
			"line":      map[string]any{"color": h.Color},
			"fillcolor": h.Color,
			"name":      Label(h.YField),
		}
	}

	layout := map[string]any{
		"title":         map[string]any{"text": h.Title},
		"plot_bgcolor":  "rgba(0,0,0,0)",
		"paper_bgcolor": "rgba(0,0,0,0)",
		"margin":        map[string]any{"l": 40, "r": 10, "t": 40, "b": 30},
		"xaxis":         map[string]any{"showgrid": false},
		"yaxis":         map[string]any{"showgrid": false},
	}
	if h.Caption != nil {
		layout["annotations"] = []map[string]any{{
			"text":      h.CaptionLabel + ": " + FormatCount(*h.Caption),
			"xref":      "paper",
			"yref":      "paper",
			"x":         0.02,
			"y":         0.95,
			"showarrow": false,
		}}
	}
	return Figure{Data: []map[string]any{trace}, Layout: layout}
}
