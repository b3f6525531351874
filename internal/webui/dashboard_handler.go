package webui

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"dashboard.covid19.org/internal/charts"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/models"
	"dashboard.covid19.org/internal/whodata"
)

//go:embed dashboard.html debug_index.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "dashboard.html"))

// The page loads plotly and its map topology from the plotly CDN.
const dashboardCSP = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdn.plot.ly; " +
	"connect-src 'self' https://cdn.plot.ly; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: blob:; " +
	"frame-ancestors 'none';"

type regionPanel struct {
	ID     string
	Region whodata.Region
	Total  string
}

type dashboardPage struct {
	Error    string
	Selected dashboard.Choice
	Metrics  []models.MetricModel
	Summary  models.SummaryModel
	Panels   []regionPanel
	Figures  map[string]charts.Figure
}

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	choice := dashboard.DefaultChoice()
	if slug := r.URL.Query().Get("metric"); slug != "" {
		if c, ok := dashboard.LookupChoice(slug); ok {
			choice = c
		} else {
			webUI.logger().Debug("unknown metric requested, showing default",
				slog.String("metric", slug))
		}
	}

	page, err := webUI.buildDashboardPage(choice)
	status := http.StatusOK
	if err != nil {
		logging.LogError(webUI.logger(), "failed to build dashboard page", err)
		status = http.StatusInternalServerError
		page = dashboardPage{Selected: choice, Metrics: models.NewMetricModels(), Error: pageError(err)}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", dashboardCSP)
	w.WriteHeader(status)
	if err := dashboardTemplate.Execute(w, page); err != nil {
		logging.LogError(webUI.logger(), "failed to render dashboard page", err)
	}
}

func pageError(err error) string {
	var emptyErr *whodata.EmptyDatasetError
	if errors.As(err, &emptyErr) {
		return "The WHO data is not available right now: the " + string(emptyErr.Source) + " table is empty."
	}
	return "The dashboard could not be built from the current data."
}

func (webUI *WebUI) buildDashboardPage(choice dashboard.Choice) (dashboardPage, error) {
	svc := webUI.Dashboard

	overview, err := svc.Overview()
	if err != nil {
		return dashboardPage{}, err
	}
	choropleth, err := svc.Choropleth(choice)
	if err != nil {
		return dashboardPage{}, err
	}
	globalCases, err := svc.GlobalHistogram(whodata.FieldNewCases)
	if err != nil {
		return dashboardPage{}, err
	}
	globalDeaths, err := svc.GlobalHistogram(whodata.FieldNewDeaths)
	if err != nil {
		return dashboardPage{}, err
	}
	breakdown, err := svc.RegionBreakdown()
	if err != nil {
		return dashboardPage{}, err
	}
	byRegion, err := svc.RegionTimeSeries(whodata.FieldNewCases)
	if err != nil {
		return dashboardPage{}, err
	}

	figures := map[string]charts.Figure{
		"map":           choropleth.Figure(),
		"global-cases":  globalCases.Figure(),
		"global-deaths": globalDeaths.Figure(),
		"breakdown":     breakdown.Figure(),
		"by-region":     byRegion.Figure(),
	}

	regions := dashboard.PanelRegions()
	panels := make([]regionPanel, 0, len(regions))
	for _, region := range regions {
		h, err := svc.RegionHistogram(region.Code)
		if err != nil {
			return dashboardPage{}, err
		}
		id := "region-" + region.Code
		figures[id] = h.Figure()

		var total int64
		if h.Caption != nil {
			total = *h.Caption
		}
		panels = append(panels, regionPanel{ID: id, Region: region, Total: charts.FormatCount(total)})
	}

	return dashboardPage{
		Selected: choice,
		Metrics:  models.NewMetricModels(),
		Summary:  models.NewSummaryModel(overview),
		Panels:   panels,
		Figures:  figures,
	}, nil
}
