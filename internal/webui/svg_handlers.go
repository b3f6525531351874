package webui

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"dashboard.covid19.org/internal/charts"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/utils"
	"dashboard.covid19.org/internal/whodata"
)

const (
	defaultChartWidth  = 800
	defaultChartHeight = 400
	minChartSize       = 100
	maxChartSize       = 4000
)

// chartSize reads ?width= and ?height=. It writes a 400 and returns false
// when either is malformed or out of range.
func chartSize(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	width, err := utils.QueryInt(r, "width", defaultChartWidth)
	if err == nil {
		err = utils.ValidateDimension(width, minChartSize, maxChartSize)
	}
	if err != nil {
		http.Error(w, "width: "+err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}

	height, err := utils.QueryInt(r, "height", defaultChartHeight)
	if err == nil {
		err = utils.ValidateDimension(height, minChartSize, maxChartSize)
	}
	if err != nil {
		http.Error(w, "height: "+err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	return width, height, true
}

func (webUI *WebUI) writeSVG(w http.ResponseWriter, r *http.Request, h charts.Histogram, err error) {
	if err != nil {
		webUI.chartError(w, r, err)
		return
	}
	width, height, ok := chartSize(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderHistogramSVG(&buf, h, width, height); err != nil {
		webUI.chartError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := buf.WriteTo(w); err != nil {
		logging.LogError(webUI.logger(), "failed to write chart", err,
			slog.String("path", r.URL.Path))
	}
}

func (webUI *WebUI) chartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, charts.ErrNoData), errors.Is(err, dashboard.ErrUnknownRegion):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logging.LogError(webUI.logger(), "failed to build chart", err,
			slog.String("path", r.URL.Path))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (webUI *WebUI) histogramSVGHandler(w http.ResponseWriter, r *http.Request) {
	field, err := whodata.ParseField(utils.ExtractParam(r, "field"))
	if err == nil && !field.IsNumeric() {
		err = fmt.Errorf("field %s is not numeric", field)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h, err := webUI.Dashboard.GlobalHistogram(field)
	webUI.writeSVG(w, r, h, err)
}

func (webUI *WebUI) regionSVGHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractParam(r, "code")
	if err := utils.ValidateID(code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h, err := webUI.Dashboard.RegionHistogram(code)
	webUI.writeSVG(w, r, h, err)
}

func (webUI *WebUI) breakdownSVGHandler(w http.ResponseWriter, r *http.Request) {
	h, err := webUI.Dashboard.RegionBreakdown()
	webUI.writeSVG(w, r, h, err)
}
