package restapi

import (
	"fmt"
	"net/http"

	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/models"
	"dashboard.covid19.org/internal/utils"
	"dashboard.covid19.org/internal/whodata"
)

func (api *RestAPI) choroplethHandler(w http.ResponseWriter, r *http.Request) {
	metric := utils.ExtractParam(r, "metric")

	choice, ok := dashboard.LookupChoice(metric)
	if !ok {
		api.validationErrorResponse(w, r, map[string][]string{
			"metric": {fmt.Sprintf("unknown metric %q", utils.SanitizeInput(metric))},
		})
		return
	}

	choropleth, err := api.Dashboard.Choropleth(choice)
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	entry := models.ChartModel{Spec: choropleth, Figure: choropleth.Figure()}
	refs := models.NewEmptyReferences()
	refs.Metrics = models.NewMetricModels()
	api.sendResponse(w, r, models.NewEntryResponse(entry, refs))
}

func (api *RestAPI) histogramHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParam(r, "field")

	field, err := whodata.ParseField(raw)
	if err == nil && !field.IsNumeric() {
		err = fmt.Errorf("field %s is not numeric", field)
	}
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"field": {err.Error()}})
		return
	}

	histogram, err := api.Dashboard.GlobalHistogram(field)
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	entry := models.ChartModel{Spec: histogram, Figure: histogram.Figure()}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
