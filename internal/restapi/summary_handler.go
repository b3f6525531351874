package restapi

import (
	"net/http"

	"dashboard.covid19.org/internal/models"
)

func (api *RestAPI) summaryHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := api.Dashboard.Overview()
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	response := models.NewEntryResponse(models.NewSummaryModel(overview), models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

func (api *RestAPI) metricsHandler(w http.ResponseWriter, r *http.Request) {
	response := models.NewListResponse(models.NewMetricModels(), models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
