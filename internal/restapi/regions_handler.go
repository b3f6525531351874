package restapi

import (
	"net/http"

	"dashboard.covid19.org/internal/models"
	"dashboard.covid19.org/internal/utils"
	"dashboard.covid19.org/internal/whodata"
)

func (api *RestAPI) regionsHandler(w http.ResponseWriter, r *http.Request) {
	totals, err := api.Dashboard.RegionTotals()
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	list := make([]models.RegionModel, 0, len(totals))
	regions := make([]whodata.Region, 0, len(totals))
	for _, rt := range totals {
		list = append(list, models.NewRegionModel(rt))
		regions = append(regions, rt.Region)
	}

	api.sendResponse(w, r, models.NewListResponse(list, models.NewRegionReferences(regions...)))
}

func (api *RestAPI) regionHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractParam(r, "code")
	if err := utils.ValidateID(code); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"code": {err.Error()}})
		return
	}

	histogram, err := api.Dashboard.RegionHistogram(code)
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	region, _ := whodata.LookupRegion(code)
	entry := models.ChartModel{Spec: histogram, Figure: histogram.Figure()}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewRegionReferences(region)))
}

func (api *RestAPI) breakdownHandler(w http.ResponseWriter, r *http.Request) {
	histogram, err := api.Dashboard.RegionBreakdown()
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	entry := models.ChartModel{Spec: histogram, Figure: histogram.Figure()}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewRegionReferences(whodata.Regions...)))
}
