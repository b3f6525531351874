package restapi

import (
	"net/http"

	"dashboard.covid19.org/internal/models"
)

// reloadHandler fetches the WHO sources again. The previous dataset stays
// in service when the fetch fails.
func (api *RestAPI) reloadHandler(w http.ResponseWriter, r *http.Request) {
	data, err := api.Dashboard.Reload(r.Context())
	if err != nil {
		api.dataErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewReloadModel(data), models.NewEmptyReferences()))
}
