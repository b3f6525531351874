package restapi

import (
	"net/http"
	"time"

	"dashboard.covid19.org/internal/models"
)

// statusHandler reports which dataset version is being served and when it
// was loaded.
func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := models.NewStatusModel(api.Dashboard.Snapshot(), api.Dashboard.CacheStats(), time.Now())
	api.sendResponse(w, r, models.NewEntryResponse(status, models.NewEmptyReferences()))
}
