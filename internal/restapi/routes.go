package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAdminKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAdminKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	get := func(path string, h handlerFunc) {
		router.Handler(http.MethodGet, path, api.WithRateLimit(http.HandlerFunc(h)))
	}

	get("/api/status.json", api.statusHandler)
	get("/api/summary.json", api.summaryHandler)
	get("/api/metrics.json", api.metricsHandler)
	get("/api/regions.json", api.regionsHandler)
	get("/api/regions/:code", api.regionHandler)
	get("/api/breakdown.json", api.breakdownHandler)
	get("/api/choropleth/:metric", api.choroplethHandler)
	get("/api/histogram/:field", api.histogramHandler)

	router.Handler(http.MethodPost, "/api/reload", api.WithRateLimit(validateAdminKey(api, api.reloadHandler)))
}
