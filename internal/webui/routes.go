package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dashboard.covid19.org/internal/appconf"
)

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	get := func(path string, h http.HandlerFunc) {
		router.Handler(http.MethodGet, path, webUI.limit(h))
	}

	get("/", webUI.dashboardHandler)
	get("/charts/histogram/:field", webUI.histogramSVGHandler)
	get("/charts/regions/:code", webUI.regionSVGHandler)
	get("/charts/breakdown.svg", webUI.breakdownSVGHandler)

	if webUI.Config.Env != appconf.Production {
		get("/debug/", webUI.debugIndexHandler)
	}
}
