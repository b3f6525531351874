package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dashboard.covid19.org/internal/app"
	"dashboard.covid19.org/internal/restapi"
	"dashboard.covid19.org/internal/webui"
)

// routes builds the complete handler. The returned function releases the
// rate limiter and must be called once the server has stopped.
func routes(application *app.Application) (http.Handler, func()) {
	router := httprouter.New()

	api := restapi.NewRestAPI(application)
	api.SetRoutes(router)

	webUI := &webui.WebUI{Application: application, RateLimit: api.WithRateLimit}
	webUI.SetWebUIRoutes(router)

	return restapi.WithMiddleware(router, application.Logger), api.Shutdown
}
