// Package webui serves the dashboard page, SVG renderings of its charts and,
// outside production, a dump of the loaded data.
package webui

import (
	"log/slog"
	"net/http"

	"dashboard.covid19.org/internal/app"
)

type WebUI struct {
	*app.Application

	// RateLimit wraps every page and chart route. Nil serves them unlimited.
	RateLimit func(http.Handler) http.Handler
}

func (webUI *WebUI) limit(h http.Handler) http.Handler {
	if webUI.RateLimit == nil {
		return h
	}
	return webUI.RateLimit(h)
}

func (webUI *WebUI) logger() *slog.Logger {
	if webUI.Logger == nil {
		return slog.Default()
	}
	return webUI.Logger.With(slog.String("component", "webui"))
}
