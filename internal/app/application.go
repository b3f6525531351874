package app

import (
	"log/slog"

	"dashboard.covid19.org/internal/appconf"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/whodata"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	DataConfig  whodata.Config
	Logger      *slog.Logger
	DataManager *whodata.Manager
	Dashboard   *dashboard.Service
}
