package restapi

import (
	"net/http"
	"time"

	"dashboard.covid19.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.Config.TrustedProxies...),
	}
}

// Shutdown stops the rate limiter's background cleanup.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

// WithRateLimit applies the per-client limiter shared by every route.
func (api *RestAPI) WithRateLimit(h http.Handler) http.Handler {
	if api.rateLimiter == nil {
		return h
	}
	return api.rateLimiter.Handler(h)
}
