package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/models"
	"dashboard.covid19.org/internal/whodata"
)

// invalidAPIKeyResponse sends a 401 Unauthorized response for a missing or
// wrong admin key
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.errorResponse(w, r, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.logger(), "request failed", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

// badGatewayResponse reports that the WHO sources could not be fetched.
func (api *RestAPI) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.logger(), "upstream fetch failed", err,
		slog.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusBadGateway, "could not fetch WHO data")
}

// dataErrorResponse picks the status for an error returned by the dashboard
// service.
func (api *RestAPI) dataErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var fetchErr *whodata.FetchError
	switch {
	case errors.As(err, &fetchErr):
		api.badGatewayResponse(w, r, err)
	case errors.Is(err, dashboard.ErrUnknownRegion):
		api.sendNotFound(w, r)
	default:
		api.serverErrorResponse(w, r, err)
	}
}

func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, code int, text string) {
	response := models.NewResponse(code, nil, text)

	setJSONResponseType(&w)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.logger(), "failed to encode error response", err,
			slog.Int("status", code))
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.LogError(api.logger(), "failed to encode validation error response", err)
	}
}

func (api *RestAPI) logger() *slog.Logger {
	if api.Application == nil || api.Logger == nil {
		return slog.Default()
	}
	return api.Logger
}
