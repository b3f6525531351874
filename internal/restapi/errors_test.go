package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.covid19.org/internal/app"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/models"
	"dashboard.covid19.org/internal/whodata"
)

func TestServerErrorResponse(t *testing.T) {
	api := &RestAPI{Application: &app.Application{}}

	r := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()
	api.serverErrorResponse(rr, r, errors.New("test server error"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, http.StatusInternalServerError, response.Code)
	assert.Equal(t, "internal server error", response.Text)
	assert.NotZero(t, response.CurrentTime)
	assert.NotContains(t, rr.Body.String(), "test server error", "error details stay in the log")
}

func TestDataErrorResponse(t *testing.T) {
	api := &RestAPI{Application: &app.Application{}}

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"fetch failure", &whodata.FetchError{Source: whodata.SourceCases, Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"wrapped fetch failure", fmt.Errorf("reload: %w", &whodata.FetchError{Source: whodata.SourceSummary, Err: errors.New("timeout")}), http.StatusBadGateway},
		{"unknown region", fmt.Errorf("%w: %q", dashboard.ErrUnknownRegion, "OTHER"), http.StatusNotFound},
		{"empty dataset", &whodata.EmptyDatasetError{Source: whodata.SourceSummary}, http.StatusInternalServerError},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			api.dataErrorResponse(rr, httptest.NewRequest("GET", "/api/summary.json", nil), tc.err)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestValidationErrorResponse(t *testing.T) {
	api := &RestAPI{Application: &app.Application{}}

	rr := httptest.NewRecorder()
	api.validationErrorResponse(rr, httptest.NewRequest("GET", "/", nil), map[string][]string{
		"width": {"must be between 100 and 4000"},
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"fieldErrors":{"width":["must be between 100 and 4000"]}}`, rr.Body.String())
}
