package restapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.covid19.org/internal/app"
	"dashboard.covid19.org/internal/appconf"
	"dashboard.covid19.org/internal/dashboard"
	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/memo"
	"dashboard.covid19.org/internal/models"
	"dashboard.covid19.org/internal/whodata"
)

func fixtureConfig(t *testing.T) whodata.Config {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata"))
	require.NoError(t, err)
	return whodata.Config{
		CasesURL:        filepath.Join(dir, "who_cases.csv"),
		SummaryURL:      filepath.Join(dir, "who_summary.csv"),
		VaccinationsURL: filepath.Join(dir, "who_vaccinations.csv"),
		FetchTimeout:    5 * time.Second,
	}
}

func newTestApplication(t *testing.T, manager *whodata.Manager) *app.Application {
	t.Helper()
	cache, err := memo.New(memo.DefaultSize)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &app.Application{
		Config: appconf.Config{
			Env:       appconf.EnvFlagToEnvironment("test"),
			AdminKeys: []string{"TEST"},
		},
		DataConfig:  fixtureConfig(t),
		Logger:      logger,
		DataManager: manager,
		Dashboard:   dashboard.NewService(manager, cache, logger),
	}
}

// createTestApi creates a new restAPI instance with the fixture dataset loaded.
func createTestApi(t *testing.T) *RestAPI {
	manager, err := whodata.InitManager(context.Background(), fixtureConfig(t), nil, nil)
	require.NoError(t, err)

	return &RestAPI{Application: newTestApplication(t, manager)}
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := serveApi(t, api)
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	return resp, decodeResponse(t, resp)
}

func decodeResponse(t *testing.T, resp *http.Response) models.ResponseModel {
	t.Helper()
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)
	return response
}

func TestCompressionMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		largeResponse := strings.Repeat(`{"test": "data"}`, 1000)
		_, _ = w.Write([]byte(largeResponse))
	})

	handler := CompressionMiddleware(testHandler)

	t.Run("compresses when client accepts gzip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		assert.Contains(t, w.Header().Get("Vary"), "Accept-Encoding")

		reader, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		defer logging.SafeCloseWithLogging(reader, slog.Default(), "gzip_reader")

		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat(`{"test": "data"}`, 1000), string(decompressed))
	})

	t.Run("leaves body alone without Accept-Encoding", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, strings.Repeat(`{"test": "data"}`, 1000), w.Body.String())
	})
}

func TestCompressionSkipsSmallResponses(t *testing.T) {
	handler := CompressionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest("GET", "/small", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"ok":true}`, w.Body.String())
}

func TestCompressionConfig(t *testing.T) {
	config := DefaultCompressionConfig()
	assert.Equal(t, 1024, config.MinSize)
	assert.Equal(t, 6, config.Level)

	custom := NewCompressionMiddleware(CompressionConfig{MinSize: 10, Level: 1})
	handler := custom(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), 100))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
