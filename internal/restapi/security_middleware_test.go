package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResponseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("test response"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	secureHandler := securityHeaders(testResponseHandler())

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()
	secureHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test response", rec.Body.String())

	headers := rec.Header()
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", headers.Get("Strict-Transport-Security"))
	assert.Equal(t, "1; mode=block", headers.Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", headers.Get("Referrer-Policy"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none';", headers.Get("Content-Security-Policy"))
	assert.Empty(t, headers.Get("Access-Control-Allow-Origin"), "no CORS headers without Origin")
}

func TestSecurityHeadersWithCORS(t *testing.T) {
	secureHandler := securityHeaders(testResponseHandler())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	secureHandler.ServeHTTP(rec, req)

	headers := rec.Header()
	assert.Equal(t, "*", headers.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", headers.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", headers.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", headers.Get("Access-Control-Max-Age"))
}

func TestSecurityHeadersOPTIONSRequest(t *testing.T) {
	called := false
	secureHandler := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/api/reload", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	secureHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called, "preflight requests stop at the middleware")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithSecurityHeaders(t *testing.T) {
	api := createTestApi(t)

	rec := httptest.NewRecorder()
	api.WithSecurityHeaders(testResponseHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
