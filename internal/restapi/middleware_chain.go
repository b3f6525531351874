package restapi

import (
	"log/slog"
	"net/http"
)

// WithMiddleware wraps the whole router. Requests are logged with their
// final status, after security headers and compression have been applied.
func WithMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	handler = CompressionMiddleware(handler)
	handler = SecurityHeaders(handler)
	return NewRequestLoggingMiddleware(logger)(handler)
}
