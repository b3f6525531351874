package app

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequestHasInvalidAdminKey checks the key given in the "key" query
// parameter or as a bearer token.
func (app *Application) RequestHasInvalidAdminKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	return app.IsInvalidAdminKey(key)
}

func (app *Application) IsInvalidAdminKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.AdminKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
			return false
		}
	}

	return true
}
