package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"dashboard.covid19.org/internal/appconf"
)

func newTestApplication() *Application {
	return &Application{
		Config: appconf.Config{
			AdminKeys: []string{"key", "other"},
		},
	}
}

func TestBlankKeyIsInvalid(t *testing.T) {
	assert.True(t, newTestApplication().IsInvalidAdminKey(""))
}

func TestConfiguredKeysAreValid(t *testing.T) {
	app := newTestApplication()
	assert.False(t, app.IsInvalidAdminKey("key"))
	assert.False(t, app.IsInvalidAdminKey("other"))
	assert.True(t, app.IsInvalidAdminKey("KEY"))
}

func TestNoConfiguredKeysRejectsEverything(t *testing.T) {
	app := &Application{}
	assert.True(t, app.IsInvalidAdminKey("key"))
}

func TestRequestHasInvalidAdminKey(t *testing.T) {
	app := newTestApplication()

	req := httptest.NewRequest("POST", "/api/reload?key=key", nil)
	assert.False(t, app.RequestHasInvalidAdminKey(req))

	req = httptest.NewRequest("POST", "/api/reload", nil)
	req.Header.Set("Authorization", "Bearer other")
	assert.False(t, app.RequestHasInvalidAdminKey(req))

	req = httptest.NewRequest("POST", "/api/reload", nil)
	assert.True(t, app.RequestHasInvalidAdminKey(req))

	req = httptest.NewRequest("POST", "/api/reload?key=wrong", nil)
	assert.True(t, app.RequestHasInvalidAdminKey(req))
}
