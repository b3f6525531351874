package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParam(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{name: "Basic code", id: "EURO", want: "EURO"},
		{name: "Code with JSON extension", id: "EURO.json", want: "EURO"},
		{name: "Field with SVG extension", id: "New_cases.svg", want: "New_cases"},
		{name: "Multiple dots", id: "new-cases.data.json", want: "new-cases.data"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.Handler(http.MethodGet, "/api/test/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				result = ExtractParam(r, "id")
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/test/"+tc.id, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result)
		})
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/charts/histogram/New_cases?width=640&height=abc", nil)

	width, err := QueryInt(req, "width", 800)
	require.NoError(t, err)
	assert.Equal(t, 640, width)

	_, err = QueryInt(req, "height", 400)
	assert.Error(t, err)

	depth, err := QueryInt(req, "depth", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)
}
