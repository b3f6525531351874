package webui

import (
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var debugDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   debugDumper.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	snapshot := webUI.Dashboard.Snapshot()

	switch dataType {
	case "cases":
		data = snapshot.Cases
		title = "WHO - Daily Cases"
	case "summary":
		data = snapshot.Latest
		title = "WHO - Latest Summary"
	case "vaccinations":
		data = snapshot.Vaccinations
		title = "WHO - Vaccinations"
	case "cache":
		data = webUI.Dashboard.CacheStats()
		title = "Memo Cache"
	case "config":
		data = struct {
			Env        string
			Port       int
			RateLimit  int
			CacheSize  int
			Version    uint64
			DataConfig interface{}
		}{
			Env:        webUI.Config.Env.String(),
			Port:       webUI.Config.Port,
			RateLimit:  webUI.Config.RateLimit,
			CacheSize:  webUI.Config.CacheSize,
			Version:    snapshot.Version,
			DataConfig: webUI.DataConfig,
		}
		title = "Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: cases, summary, vaccinations, cache, config.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
