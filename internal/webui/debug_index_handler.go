package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"routekit.transitlab.org/internal/appconf"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		slog.Error("failed to parse debug template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, debugData{Title: title, Pre: content}); err != nil {
		slog.Error("failed to execute debug template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// debugIndexHandler dumps one of the in-memory feed tables. Disabled in
// production.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	webUI.FeedManager.RLock()
	defer webUI.FeedManager.RUnlock()

	f := webUI.FeedManager.Feed()

	switch dataType {
	case "routes":
		data = f.Routes
		title = "Feed - Routes"
	case "trips":
		data = f.Trips
		title = "Feed - Trips"
	case "stops":
		data = f.Stops
		title = "Feed - Stops"
	case "stop_times":
		data = f.StopTimes
		title = "Feed - Stop Times"
	case "shapes":
		data = f.Shapes
		title = "Feed - Shapes"
	case "services":
		data = f.Calendar.Services
		title = "Feed - Services"
	case "trip_stats":
		data = webUI.TripStats
		title = "Computed - Trip Stats"
	default:
		data = map[string]string{
			"error": "Please use one of the following: routes, trips, stops, stop_times, shapes, services, trip_stats.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
