// Package webui serves the developer-facing debug pages. Nothing here is
// part of the public API surface.
package webui

import (
	"net/http"

	"routekit.transitlab.org/internal/app"
)

// WebUI wires the application dependencies into the debug handlers.
type WebUI struct {
	*app.Application
}

func NewWebUI(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

// SetWebUIRoutes registers the debug pages on mux.
func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
}
