package export

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"routekit.transitlab.org/internal/feed"
)

//go:embed map.html
var mapTemplateFS embed.FS

// mapPalette colors route lines; routes cycle through it in export order.
var mapPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#bcf60c", "#008080", "#9a6324",
}

type mapPageData struct {
	Title     string
	CenterLat float64
	CenterLon float64
	GeoJSON   template.JS
}

// MapRoutes renders the requested routes (and optionally their stops) as a
// self-contained Leaflet HTML page. Route validation and geometry errors
// propagate from the GeoJSON export.
func MapRoutes(f *feed.Feed, routeIDs []string, includeStops bool) ([]byte, error) {
	fc, err := RoutesToGeoJSON(f, routeIDs, includeStops)
	if err != nil {
		return nil, err
	}

	color := 0
	for _, feature := range fc.Features {
		if _, isRoute := feature.Properties["route_id"]; isRoute {
			feature.SetProperty("map_color", mapPalette[color%len(mapPalette)])
			color++
		}
	}

	payload, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshaling map payload: %w", err)
	}

	centerLat, centerLon := mapCenter(f)
	tmpl, err := template.ParseFS(mapTemplateFS, "map.html")
	if err != nil {
		return nil, fmt.Errorf("parsing map template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, mapPageData{
		Title:     "Routes",
		CenterLat: centerLat,
		CenterLon: centerLon,
		GeoJSON:   template.JS(payload),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering map: %w", err)
	}
	return buf.Bytes(), nil
}

func mapCenter(f *feed.Feed) (lat, lon float64) {
	var n int
	for i := range f.Stops {
		s := &f.Stops[i]
		if s.Lat == 0 && s.Lon == 0 {
			continue
		}
		lat += s.Lat
		lon += s.Lon
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return lat / float64(n), lon / float64(n)
}
