package models

import (
	"routekit.transitlab.org/internal/export"
	"routekit.transitlab.org/internal/geom"
)

// GeometryEntry is the JSON view of one route geometry. Geographic
// geometries additionally carry each line encoded with the Google polyline
// algorithm, which web map clients consume directly.
type GeometryEntry struct {
	RouteID      string         `json:"routeId"`
	ShortName    string         `json:"routeShortName,omitempty"`
	DirectionID  *int           `json:"directionId,omitempty"`
	Projected    bool           `json:"projected"`
	UTMZone      int            `json:"utmZone,omitempty"`
	LengthMeters float64        `json:"lengthMeters"`
	Lines        [][]geom.Point `json:"lines"`
	Polylines    []string       `json:"polylines,omitempty"`
}

// NewGeometryEntry converts a route geometry to its JSON view.
func NewGeometryEntry(g geom.RouteGeometry) GeometryEntry {
	return GeometryEntry{
		RouteID:      g.Route.RouteID,
		ShortName:    g.Route.ShortName,
		DirectionID:  g.DirectionID,
		Projected:    g.Projected,
		UTMZone:      g.UTMZone,
		LengthMeters: g.LengthMeters(),
		Lines:        g.Lines,
		Polylines:    export.EncodePolylines(g),
	}
}

// NewGeometryEntries converts a slice of route geometries.
func NewGeometryEntries(gs []geom.RouteGeometry) []GeometryEntry {
	entries := make([]GeometryEntry, 0, len(gs))
	for _, g := range gs {
		entries = append(entries, NewGeometryEntry(g))
	}
	return entries
}
