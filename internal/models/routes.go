package models

import (
	"routekit.transitlab.org/internal/feed"
)

// RouteEntry is the JSON view of a GTFS route.
type RouteEntry struct {
	ID        string `json:"id"`
	ShortName string `json:"shortName,omitempty"`
	LongName  string `json:"longName,omitempty"`
	Type      int    `json:"type"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"textColor,omitempty"`
}

// NewRouteEntry converts a feed route to its JSON view.
func NewRouteEntry(r feed.Route) RouteEntry {
	return RouteEntry{
		ID:        r.RouteID,
		ShortName: r.ShortName,
		LongName:  r.LongName,
		Type:      r.Type,
		Color:     r.Color,
		TextColor: r.TextColor,
	}
}

// NewRouteEntries converts a slice of feed routes.
func NewRouteEntries(routes []feed.Route) []RouteEntry {
	entries := make([]RouteEntry, 0, len(routes))
	for _, r := range routes {
		entries = append(entries, NewRouteEntry(r))
	}
	return entries
}

// StopEntry is the JSON view of a GTFS stop.
type StopEntry struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	Code string  `json:"code,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// NewStopEntry converts a feed stop to its JSON view.
func NewStopEntry(s feed.Stop) StopEntry {
	return StopEntry{
		ID:   s.StopID,
		Name: s.Name,
		Code: s.Code,
		Lat:  s.Lat,
		Lon:  s.Lon,
	}
}

// NewStopEntries converts a slice of feed stops.
func NewStopEntries(stops []feed.Stop) []StopEntry {
	entries := make([]StopEntry, 0, len(stops))
	for _, s := range stops {
		entries = append(entries, NewStopEntry(s))
	}
	return entries
}
