// Package export converts geometrized routes into interchange formats:
// GeoJSON feature collections, encoded polylines, and an interactive map.
package export

import (
	"errors"
	"fmt"
	"sort"

	geojson "github.com/paulmach/go.geojson"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/geom"
)

// ErrUnknownRoute is returned when an export names a route id the feed does
// not contain.
var ErrUnknownRoute = errors.New("unknown route id")

// RoutesToGeoJSON builds a FeatureCollection with one feature per requested
// route and, when includeStops is set, one point feature per distinct stop
// served by those routes. A nil routeIDs slice exports every route.
func RoutesToGeoJSON(f *feed.Feed, routeIDs []string, includeStops bool) (*geojson.FeatureCollection, error) {
	for _, rid := range routeIDs {
		if _, ok := f.RouteByID(rid); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, rid)
		}
	}

	geoms, err := geom.GeometrizeRoutes(f, routeIDs, geom.Options{})
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, g := range geoms {
		fc.AddFeature(routeFeature(g))
	}
	if includeStops {
		for _, stop := range stopsServingRoutes(f, routeIDs) {
			fc.AddFeature(stopFeature(stop))
		}
	}
	return fc, nil
}

func routeFeature(g geom.RouteGeometry) *geojson.Feature {
	lines := make([][][]float64, len(g.Lines))
	for i, line := range g.Lines {
		coords := make([][]float64, len(line))
		for j, p := range line {
			coords[j] = []float64{p.X, p.Y}
		}
		lines[i] = coords
	}

	var feature *geojson.Feature
	if len(lines) == 1 {
		feature = geojson.NewLineStringFeature(lines[0])
	} else {
		feature = geojson.NewMultiLineStringFeature(lines...)
	}
	feature.SetProperty("route_id", g.Route.RouteID)
	feature.SetProperty("route_short_name", g.Route.ShortName)
	feature.SetProperty("route_long_name", g.Route.LongName)
	feature.SetProperty("route_type", g.Route.Type)
	if g.Route.Color != "" {
		feature.SetProperty("route_color", g.Route.Color)
	}
	feature.SetProperty("length_m", g.LengthMeters())
	return feature
}

func stopFeature(stop feed.Stop) *geojson.Feature {
	feature := geojson.NewPointFeature([]float64{stop.Lon, stop.Lat})
	feature.SetProperty("stop_id", stop.StopID)
	feature.SetProperty("stop_name", stop.Name)
	if stop.Code != "" {
		feature.SetProperty("stop_code", stop.Code)
	}
	return feature
}

// stopsServingRoutes returns the distinct stops visited by any trip of the
// given routes (all routes when routeIDs is nil), ordered by stop id.
func stopsServingRoutes(f *feed.Feed, routeIDs []string) []feed.Stop {
	wanted := make(map[string]bool, len(routeIDs))
	for _, rid := range routeIDs {
		wanted[rid] = true
	}

	stopIDs := make(map[string]bool)
	for i := range f.Trips {
		trip := f.Trips[i]
		if routeIDs != nil && !wanted[trip.RouteID] {
			continue
		}
		for _, st := range f.StopTimesFor(trip.TripID) {
			stopIDs[st.StopID] = true
		}
	}

	ids := make([]string, 0, len(stopIDs))
	for id := range stopIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stops := make([]feed.Stop, 0, len(ids))
	for _, id := range ids {
		if stop, ok := f.StopByID(id); ok {
			stops = append(stops, stop)
		}
	}
	return stops
}
