// Package geom assembles line geometries for routes from shape points,
// falling back to stop coordinate sequences for trips without shapes.
package geom

import (
	"errors"
	"math"
	"strings"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/utils"
)

// ErrNoGeometry is returned when a feed carries neither shape points nor
// stop coordinates, so no route can be geometrized.
var ErrNoGeometry = errors.New("feed has no shape or stop geometry")

// Options controls route geometrization.
type Options struct {
	// SplitDirections emits one geometry per (route, direction).
	SplitDirections bool
	// Projected returns UTM coordinates (meters) instead of lon/lat, for
	// accurate length and speed work.
	Projected bool
}

// Point is a geometry vertex: (lon, lat) in geographic mode, (easting,
// northing) in projected mode.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RouteGeometry is the assembled multi-line geometry of one route
// (and direction, when split).
type RouteGeometry struct {
	Route       feed.Route
	DirectionID *int
	Lines       [][]Point
	Projected   bool
	UTMZone     int // set in projected mode
}

// LengthMeters returns the total length of all lines.
func (g RouteGeometry) LengthMeters() float64 {
	var total float64
	for _, line := range g.Lines {
		for i := 1; i < len(line); i++ {
			if g.Projected {
				total += math.Hypot(line[i].X-line[i-1].X, line[i].Y-line[i-1].Y)
			} else {
				total += utils.Distance(line[i-1].Y, line[i-1].X, line[i].Y, line[i].X)
			}
		}
	}
	return total
}

// GeometrizeRoutes builds the line geometry of each requested route from the
// distinct shapes of its trips, using a trip's stop sequence when it has no
// shape. A nil routeIDs slice means every route in the feed; unknown ids are
// skipped (the export layer validates them). A feed with no usable geometry
// at all fails with ErrNoGeometry.
func GeometrizeRoutes(f *feed.Feed, routeIDs []string, opts Options) ([]RouteGeometry, error) {
	if !f.HasShapes() && !f.HasStopGeometry() {
		return nil, ErrNoGeometry
	}

	if routeIDs == nil {
		routeIDs = make([]string, 0, len(f.Routes))
		for i := range f.Routes {
			routeIDs = append(routeIDs, f.Routes[i].RouteID)
		}
	}

	var geoms []RouteGeometry
	for _, rid := range routeIDs {
		route, ok := f.RouteByID(rid)
		if !ok {
			continue
		}
		trips := f.TripsForRoute(rid)

		if opts.SplitDirections {
			for _, dir := range []int{0, 1} {
				var subset []feed.Trip
				for _, trip := range trips {
					if trip.DirectionID != nil && *trip.DirectionID == dir {
						subset = append(subset, trip)
					}
				}
				lines := assembleLines(f, subset)
				if len(lines) == 0 {
					continue
				}
				d := dir
				geoms = append(geoms, RouteGeometry{Route: route, DirectionID: &d, Lines: lines})
			}
		} else {
			lines := assembleLines(f, trips)
			if len(lines) == 0 {
				continue
			}
			geoms = append(geoms, RouteGeometry{Route: route, Lines: lines})
		}
	}

	if opts.Projected {
		projectGeometries(geoms)
	}
	return geoms, nil
}

// assembleLines collects the distinct polylines of the trips, keyed by shape
// id or, for shapeless trips, by their stop sequence.
func assembleLines(f *feed.Feed, trips []feed.Trip) [][]Point {
	seen := make(map[string]bool)
	var lines [][]Point
	for _, trip := range trips {
		key, line := tripLine(f, trip)
		if len(line) < 2 || seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, line)
	}
	return lines
}

func tripLine(f *feed.Feed, trip feed.Trip) (string, []Point) {
	if trip.ShapeID != "" {
		if shape, ok := f.ShapeByID(trip.ShapeID); ok && len(shape.Points) >= 2 {
			line := make([]Point, len(shape.Points))
			for i, p := range shape.Points {
				line[i] = Point{X: p.Lon, Y: p.Lat}
			}
			return "shape\x00" + shape.ShapeID, line
		}
	}

	var line []Point
	var stopIDs []string
	for _, st := range f.StopTimesFor(trip.TripID) {
		stop, ok := f.StopByID(st.StopID)
		if !ok || (stop.Lat == 0 && stop.Lon == 0) {
			continue
		}
		line = append(line, Point{X: stop.Lon, Y: stop.Lat})
		stopIDs = append(stopIDs, stop.StopID)
	}
	return "stops\x00" + strings.Join(stopIDs, "\x00"), line
}

// projectGeometries converts every geometry to UTM, using the single zone
// that contains the centroid of all vertices so lengths stay comparable
// across routes.
func projectGeometries(geoms []RouteGeometry) {
	var sumLon, sumLat float64
	var n int
	for _, g := range geoms {
		for _, line := range g.Lines {
			for _, p := range line {
				sumLon += p.X
				sumLat += p.Y
				n++
			}
		}
	}
	if n == 0 {
		return
	}
	zone := utmZone(sumLon / float64(n))
	south := sumLat/float64(n) < 0

	for gi := range geoms {
		geoms[gi].Projected = true
		geoms[gi].UTMZone = zone
		for _, line := range geoms[gi].Lines {
			for i, p := range line {
				x, y := projectUTM(p.Y, p.X, zone, south)
				line[i] = Point{X: x, Y: y}
			}
		}
	}
}
