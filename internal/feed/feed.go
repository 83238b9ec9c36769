// Package feed holds the in-memory GTFS tables that all statistics,
// timetable, and geometry computations read from. A Feed is built once
// (from a parsed GTFS archive or by hand in tests), indexed, and then
// treated as read-only.
package feed

import "sort"

// Route corresponds to a row in routes.txt.
type Route struct {
	RouteID   string
	AgencyID  string
	ShortName string
	LongName  string
	Desc      string
	Type      int
	URL       string
	Color     string
	TextColor string
}

// Trip corresponds to a row in trips.txt. DirectionID is nil when the feed
// omits direction_id for the trip.
type Trip struct {
	TripID      string
	RouteID     string
	ServiceID   string
	ShapeID     string
	Headsign    string
	ShortName   string
	BlockID     string
	DirectionID *int
}

// StopTime corresponds to a row in stop_times.txt. Times are seconds after
// midnight of the service date and may exceed 24 hours for trips that run
// past midnight.
type StopTime struct {
	TripID            string
	StopID            string
	StopSequence      int
	ArrivalSec        int
	DepartureSec      int
	Headsign          string
	ShapeDistTraveled *float64
}

// Stop corresponds to a row in stops.txt.
type Stop struct {
	StopID string
	Code   string
	Name   string
	Desc   string
	Lat    float64
	Lon    float64
	ZoneID string
}

// ShapePoint is a single vertex of a shape polyline.
type ShapePoint struct {
	Lat          float64
	Lon          float64
	Sequence     int
	DistTraveled *float64
}

// Shape corresponds to the rows of shapes.txt sharing one shape_id, ordered
// by shape_pt_sequence.
type Shape struct {
	ShapeID string
	Points  []ShapePoint
}

// Feed is a single GTFS feed held in memory.
type Feed struct {
	Routes    []Route
	Trips     []Trip
	Stops     []Stop
	StopTimes []StopTime
	Shapes    []Shape
	Calendar  Calendar

	routesByID      map[string]int
	tripsByID       map[string]int
	stopsByID       map[string]int
	shapesByID      map[string]int
	stopTimesByTrip map[string][]StopTime
	tripsByRoute    map[string][]int
}

// Reindex sorts the tables into canonical order and rebuilds the lookup
// maps. It must be called after the tables are populated and before any
// accessor is used; accessors assume a consistent index.
func (f *Feed) Reindex() {
	sort.SliceStable(f.StopTimes, func(i, j int) bool {
		if f.StopTimes[i].TripID != f.StopTimes[j].TripID {
			return f.StopTimes[i].TripID < f.StopTimes[j].TripID
		}
		return f.StopTimes[i].StopSequence < f.StopTimes[j].StopSequence
	})
	for i := range f.Shapes {
		pts := f.Shapes[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Sequence < pts[b].Sequence })
	}

	f.routesByID = make(map[string]int, len(f.Routes))
	for i := range f.Routes {
		f.routesByID[f.Routes[i].RouteID] = i
	}
	f.tripsByID = make(map[string]int, len(f.Trips))
	f.tripsByRoute = make(map[string][]int, len(f.Routes))
	for i := range f.Trips {
		f.tripsByID[f.Trips[i].TripID] = i
		f.tripsByRoute[f.Trips[i].RouteID] = append(f.tripsByRoute[f.Trips[i].RouteID], i)
	}
	f.stopsByID = make(map[string]int, len(f.Stops))
	for i := range f.Stops {
		f.stopsByID[f.Stops[i].StopID] = i
	}
	f.shapesByID = make(map[string]int, len(f.Shapes))
	for i := range f.Shapes {
		f.shapesByID[f.Shapes[i].ShapeID] = i
	}
	f.stopTimesByTrip = make(map[string][]StopTime, len(f.Trips))
	for _, st := range f.StopTimes {
		f.stopTimesByTrip[st.TripID] = append(f.stopTimesByTrip[st.TripID], st)
	}
	f.Calendar.reindex()
}

// RouteByID returns the route with the given id.
func (f *Feed) RouteByID(id string) (Route, bool) {
	i, ok := f.routesByID[id]
	if !ok {
		return Route{}, false
	}
	return f.Routes[i], true
}

// TripByID returns the trip with the given id.
func (f *Feed) TripByID(id string) (Trip, bool) {
	i, ok := f.tripsByID[id]
	if !ok {
		return Trip{}, false
	}
	return f.Trips[i], true
}

// StopByID returns the stop with the given id.
func (f *Feed) StopByID(id string) (Stop, bool) {
	i, ok := f.stopsByID[id]
	if !ok {
		return Stop{}, false
	}
	return f.Stops[i], true
}

// ShapeByID returns the shape with the given id.
func (f *Feed) ShapeByID(id string) (Shape, bool) {
	i, ok := f.shapesByID[id]
	if !ok {
		return Shape{}, false
	}
	return f.Shapes[i], true
}

// StopTimesFor returns the trip's stop times ordered by stop sequence.
func (f *Feed) StopTimesFor(tripID string) []StopTime {
	return f.stopTimesByTrip[tripID]
}

// TripsForRoute returns all trips of the route in table order.
func (f *Feed) TripsForRoute(routeID string) []Trip {
	idxs := f.tripsByRoute[routeID]
	trips := make([]Trip, 0, len(idxs))
	for _, i := range idxs {
		trips = append(trips, f.Trips[i])
	}
	return trips
}

// HasShapes reports whether the feed carries any shape geometry.
func (f *Feed) HasShapes() bool {
	for i := range f.Shapes {
		if len(f.Shapes[i].Points) > 0 {
			return true
		}
	}
	return false
}

// HasStopGeometry reports whether any stop carries a usable coordinate.
func (f *Feed) HasStopGeometry() bool {
	for i := range f.Stops {
		if f.Stops[i].Lat != 0 || f.Stops[i].Lon != 0 {
			return true
		}
	}
	return false
}

// TripsActiveOn returns the trips whose service runs on the given date
// (YYYYMMDD). Dates outside the feed calendar yield an empty slice.
func (f *Feed) TripsActiveOn(date string) []Trip {
	var trips []Trip
	for i := range f.Trips {
		if f.Calendar.ActiveOn(f.Trips[i].ServiceID, date) {
			trips = append(trips, f.Trips[i])
		}
	}
	return trips
}
