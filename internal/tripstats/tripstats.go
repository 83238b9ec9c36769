// Package tripstats derives per-trip distance, timing, and speed metrics
// from a feed. Its output feeds the route-level aggregations.
package tripstats

import (
	"sort"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/utils"
)

// loopThresholdMeters is how close a trip's first and last stop must be for
// the trip to count as a loop.
const loopThresholdMeters = 400.0

// TripStats holds the precomputed metrics of one trip. Distances are in
// kilometers, durations in hours, speeds in km/h. Times are seconds after
// midnight of the service date and may exceed 24 hours.
type TripStats struct {
	TripID         string
	RouteID        string
	RouteShortName string
	RouteType      int
	DirectionID    *int
	ShapeID        string
	NumStops       int
	StartTime      int
	EndTime        int
	StartStopID    string
	EndStopID      string
	IsLoop         bool
	Distance       float64
	Duration       float64
	Speed          float64
}

// Compute builds trip stats for every trip in the feed that has at least two
// stop times. Trip distance comes from the trip's shape when present, and
// from the stop-to-stop hops otherwise.
func Compute(f *feed.Feed) []TripStats {
	var stats []TripStats
	for i := range f.Trips {
		trip := f.Trips[i]
		stopTimes := f.StopTimesFor(trip.TripID)
		if len(stopTimes) < 2 {
			continue
		}

		first, last := stopTimes[0], stopTimes[len(stopTimes)-1]
		ts := TripStats{
			TripID:      trip.TripID,
			RouteID:     trip.RouteID,
			DirectionID: trip.DirectionID,
			ShapeID:     trip.ShapeID,
			NumStops:    len(stopTimes),
			StartTime:   first.DepartureSec,
			EndTime:     last.ArrivalSec,
			StartStopID: first.StopID,
			EndStopID:   last.StopID,
		}
		if route, ok := f.RouteByID(trip.RouteID); ok {
			ts.RouteShortName = route.ShortName
			ts.RouteType = route.Type
		}

		ts.Duration = float64(ts.EndTime-ts.StartTime) / 3600
		ts.Distance = tripDistanceKm(f, trip, stopTimes)
		if ts.Duration > 0 {
			ts.Speed = ts.Distance / ts.Duration
		}
		ts.IsLoop = isLoop(f, first.StopID, last.StopID)

		stats = append(stats, ts)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].TripID < stats[j].TripID })
	return stats
}

func tripDistanceKm(f *feed.Feed, trip feed.Trip, stopTimes []feed.StopTime) float64 {
	if trip.ShapeID != "" {
		if shape, ok := f.ShapeByID(trip.ShapeID); ok && len(shape.Points) >= 2 {
			pts := make([][2]float64, len(shape.Points))
			for i, p := range shape.Points {
				pts[i] = [2]float64{p.Lat, p.Lon}
			}
			return utils.LineLength(pts) / 1000
		}
	}

	var pts [][2]float64
	for _, st := range stopTimes {
		if stop, ok := f.StopByID(st.StopID); ok {
			pts = append(pts, [2]float64{stop.Lat, stop.Lon})
		}
	}
	return utils.LineLength(pts) / 1000
}

func isLoop(f *feed.Feed, startStopID, endStopID string) bool {
	if startStopID == endStopID {
		return true
	}
	start, ok1 := f.StopByID(startStopID)
	end, ok2 := f.StopByID(endStopID)
	if !ok1 || !ok2 {
		return false
	}
	return utils.Distance(start.Lat, start.Lon, end.Lat, end.Lon) < loopThresholdMeters
}
