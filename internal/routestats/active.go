package routestats

import (
	"fmt"
	"sort"

	"routekit.transitlab.org/internal/feed"
)

// ActiveRoutes returns the distinct routes with at least one trip running on
// the date (YYYYMMDD). When timeOfDay is non-empty ("HH:MM:SS"), only routes
// with a trip straddling that moment count. A date outside the feed's
// calendar yields an empty result; a malformed time is an error.
func ActiveRoutes(f *feed.Feed, date string, timeOfDay string) ([]feed.Route, error) {
	atSec := -1
	if timeOfDay != "" {
		sec, err := feed.ParseTimeOfDay(timeOfDay)
		if err != nil {
			return nil, fmt.Errorf("active routes: %w", err)
		}
		atSec = sec
	}

	seen := make(map[string]bool)
	var routes []feed.Route
	for _, trip := range f.TripsActiveOn(date) {
		if seen[trip.RouteID] {
			continue
		}
		if atSec >= 0 && !tripStraddles(f, trip.TripID, atSec) {
			continue
		}
		seen[trip.RouteID] = true
		if route, ok := f.RouteByID(trip.RouteID); ok {
			routes = append(routes, route)
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].RouteID < routes[j].RouteID })
	return routes, nil
}

func tripStraddles(f *feed.Feed, tripID string, atSec int) bool {
	stopTimes := f.StopTimesFor(tripID)
	if len(stopTimes) == 0 {
		return false
	}
	start := stopTimes[0].DepartureSec
	end := stopTimes[len(stopTimes)-1].ArrivalSec
	return start <= atSec && atSec <= end
}
