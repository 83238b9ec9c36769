package routestats

import (
	"sort"

	"routekit.transitlab.org/internal/feed"
)

// TimetableEntry is one (date, trip, stop) row of a route timetable.
type TimetableEntry struct {
	Date     string
	Trip     feed.Trip
	StopTime feed.StopTime
}

// BuildTimetable expands the route's trips and stop times into one row per
// (date, trip, stop) for every requested date the feed's calendar covers.
// Dates outside the calendar are silently dropped; if nothing remains, or
// no trip of the route runs on the remaining dates, the result is empty.
// Rows are ordered by date, trip start time, trip id, and stop sequence.
func BuildTimetable(f *feed.Feed, routeID string, dates []string) []TimetableEntry {
	validDates := restrictDates(f, dates)
	if len(validDates) == 0 {
		return nil
	}

	trips := f.TripsForRoute(routeID)
	if len(trips) == 0 {
		return nil
	}

	startOf := make(map[string]int, len(trips))
	for _, trip := range trips {
		if sts := f.StopTimesFor(trip.TripID); len(sts) > 0 {
			startOf[trip.TripID] = sts[0].DepartureSec
		}
	}

	var entries []TimetableEntry
	for _, date := range validDates {
		for _, trip := range trips {
			if !f.Calendar.ActiveOn(trip.ServiceID, date) {
				continue
			}
			for _, st := range f.StopTimesFor(trip.TripID) {
				entries = append(entries, TimetableEntry{Date: date, Trip: trip, StopTime: st})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if startOf[a.Trip.TripID] != startOf[b.Trip.TripID] {
			return startOf[a.Trip.TripID] < startOf[b.Trip.TripID]
		}
		if a.Trip.TripID != b.Trip.TripID {
			return a.Trip.TripID < b.Trip.TripID
		}
		return a.StopTime.StopSequence < b.StopTime.StopSequence
	})
	return entries
}
