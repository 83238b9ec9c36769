// Package routestats aggregates per-trip metrics into route-level
// statistics, time series, and timetables. All outputs are request-scoped:
// computed from the inputs on every call, never cached or mutated.
package routestats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/tripstats"
)

// ErrMissingDirections is returned when a direction split is requested but
// one or more trip-stats rows carry no direction id.
var ErrMissingDirections = errors.New("direction split requested but trip stats are missing direction ids")

// Options controls route-stat aggregation.
type Options struct {
	// SplitDirections treats each travel direction of a route as its own row.
	SplitDirections bool
	// HeadwayStartSec / HeadwayEndSec bound the window (seconds after
	// midnight) whose trip starts feed the headway statistics.
	// Zero values default to 07:00:00-19:00:00.
	HeadwayStartSec int
	HeadwayEndSec   int
}

func (o Options) withDefaults() Options {
	if o.HeadwayStartSec == 0 && o.HeadwayEndSec == 0 {
		o.HeadwayStartSec = 7 * 3600
		o.HeadwayEndSec = 19 * 3600
	}
	return o
}

// RouteStats is one aggregated row per route (and direction, when split).
// Distances are kilometers, durations hours, speeds km/h, headways minutes.
// Headway fields are NaN when fewer than two trips start inside the headway
// window. Date is set only by the multi-date ComputeStats.
type RouteStats struct {
	Date             string
	RouteID          string
	RouteShortName   string
	RouteType        int
	DirectionID      *int
	NumTrips         int
	NumTripStarts    int
	NumTripEnds      int
	IsBidirectional  bool
	IsLoop           bool
	StartTime        int
	EndTime          int
	MinHeadway       float64
	MaxHeadway       float64
	MeanHeadway      float64
	PeakNumTrips     int
	PeakStartTime    int
	PeakEndTime      int
	ServiceDuration  float64
	ServiceDistance  float64
	ServiceSpeed     float64
	MeanTripDistance float64
	MeanTripDuration float64
}

// ComputeStatsBase aggregates trip stats for a single service window into
// one row per route, or per (route, direction) when opts.SplitDirections is
// set. Empty input yields empty output. A split request over trip stats
// with any missing direction id fails with ErrMissingDirections.
func ComputeStatsBase(ts []tripstats.TripStats, opts Options) ([]RouteStats, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	opts = opts.withDefaults()

	if opts.SplitDirections {
		for i := range ts {
			if ts[i].DirectionID == nil {
				return nil, fmt.Errorf("trip %s: %w", ts[i].TripID, ErrMissingDirections)
			}
		}
	}

	groups := make(map[string][]tripstats.TripStats)
	var order []string
	for _, t := range ts {
		key := t.RouteID
		if opts.SplitDirections {
			key = fmt.Sprintf("%s\x00%d", t.RouteID, *t.DirectionID)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}
	sort.Strings(order)

	stats := make([]RouteStats, 0, len(order))
	for _, key := range order {
		row := aggregateGroup(groups[key], opts)
		if opts.SplitDirections {
			dir := *groups[key][0].DirectionID
			row.DirectionID = &dir
		}
		stats = append(stats, row)
	}
	return stats, nil
}

// ComputeStats aggregates trip stats per date: one row per (date, route
// [, direction]) for every requested date inside the feed's calendar.
// Dates outside the calendar are silently dropped; an empty or fully
// invalid date set yields empty output. Dates sharing the same set of
// active trips are computed once.
func ComputeStats(f *feed.Feed, ts []tripstats.TripStats, dates []string, opts Options) ([]RouteStats, error) {
	validDates := restrictDates(f, dates)
	if len(validDates) == 0 || len(ts) == 0 {
		return nil, nil
	}

	statsByTrip := make(map[string]tripstats.TripStats, len(ts))
	for _, t := range ts {
		statsByTrip[t.TripID] = t
	}

	memo := make(map[string][]RouteStats)
	var out []RouteStats
	for _, date := range validDates {
		subset, signature := activeSubset(f, statsByTrip, date)
		if len(subset) == 0 {
			continue
		}
		rows, ok := memo[signature]
		if !ok {
			var err error
			rows, err = ComputeStatsBase(subset, opts)
			if err != nil {
				return nil, err
			}
			memo[signature] = rows
		}
		for _, row := range rows {
			row.Date = date
			out = append(out, row)
		}
	}
	return out, nil
}

// restrictDates returns the sorted, de-duplicated subset of dates that fall
// inside the feed's calendar.
func restrictDates(f *feed.Feed, dates []string) []string {
	seen := make(map[string]bool, len(dates))
	var valid []string
	for _, d := range dates {
		if seen[d] || !f.IsValidDate(d) {
			continue
		}
		seen[d] = true
		valid = append(valid, d)
	}
	sort.Strings(valid)
	return valid
}

// activeSubset returns the trip stats active on the date plus a signature
// identifying the activity pattern, so equal dates share one computation.
func activeSubset(f *feed.Feed, statsByTrip map[string]tripstats.TripStats, date string) ([]tripstats.TripStats, string) {
	var ids []string
	for _, trip := range f.TripsActiveOn(date) {
		if _, ok := statsByTrip[trip.TripID]; ok {
			ids = append(ids, trip.TripID)
		}
	}
	sort.Strings(ids)
	subset := make([]tripstats.TripStats, 0, len(ids))
	for _, id := range ids {
		subset = append(subset, statsByTrip[id])
	}
	return subset, strings.Join(ids, "\x00")
}

func aggregateGroup(group []tripstats.TripStats, opts Options) RouteStats {
	row := RouteStats{
		RouteID:        group[0].RouteID,
		RouteShortName: group[0].RouteShortName,
		RouteType:      group[0].RouteType,
		NumTrips:       len(group),
		StartTime:      group[0].StartTime,
		EndTime:        group[0].EndTime,
		MinHeadway:     math.NaN(),
		MaxHeadway:     math.NaN(),
		MeanHeadway:    math.NaN(),
	}

	directions := make(map[int]bool)
	for _, t := range group {
		if t.StartTime < secondsPerDay {
			row.NumTripStarts++
		}
		if t.EndTime < secondsPerDay {
			row.NumTripEnds++
		}
		if t.StartTime < row.StartTime {
			row.StartTime = t.StartTime
		}
		if t.EndTime > row.EndTime {
			row.EndTime = t.EndTime
		}
		if t.IsLoop {
			row.IsLoop = true
		}
		if t.DirectionID != nil {
			directions[*t.DirectionID] = true
		}
		row.ServiceDistance += t.Distance
		row.ServiceDuration += t.Duration
	}
	row.IsBidirectional = len(directions) > 1

	if row.ServiceDuration > 0 {
		row.ServiceSpeed = row.ServiceDistance / row.ServiceDuration
	}
	row.MeanTripDistance = row.ServiceDistance / float64(row.NumTrips)
	row.MeanTripDuration = row.ServiceDuration / float64(row.NumTrips)

	if min, max, mean, ok := headwayStats(group, opts.HeadwayStartSec, opts.HeadwayEndSec); ok {
		row.MinHeadway, row.MaxHeadway, row.MeanHeadway = min, max, mean
	}
	row.PeakNumTrips, row.PeakStartTime, row.PeakEndTime = peakWindow(group)

	return row
}
