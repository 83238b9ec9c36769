package routestats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/tripstats"
)

// Indicators enumerates the time-series measures in column order.
var Indicators = []string{
	"num_trips",
	"num_trip_starts",
	"num_trip_ends",
	"service_distance",
	"service_duration",
	"service_speed",
}

// nominalDate anchors single-window series that are not tied to a real
// service date.
var nominalDate = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeriesKey labels one time-series column: an (indicator, route
// [, direction]) tuple.
type SeriesKey struct {
	Indicator   string `json:"indicator"`
	RouteID     string `json:"routeId"`
	DirectionID *int   `json:"directionId,omitempty"`
}

// TimeSeries is a rectangular, timestamp-indexed table of route indicators.
// Values[i][k] is the value of column Keys[k] at Index[i]. Buckets with no
// activity hold zero, so the table is dense even for sparse routes.
type TimeSeries struct {
	Freq   time.Duration `json:"freq"`
	Index  []time.Time   `json:"index"`
	Keys   []SeriesKey   `json:"columns"`
	Values [][]float64   `json:"values"`

	colIdx map[string]int
}

// Empty reports whether the series has no rows or no columns.
func (t *TimeSeries) Empty() bool {
	return t == nil || len(t.Index) == 0 || len(t.Keys) == 0
}

// Column returns the values of the (indicator, route, direction) column.
func (t *TimeSeries) Column(indicator, routeID string, directionID *int) ([]float64, bool) {
	k, ok := t.colIdx[colID(indicator, routeID, directionID)]
	if !ok {
		return nil, false
	}
	col := make([]float64, len(t.Index))
	for i := range t.Values {
		col[i] = t.Values[i][k]
	}
	return col, true
}

// Sum totals an indicator for a route across all rows and directions.
func (t *TimeSeries) Sum(indicator, routeID string) float64 {
	var total float64
	for k, key := range t.Keys {
		if key.Indicator != indicator || key.RouteID != routeID {
			continue
		}
		for i := range t.Values {
			total += t.Values[i][k]
		}
	}
	return total
}

// seriesGroup is one route (and direction, when split) owning a column per
// indicator.
type seriesGroup struct {
	routeID string
	dir     int // -1 when not split
}

func colID(indicator, routeID string, directionID *int) string {
	d := -1
	if directionID != nil {
		d = *directionID
	}
	return fmt.Sprintf("%s\x00%s\x00%d", indicator, routeID, d)
}

// BuildZeroTimeSeries builds the all-zero skeleton series over one nominal
// day for every route in the feed: one column per indicator x route
// (x direction when split). freq must evenly divide 24 hours.
func BuildZeroTimeSeries(f *feed.Feed, split bool, freq time.Duration) (*TimeSeries, error) {
	if err := validateFreq(freq); err != nil {
		return nil, err
	}
	routeIDs := make([]string, 0, len(f.Routes))
	for i := range f.Routes {
		routeIDs = append(routeIDs, f.Routes[i].RouteID)
	}
	sort.Strings(routeIDs)

	var groups []seriesGroup
	for _, rid := range routeIDs {
		if split {
			groups = append(groups, seriesGroup{rid, 0}, seriesGroup{rid, 1})
		} else {
			groups = append(groups, seriesGroup{rid, -1})
		}
	}
	return newTimeSeries(freq, dayIndex(nominalDate, freq), groups), nil
}

// ComputeTimeSeriesBase buckets each trip's activity window over one nominal
// day at the given frequency, distributing duration and distance
// proportionally across the buckets it spans. The zero-filled skeleton is
// built first and computed values overlaid, so output stays rectangular.
// Empty input yields an empty series.
func ComputeTimeSeriesBase(ts []tripstats.TripStats, split bool, freq time.Duration) (*TimeSeries, error) {
	if err := validateFreq(freq); err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return &TimeSeries{Freq: freq}, nil
	}
	if split {
		for i := range ts {
			if ts[i].DirectionID == nil {
				return nil, fmt.Errorf("trip %s: %w", ts[i].TripID, ErrMissingDirections)
			}
		}
	}

	series := newTimeSeries(freq, dayIndex(nominalDate, freq), groupsOf(ts, split))
	overlayDay(series, 0, len(series.Index), ts, split)
	return series, nil
}

// ComputeTimeSeries stacks per-date series over the continuous span from the
// first to the last requested date inside the feed's calendar. Dates in the
// span but not requested (or with no service) contribute zero rows. Dates
// sharing an activity pattern are bucketed once. An empty or fully invalid
// date set yields an empty series.
func ComputeTimeSeries(f *feed.Feed, ts []tripstats.TripStats, dates []string, split bool, freq time.Duration) (*TimeSeries, error) {
	if err := validateFreq(freq); err != nil {
		return nil, err
	}
	validDates := restrictDates(f, dates)
	if len(validDates) == 0 || len(ts) == 0 {
		return &TimeSeries{Freq: freq}, nil
	}
	if split {
		for i := range ts {
			if ts[i].DirectionID == nil {
				return nil, fmt.Errorf("trip %s: %w", ts[i].TripID, ErrMissingDirections)
			}
		}
	}

	requested := make(map[string]bool, len(validDates))
	for _, d := range validDates {
		requested[d] = true
	}
	first, err := feed.ParseDate(validDates[0])
	if err != nil {
		return nil, err
	}
	last, err := feed.ParseDate(validDates[len(validDates)-1])
	if err != nil {
		return nil, err
	}

	rowsPerDay := int(24 * time.Hour / freq)
	var index []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		index = append(index, dayIndex(day, freq)...)
	}
	series := newTimeSeries(freq, index, groupsOf(ts, split))

	statsByTrip := make(map[string]tripstats.TripStats, len(ts))
	for _, t := range ts {
		statsByTrip[t.TripID] = t
	}

	// Memoize bucketed day blocks by activity signature.
	memo := make(map[string][][]float64)
	row := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := feed.FormatDate(day)
		if requested[date] {
			subset, signature := activeSubset(f, statsByTrip, date)
			if len(subset) > 0 {
				block, ok := memo[signature]
				if !ok {
					block = make([][]float64, rowsPerDay)
					for i := range block {
						block[i] = make([]float64, len(series.Keys))
					}
					overlayBlock(block, series.colIdx, subset, split)
					memo[signature] = block
				}
				for i := range block {
					copy(series.Values[row+i], block[i])
				}
			}
		}
		row += rowsPerDay
	}
	return series, nil
}

// ErrBadFrequency is returned for resampling frequencies that are not
// positive or do not evenly divide 24 hours.
var ErrBadFrequency = errors.New("resampling frequency must be positive and evenly divide 24h")

func validateFreq(freq time.Duration) error {
	if freq <= 0 || (24*time.Hour)%freq != 0 {
		return fmt.Errorf("%v: %w", freq, ErrBadFrequency)
	}
	return nil
}

func dayIndex(day time.Time, freq time.Duration) []time.Time {
	n := int(24 * time.Hour / freq)
	index := make([]time.Time, n)
	for i := 0; i < n; i++ {
		index[i] = day.Add(time.Duration(i) * freq)
	}
	return index
}

func groupsOf(ts []tripstats.TripStats, split bool) []seriesGroup {
	seen := make(map[seriesGroup]bool)
	var groups []seriesGroup
	for _, t := range ts {
		g := seriesGroup{routeID: t.RouteID, dir: -1}
		if split {
			g.dir = *t.DirectionID
		}
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].routeID != groups[j].routeID {
			return groups[i].routeID < groups[j].routeID
		}
		return groups[i].dir < groups[j].dir
	})
	return groups
}

func newTimeSeries(freq time.Duration, index []time.Time, groups []seriesGroup) *TimeSeries {
	series := &TimeSeries{
		Freq:   freq,
		Index:  index,
		colIdx: make(map[string]int, len(Indicators)*len(groups)),
	}
	for _, indicator := range Indicators {
		for _, g := range groups {
			key := SeriesKey{Indicator: indicator, RouteID: g.routeID}
			if g.dir >= 0 {
				dir := g.dir
				key.DirectionID = &dir
			}
			series.colIdx[colID(indicator, g.routeID, key.DirectionID)] = len(series.Keys)
			series.Keys = append(series.Keys, key)
		}
	}
	series.Values = make([][]float64, len(index))
	for i := range series.Values {
		series.Values[i] = make([]float64, len(series.Keys))
	}
	return series
}

// overlayDay buckets the trips into the series rows [rowStart, rowEnd).
func overlayDay(series *TimeSeries, rowStart, rowEnd int, ts []tripstats.TripStats, split bool) {
	overlayBlock(series.Values[rowStart:rowEnd], series.colIdx, ts, split)
}

// overlayBlock distributes each trip's activity over one day of buckets.
// Starts land in the bucket containing the start time, ends in the bucket
// containing the end time; activity past midnight is absorbed by the final
// bucket so distance totals are preserved.
func overlayBlock(block [][]float64, colIdx map[string]int, ts []tripstats.TripStats, split bool) {
	nRows := len(block)
	if nRows == 0 {
		return
	}
	freqSec := float64(secondsPerDay) / float64(nRows)
	dayEnd := float64(secondsPerDay)

	col := func(indicator string, t tripstats.TripStats) int {
		var dir *int
		if split {
			dir = t.DirectionID
		}
		return colIdx[colID(indicator, t.RouteID, dir)]
	}
	clampBin := func(b int) int {
		if b < 0 {
			return 0
		}
		if b >= nRows {
			return nRows - 1
		}
		return b
	}

	for _, t := range ts {
		s, e := float64(t.StartTime), float64(t.EndTime)
		if e < s {
			continue
		}
		block[clampBin(int(s/freqSec))][col("num_trip_starts", t)]++
		block[clampBin(int(e/freqSec))][col("num_trip_ends", t)]++
		if e == s {
			block[clampBin(int(s/freqSec))][col("num_trips", t)]++
			continue
		}

		duration := e - s
		for b := 0; b < nRows; b++ {
			bucketStart := float64(b) * freqSec
			bucketEnd := bucketStart + freqSec
			if b == nRows-1 && e > dayEnd {
				bucketEnd = e
			}
			overlap := math.Min(e, bucketEnd) - math.Max(s, bucketStart)
			if overlap <= 0 {
				continue
			}
			block[b][col("num_trips", t)]++
			block[b][col("service_duration", t)] += overlap / 3600
			block[b][col("service_distance", t)] += t.Distance * overlap / duration
		}
	}

	// Speeds derive from the bucketed distance and duration.
	for _, t := range ts {
		distCol := col("service_distance", t)
		durCol := col("service_duration", t)
		speedCol := col("service_speed", t)
		for b := 0; b < nRows; b++ {
			if block[b][durCol] > 0 {
				block[b][speedCol] = block[b][distCol] / block[b][durCol]
			}
		}
	}
}
