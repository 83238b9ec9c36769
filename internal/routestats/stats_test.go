package routestats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/tripstats"
)

func fixtureStats(t *testing.T) (*feed.Feed, []tripstats.TripStats) {
	t.Helper()
	f := feed.Fixture()
	ts := tripstats.Compute(f)
	require.Len(t, ts, 6)
	return f, ts
}

func rowsByRoute(rows []RouteStats) map[string]RouteStats {
	m := make(map[string]RouteStats, len(rows))
	for _, r := range rows {
		m[r.RouteID] = r
	}
	return m
}

func TestComputeStatsBase(t *testing.T) {
	_, ts := fixtureStats(t)

	rows, err := ComputeStatsBase(ts, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r10", rows[0].RouteID, "rows ordered by route id")
	assert.Equal(t, "r20", rows[1].RouteID)

	byRoute := rowsByRoute(rows)

	r10 := byRoute["r10"]
	assert.Equal(t, 3, r10.NumTrips)
	assert.Equal(t, 3, r10.NumTripStarts)
	assert.Equal(t, 3, r10.NumTripEnds)
	assert.True(t, r10.IsBidirectional)
	assert.False(t, r10.IsLoop)
	assert.Equal(t, 25200, r10.StartTime)
	assert.Equal(t, 30600, r10.EndTime)
	// Starts at 07:00, 07:30, 08:00 give two 30-minute gaps.
	assert.InDelta(t, 30, r10.MinHeadway, 1e-9)
	assert.InDelta(t, 30, r10.MaxHeadway, 1e-9)
	assert.InDelta(t, 30, r10.MeanHeadway, 1e-9)
	// Trips run back to back, never concurrently.
	assert.Equal(t, 1, r10.PeakNumTrips)
	assert.Equal(t, 25200, r10.PeakStartTime)
	assert.Equal(t, 27000, r10.PeakEndTime)
	assert.InDelta(t, 1.5, r10.ServiceDuration, 1e-9)
	assert.InDelta(t, 3.336, r10.ServiceDistance, 0.03)
	assert.InDelta(t, r10.ServiceDistance/r10.ServiceDuration, r10.ServiceSpeed, 1e-9)
	assert.InDelta(t, r10.ServiceDistance/3, r10.MeanTripDistance, 1e-9)
	assert.InDelta(t, 0.5, r10.MeanTripDuration, 1e-9)

	r20 := byRoute["r20"]
	assert.Equal(t, 3, r20.NumTrips)
	assert.Equal(t, 3, r20.NumTripStarts, "the 23:30 start is still on the service day")
	assert.Equal(t, 2, r20.NumTripEnds, "the past-midnight end is not")
	assert.True(t, r20.IsBidirectional)
	assert.Equal(t, 32400, r20.StartTime)
	assert.Equal(t, 88200, r20.EndTime)
	// Only the 09:00 and 10:00 starts fall in the default headway window.
	assert.InDelta(t, 60, r20.MinHeadway, 1e-9)
	assert.InDelta(t, 60, r20.MaxHeadway, 1e-9)
	assert.InDelta(t, 60, r20.MeanHeadway, 1e-9)
}

func TestComputeStatsBaseSplitDirections(t *testing.T) {
	_, ts := fixtureStats(t)

	rows, err := ComputeStatsBase(ts, Options{SplitDirections: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	type key struct {
		route string
		dir   int
	}
	got := make(map[key]RouteStats)
	for _, row := range rows {
		require.NotNil(t, row.DirectionID)
		got[key{row.RouteID, *row.DirectionID}] = row
	}

	assert.Equal(t, 2, got[key{"r10", 0}].NumTrips)
	assert.Equal(t, 1, got[key{"r10", 1}].NumTrips)
	assert.Equal(t, 2, got[key{"r20", 0}].NumTrips)
	assert.Equal(t, 1, got[key{"r20", 1}].NumTrips)

	for k, row := range got {
		assert.False(t, row.IsBidirectional, "split rows are single-direction: %v", k)
	}

	// A single trip in the window leaves the headways undefined.
	solo := got[key{"r10", 1}]
	assert.True(t, math.IsNaN(solo.MinHeadway))
	assert.True(t, math.IsNaN(solo.MaxHeadway))
	assert.True(t, math.IsNaN(solo.MeanHeadway))
}

func TestComputeStatsBaseMissingDirections(t *testing.T) {
	_, ts := fixtureStats(t)
	for i := range ts {
		ts[i].DirectionID = nil
	}

	_, err := ComputeStatsBase(ts, Options{SplitDirections: true})
	assert.ErrorIs(t, err, ErrMissingDirections)

	// Unsplit aggregation tolerates missing directions.
	rows, err := ComputeStatsBase(ts, Options{})
	require.NoError(t, err)
	for _, row := range rows {
		assert.False(t, row.IsBidirectional)
	}
}

func TestComputeStatsBaseEmpty(t *testing.T) {
	rows, err := ComputeStatsBase(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestComputeStatsBaseHeadwayWindow(t *testing.T) {
	_, ts := fixtureStats(t)

	// Narrow the window so only the two r10 trips starting before 07:45
	// count.
	rows, err := ComputeStatsBase(ts, Options{
		HeadwayStartSec: 7 * 3600,
		HeadwayEndSec:   7*3600 + 45*60,
	})
	require.NoError(t, err)
	byRoute := rowsByRoute(rows)

	assert.InDelta(t, 30, byRoute["r10"].MeanHeadway, 1e-9)
	assert.True(t, math.IsNaN(byRoute["r20"].MeanHeadway), "no r20 trips start in the window")
}

func TestComputeStatsPerDate(t *testing.T) {
	f, ts := fixtureStats(t)

	rows, err := ComputeStats(f, ts, []string{"20250901", "20250906"}, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Monday: both routes, with r20's Saturday-only t6 filtered out.
	// Saturday: only r20's t6.
	assert.Equal(t, "20250901", rows[0].Date)
	assert.Equal(t, "r10", rows[0].RouteID)
	assert.Equal(t, "20250901", rows[1].Date)
	assert.Equal(t, "r20", rows[1].RouteID)
	assert.Equal(t, 2, rows[1].NumTrips)

	assert.Equal(t, "20250906", rows[2].Date)
	assert.Equal(t, "r20", rows[2].RouteID)
	assert.Equal(t, 1, rows[2].NumTrips)
}

func TestComputeStatsSharedActivityPattern(t *testing.T) {
	f, ts := fixtureStats(t)

	// Two Mondays share the same active trips and must agree apart from
	// the date stamp.
	rows, err := ComputeStats(f, ts, []string{"20250908", "20250901"}, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "20250901", rows[0].Date, "dates are processed in order")
	first, second := rows[0], rows[2]
	second.Date = first.Date
	assert.Equal(t, first, second)
}

func TestComputeStatsInvalidDates(t *testing.T) {
	f, ts := fixtureStats(t)

	rows, err := ComputeStats(f, ts, []string{"20250815", "20251031"}, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows, "dates outside the calendar are dropped")

	rows, err = ComputeStats(f, ts, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
