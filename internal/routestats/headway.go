package routestats

import (
	"sort"

	"routekit.transitlab.org/internal/tripstats"
)

const secondsPerDay = 24 * 3600

// headwayStats computes min/max/mean inter-start gaps, in minutes, over the
// trip starts falling inside [startSec, endSec). Reports ok=false when fewer
// than two trips start inside the window.
func headwayStats(group []tripstats.TripStats, startSec, endSec int) (min, max, mean float64, ok bool) {
	var starts []int
	for _, t := range group {
		if t.StartTime >= startSec && t.StartTime < endSec {
			starts = append(starts, t.StartTime)
		}
	}
	if len(starts) < 2 {
		return 0, 0, 0, false
	}
	sort.Ints(starts)

	var sum float64
	for i := 1; i < len(starts); i++ {
		gap := float64(starts[i]-starts[i-1]) / 60
		if i == 1 || gap < min {
			min = gap
		}
		if gap > max {
			max = gap
		}
		sum += gap
	}
	mean = sum / float64(len(starts)-1)
	return min, max, mean, true
}

// peakWindow finds the interval of maximum trip concurrency with a sweep
// over the trips' start/end events. Concurrency is evaluated on the
// half-open activity interval [start, end), so a trip ending exactly when
// another starts does not overlap it. Ties between equally busy intervals
// resolve to the earliest one.
func peakWindow(group []tripstats.TripStats) (peak, peakStart, peakEnd int) {
	times := make([]int, 0, 2*len(group))
	for _, t := range group {
		times = append(times, t.StartTime, t.EndTime)
	}
	sort.Ints(times)
	times = dedupe(times)
	if len(times) < 2 {
		if len(times) == 1 {
			return len(group), times[0], times[0]
		}
		return 0, 0, 0
	}

	for i := 0; i+1 < len(times); i++ {
		count := 0
		for _, t := range group {
			if t.StartTime <= times[i] && times[i] < t.EndTime {
				count++
			}
		}
		if count > peak {
			peak = count
			peakStart = times[i]
			peakEnd = times[i+1]
		}
	}
	return peak, peakStart, peakEnd
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
