package models

import (
	"time"

	"routekit.transitlab.org/internal/routestats"
)

// TimeSeriesEntry is the JSON view of a computed route time series. Index
// timestamps render as RFC 3339 strings and the frequency as a Go duration
// string, keeping the payload readable without a client-side parser.
type TimeSeriesEntry struct {
	Freq    string                 `json:"freq"`
	Index   []string               `json:"index"`
	Columns []routestats.SeriesKey `json:"columns"`
	Values  [][]float64            `json:"values"`
}

// NewTimeSeriesEntry converts a time series to its JSON view.
func NewTimeSeriesEntry(ts *routestats.TimeSeries) TimeSeriesEntry {
	entry := TimeSeriesEntry{
		Freq:    ts.Freq.String(),
		Index:   make([]string, 0, len(ts.Index)),
		Columns: ts.Keys,
		Values:  ts.Values,
	}
	for _, t := range ts.Index {
		entry.Index = append(entry.Index, t.Format(time.RFC3339))
	}
	if entry.Columns == nil {
		entry.Columns = []routestats.SeriesKey{}
	}
	if entry.Values == nil {
		entry.Values = [][]float64{}
	}
	return entry
}
