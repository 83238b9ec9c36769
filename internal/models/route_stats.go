package models

import (
	"math"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/routestats"
)

// RouteStatsEntry is the JSON view of one aggregated route-stats row.
// Times render as GTFS HH:MM:SS strings; undefined headways render as null.
type RouteStatsEntry struct {
	Date             string   `json:"date,omitempty"`
	RouteID          string   `json:"routeId"`
	RouteShortName   string   `json:"routeShortName"`
	RouteType        int      `json:"routeType"`
	DirectionID      *int     `json:"directionId,omitempty"`
	NumTrips         int      `json:"numTrips"`
	NumTripStarts    int      `json:"numTripStarts"`
	NumTripEnds      int      `json:"numTripEnds"`
	IsBidirectional  bool     `json:"isBidirectional"`
	IsLoop           bool     `json:"isLoop"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	MinHeadway       *float64 `json:"minHeadwayMinutes"`
	MaxHeadway       *float64 `json:"maxHeadwayMinutes"`
	MeanHeadway      *float64 `json:"meanHeadwayMinutes"`
	PeakNumTrips     int      `json:"peakNumTrips"`
	PeakStartTime    string   `json:"peakStartTime"`
	PeakEndTime      string   `json:"peakEndTime"`
	ServiceDuration  float64  `json:"serviceDurationHours"`
	ServiceDistance  float64  `json:"serviceDistanceKm"`
	ServiceSpeed     float64  `json:"serviceSpeedKmh"`
	MeanTripDistance float64  `json:"meanTripDistanceKm"`
	MeanTripDuration float64  `json:"meanTripDurationHours"`
}

// NewRouteStatsEntry converts an aggregated row to its JSON view.
func NewRouteStatsEntry(rs routestats.RouteStats) RouteStatsEntry {
	return RouteStatsEntry{
		Date:             rs.Date,
		RouteID:          rs.RouteID,
		RouteShortName:   rs.RouteShortName,
		RouteType:        rs.RouteType,
		DirectionID:      rs.DirectionID,
		NumTrips:         rs.NumTrips,
		NumTripStarts:    rs.NumTripStarts,
		NumTripEnds:      rs.NumTripEnds,
		IsBidirectional:  rs.IsBidirectional,
		IsLoop:           rs.IsLoop,
		StartTime:        feed.FormatTimeOfDay(rs.StartTime),
		EndTime:          feed.FormatTimeOfDay(rs.EndTime),
		MinHeadway:       floatOrNil(rs.MinHeadway),
		MaxHeadway:       floatOrNil(rs.MaxHeadway),
		MeanHeadway:      floatOrNil(rs.MeanHeadway),
		PeakNumTrips:     rs.PeakNumTrips,
		PeakStartTime:    feed.FormatTimeOfDay(rs.PeakStartTime),
		PeakEndTime:      feed.FormatTimeOfDay(rs.PeakEndTime),
		ServiceDuration:  rs.ServiceDuration,
		ServiceDistance:  rs.ServiceDistance,
		ServiceSpeed:     rs.ServiceSpeed,
		MeanTripDistance: rs.MeanTripDistance,
		MeanTripDuration: rs.MeanTripDuration,
	}
}

// NewRouteStatsEntries converts a slice of aggregated rows.
func NewRouteStatsEntries(rows []routestats.RouteStats) []RouteStatsEntry {
	entries := make([]RouteStatsEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, NewRouteStatsEntry(row))
	}
	return entries
}

func floatOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
