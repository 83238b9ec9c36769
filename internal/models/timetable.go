package models

import (
	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/routestats"
)

// TimetableEntry is the JSON view of one (date, trip, stop) timetable row.
type TimetableEntry struct {
	Date          string `json:"date"`
	TripID        string `json:"tripId"`
	DirectionID   *int   `json:"directionId,omitempty"`
	Headsign      string `json:"headsign,omitempty"`
	StopID        string `json:"stopId"`
	StopSequence  int    `json:"stopSequence"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
}

// NewTimetableEntry converts a timetable row to its JSON view.
func NewTimetableEntry(e routestats.TimetableEntry) TimetableEntry {
	return TimetableEntry{
		Date:          e.Date,
		TripID:        e.Trip.TripID,
		DirectionID:   e.Trip.DirectionID,
		Headsign:      e.Trip.Headsign,
		StopID:        e.StopTime.StopID,
		StopSequence:  e.StopTime.StopSequence,
		ArrivalTime:   feed.FormatTimeOfDay(e.StopTime.ArrivalSec),
		DepartureTime: feed.FormatTimeOfDay(e.StopTime.DepartureSec),
	}
}

// NewTimetableEntries converts a slice of timetable rows.
func NewTimetableEntries(rows []routestats.TimetableEntry) []TimetableEntry {
	entries := make([]TimetableEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, NewTimetableEntry(row))
	}
	return entries
}
