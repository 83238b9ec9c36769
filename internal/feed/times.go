package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the GTFS calendar date format (YYYYMMDD).
const DateLayout = "20060102"

// ParseDate parses a GTFS date string (YYYYMMDD) into a UTC time at midnight.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid GTFS date %q: %w", date, err)
	}
	return t, nil
}

// FormatDate renders a time as a GTFS date string (YYYYMMDD).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimeOfDay parses a GTFS time string (HH:MM:SS) into seconds after
// midnight. Hours may exceed 24 for trips running past midnight.
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid GTFS time %q: want HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, fmt.Errorf("invalid GTFS time %q: bad hours", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid GTFS time %q: bad minutes", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid GTFS time %q: bad seconds", s)
	}
	return h*3600 + m*60 + sec, nil
}

// FormatTimeOfDay renders seconds after midnight as a GTFS time string.
// Values of 24 hours or more keep their GTFS form, e.g. 25:10:00.
func FormatTimeOfDay(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}
