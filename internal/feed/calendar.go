package feed

import "time"

// Service is the merged view of a service_id's calendar.txt row and its
// calendar_dates.txt exceptions.
type Service struct {
	ServiceID string
	// Weekdays is indexed by time.Weekday (Sunday == 0).
	Weekdays  [7]bool
	StartDate string // YYYYMMDD, inclusive
	EndDate   string // YYYYMMDD, inclusive

	AddedDates   []string
	RemovedDates []string
}

// Calendar answers which services run on which dates.
type Calendar struct {
	Services []Service

	byID map[string]int
}

func (c *Calendar) reindex() {
	c.byID = make(map[string]int, len(c.Services))
	for i := range c.Services {
		c.byID[c.Services[i].ServiceID] = i
	}
}

// ActiveOn reports whether the service runs on the given date (YYYYMMDD).
// Exception dates take precedence over the weekly pattern.
func (c *Calendar) ActiveOn(serviceID, date string) bool {
	i, ok := c.byID[serviceID]
	if !ok {
		return false
	}
	svc := &c.Services[i]
	for _, d := range svc.RemovedDates {
		if d == date {
			return false
		}
	}
	for _, d := range svc.AddedDates {
		if d == date {
			return true
		}
	}
	// YYYYMMDD strings order the same way the dates do.
	if svc.StartDate == "" || date < svc.StartDate || date > svc.EndDate {
		return false
	}
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return svc.Weekdays[t.Weekday()]
}

// ValidDates returns every date (YYYYMMDD) in the feed's calendar range: the
// continuous span from the earliest to the latest date any service touches.
// A feed with no calendar yields nil.
func (f *Feed) ValidDates() []string {
	first, last := f.dateRange()
	if first == "" {
		return nil
	}
	start, err := ParseDate(first)
	if err != nil {
		return nil
	}
	end, err := ParseDate(last)
	if err != nil {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}

// IsValidDate reports whether the date falls inside the feed's calendar range.
func (f *Feed) IsValidDate(date string) bool {
	first, last := f.dateRange()
	if first == "" {
		return false
	}
	if _, err := ParseDate(date); err != nil {
		return false
	}
	return date >= first && date <= last
}

func (f *Feed) dateRange() (first, last string) {
	consider := func(d string) {
		if d == "" {
			return
		}
		if first == "" || d < first {
			first = d
		}
		if last == "" || d > last {
			last = d
		}
	}
	for i := range f.Calendar.Services {
		svc := &f.Calendar.Services[i]
		consider(svc.StartDate)
		consider(svc.EndDate)
		for _, d := range svc.AddedDates {
			consider(d)
		}
	}
	return first, last
}

// WeekdaysFrom builds the Weekdays array from the calendar.txt monday..sunday
// columns, which start the week on Monday.
func WeekdaysFrom(mon, tue, wed, thu, fri, sat, sun bool) [7]bool {
	var w [7]bool
	w[time.Monday] = mon
	w[time.Tuesday] = tue
	w[time.Wednesday] = wed
	w[time.Thursday] = thu
	w[time.Friday] = fri
	w[time.Saturday] = sat
	w[time.Sunday] = sun
	return w
}
