package feed

import (
	gogtfs "github.com/OneBusAway/go-gtfs"
)

// FromStatic converts a parsed GTFS archive into the flat tables the
// statistics code works on. The parser's pointer graph (trip -> route ->
// agency) is flattened back into ids so the tables stay self-contained.
func FromStatic(data *gogtfs.Static) *Feed {
	f := &Feed{}

	for i := range data.Routes {
		r := &data.Routes[i]
		row := Route{
			RouteID:   r.Id,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Desc:      r.Description,
			Type:      int(r.Type),
			URL:       r.Url,
			Color:     r.Color,
			TextColor: r.TextColor,
		}
		if r.Agency != nil {
			row.AgencyID = r.Agency.Id
		}
		f.Routes = append(f.Routes, row)
	}

	for i := range data.Stops {
		s := &data.Stops[i]
		row := Stop{
			StopID: s.Id,
			Code:   s.Code,
			Name:   s.Name,
			Desc:   s.Description,
			ZoneID: s.ZoneId,
		}
		if s.Latitude != nil {
			row.Lat = *s.Latitude
		}
		if s.Longitude != nil {
			row.Lon = *s.Longitude
		}
		f.Stops = append(f.Stops, row)
	}

	for i := range data.Shapes {
		sh := &data.Shapes[i]
		shape := Shape{ShapeID: sh.ID}
		for j := range sh.Points {
			p := &sh.Points[j]
			shape.Points = append(shape.Points, ShapePoint{
				Lat:          p.Latitude,
				Lon:          p.Longitude,
				Sequence:     j,
				DistTraveled: p.Distance,
			})
		}
		f.Shapes = append(f.Shapes, shape)
	}

	for i := range data.Trips {
		t := &data.Trips[i]
		row := Trip{
			TripID:    t.ID,
			Headsign:  t.Headsign,
			ShortName: t.ShortName,
			BlockID:   t.BlockID,
		}
		if t.Route != nil {
			row.RouteID = t.Route.Id
		}
		if t.Service != nil {
			row.ServiceID = t.Service.Id
		}
		if t.Shape != nil {
			row.ShapeID = t.Shape.ID
		}
		// GTFS defines only 0 and 1; anything else means unspecified.
		if d := int(t.DirectionId); d == 0 || d == 1 {
			dir := d
			row.DirectionID = &dir
		}
		f.Trips = append(f.Trips, row)

		for j := range t.StopTimes {
			st := &t.StopTimes[j]
			stRow := StopTime{
				TripID:            t.ID,
				StopSequence:      st.StopSequence,
				ArrivalSec:        int(st.ArrivalTime.Seconds()),
				DepartureSec:      int(st.DepartureTime.Seconds()),
				Headsign:          st.Headsign,
				ShapeDistTraveled: st.ShapeDistanceTraveled,
			}
			if st.Stop != nil {
				stRow.StopID = st.Stop.Id
			}
			f.StopTimes = append(f.StopTimes, stRow)
		}
	}

	for i := range data.Services {
		svc := &data.Services[i]
		row := Service{
			ServiceID: svc.Id,
			Weekdays: WeekdaysFrom(svc.Monday, svc.Tuesday, svc.Wednesday,
				svc.Thursday, svc.Friday, svc.Saturday, svc.Sunday),
		}
		if !svc.StartDate.IsZero() {
			row.StartDate = FormatDate(svc.StartDate)
		}
		if !svc.EndDate.IsZero() {
			row.EndDate = FormatDate(svc.EndDate)
		}
		for _, d := range svc.AddedDates {
			row.AddedDates = append(row.AddedDates, FormatDate(d))
		}
		for _, d := range svc.RemovedDates {
			row.RemovedDates = append(row.RemovedDates, FormatDate(d))
		}
		f.Calendar.Services = append(f.Calendar.Services, row)
	}

	f.Reindex()
	return f
}
