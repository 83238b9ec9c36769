package feed

import (
	"testing"
	"time"

	gogtfs "github.com/OneBusAway/go-gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatic(t *testing.T) {
	lat, lon := 47.6, -122.33
	agency := gogtfs.Agency{Id: "a1", Name: "Metro"}
	route := gogtfs.Route{
		Id:        "r1",
		Agency:    &agency,
		ShortName: "1",
		LongName:  "Main Street",
		Type:      3,
		Color:     "0000FF",
	}
	stopA := gogtfs.Stop{Id: "sA", Name: "A", Latitude: &lat, Longitude: &lon}
	stopB := gogtfs.Stop{Id: "sB", Name: "B"}
	service := gogtfs.Service{
		Id:        "wk",
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC),
		RemovedDates: []time.Time{
			time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		},
	}
	shape := gogtfs.Shape{
		ID: "shp1",
		Points: []gogtfs.ShapePoint{
			{Latitude: 47.60, Longitude: -122.33},
			{Latitude: 47.61, Longitude: -122.33},
		},
	}
	trip := gogtfs.ScheduledTrip{
		ID:          "trip1",
		Route:       &route,
		Service:     &service,
		Shape:       &shape,
		Headsign:    "North",
		DirectionId: 1,
		StopTimes: []gogtfs.ScheduledStopTime{
			{
				Stop:          &stopA,
				StopSequence:  0,
				ArrivalTime:   7 * time.Hour,
				DepartureTime: 7 * time.Hour,
			},
			{
				Stop:          &stopB,
				StopSequence:  1,
				ArrivalTime:   7*time.Hour + 15*time.Minute,
				DepartureTime: 7*time.Hour + 16*time.Minute,
			},
		},
	}

	static := &gogtfs.Static{
		Agencies: []gogtfs.Agency{agency},
		Routes:   []gogtfs.Route{route},
		Stops:    []gogtfs.Stop{stopA, stopB},
		Services: []gogtfs.Service{service},
		Shapes:   []gogtfs.Shape{shape},
		Trips:    []gogtfs.ScheduledTrip{trip},
	}

	f := FromStatic(static)

	r, ok := f.RouteByID("r1")
	require.True(t, ok)
	assert.Equal(t, "a1", r.AgencyID)
	assert.Equal(t, "Main Street", r.LongName)
	assert.Equal(t, 3, r.Type)

	sA, ok := f.StopByID("sA")
	require.True(t, ok)
	assert.Equal(t, 47.6, sA.Lat)
	assert.Equal(t, -122.33, sA.Lon)

	sB, ok := f.StopByID("sB")
	require.True(t, ok)
	assert.Zero(t, sB.Lat, "missing coordinates convert to zero")

	tr, ok := f.TripByID("trip1")
	require.True(t, ok)
	assert.Equal(t, "r1", tr.RouteID)
	assert.Equal(t, "wk", tr.ServiceID)
	assert.Equal(t, "shp1", tr.ShapeID)
	require.NotNil(t, tr.DirectionID)
	assert.Equal(t, 1, *tr.DirectionID)

	sts := f.StopTimesFor("trip1")
	require.Len(t, sts, 2)
	assert.Equal(t, 25200, sts[0].ArrivalSec)
	assert.Equal(t, 26160, sts[1].DepartureSec)

	require.Len(t, f.Calendar.Services, 1)
	svc := f.Calendar.Services[0]
	assert.Equal(t, "20250901", svc.StartDate)
	assert.Equal(t, "20250926", svc.EndDate)
	assert.Equal(t, []string{"20250903"}, svc.RemovedDates)
	assert.True(t, f.Calendar.ActiveOn("wk", "20250901"))
	assert.False(t, f.Calendar.ActiveOn("wk", "20250903"))

	shp, ok := f.ShapeByID("shp1")
	require.True(t, ok)
	assert.Len(t, shp.Points, 2)
}
