package feed

// Fixture returns a small synthetic feed used by tests across packages:
// two routes, two directions, a service running weekdays and one running
// Saturdays, one trip crossing midnight, and one trip without a shape so
// the stop-sequence geometry fallback is exercised. September 2025 starts
// on a Monday, which keeps the weekday arithmetic easy to eyeball.
func Fixture() *Feed {
	f := &Feed{
		Routes: []Route{
			{RouteID: "r10", AgencyID: "a1", ShortName: "10", LongName: "Crosstown", Type: 3, Color: "0000FF"},
			{RouteID: "r20", AgencyID: "a1", ShortName: "20", LongName: "Lakeside", Type: 3, Color: "FF0000"},
		},
		Stops: []Stop{
			{StopID: "s1", Name: "First & Main", Lat: 47.600, Lon: -122.330},
			{StopID: "s2", Name: "Second & Main", Lat: 47.605, Lon: -122.330},
			{StopID: "s3", Name: "Third & Main", Lat: 47.610, Lon: -122.330},
			{StopID: "s4", Name: "First & Lake", Lat: 47.600, Lon: -122.320},
			{StopID: "s5", Name: "Second & Lake", Lat: 47.605, Lon: -122.320},
			{StopID: "s6", Name: "Third & Lake", Lat: 47.610, Lon: -122.320},
		},
		Shapes: []Shape{
			{ShapeID: "shpA", Points: []ShapePoint{
				{Lat: 47.600, Lon: -122.330, Sequence: 0},
				{Lat: 47.6025, Lon: -122.330, Sequence: 1},
				{Lat: 47.605, Lon: -122.330, Sequence: 2},
				{Lat: 47.6075, Lon: -122.330, Sequence: 3},
				{Lat: 47.610, Lon: -122.330, Sequence: 4},
			}},
			{ShapeID: "shpB", Points: []ShapePoint{
				{Lat: 47.610, Lon: -122.330, Sequence: 0},
				{Lat: 47.605, Lon: -122.330, Sequence: 1},
				{Lat: 47.600, Lon: -122.330, Sequence: 2},
			}},
			{ShapeID: "shpC", Points: []ShapePoint{
				{Lat: 47.600, Lon: -122.320, Sequence: 0},
				{Lat: 47.605, Lon: -122.320, Sequence: 1},
				{Lat: 47.610, Lon: -122.320, Sequence: 2},
			}},
		},
		Trips: []Trip{
			{TripID: "t1", RouteID: "r10", ServiceID: "svc_wk", ShapeID: "shpA", DirectionID: intPtr(0), Headsign: "North"},
			{TripID: "t2", RouteID: "r10", ServiceID: "svc_wk", ShapeID: "shpA", DirectionID: intPtr(0), Headsign: "North"},
			{TripID: "t3", RouteID: "r10", ServiceID: "svc_wk", ShapeID: "shpB", DirectionID: intPtr(1), Headsign: "South"},
			{TripID: "t4", RouteID: "r20", ServiceID: "svc_wk", ShapeID: "shpC", DirectionID: intPtr(0), Headsign: "Lake"},
			{TripID: "t5", RouteID: "r20", ServiceID: "svc_wk", ShapeID: "shpC", DirectionID: intPtr(0), Headsign: "Lake Owl"},
			{TripID: "t6", RouteID: "r20", ServiceID: "svc_sat", DirectionID: intPtr(1), Headsign: "Downtown"},
		},
		StopTimes: []StopTime{
			{TripID: "t1", StopID: "s1", StopSequence: 0, ArrivalSec: 25200, DepartureSec: 25200},
			{TripID: "t1", StopID: "s2", StopSequence: 1, ArrivalSec: 26100, DepartureSec: 26100},
			{TripID: "t1", StopID: "s3", StopSequence: 2, ArrivalSec: 27000, DepartureSec: 27000},

			{TripID: "t2", StopID: "s1", StopSequence: 0, ArrivalSec: 27000, DepartureSec: 27000},
			{TripID: "t2", StopID: "s2", StopSequence: 1, ArrivalSec: 27900, DepartureSec: 27900},
			{TripID: "t2", StopID: "s3", StopSequence: 2, ArrivalSec: 28800, DepartureSec: 28800},

			{TripID: "t3", StopID: "s3", StopSequence: 0, ArrivalSec: 28800, DepartureSec: 28800},
			{TripID: "t3", StopID: "s2", StopSequence: 1, ArrivalSec: 29700, DepartureSec: 29700},
			{TripID: "t3", StopID: "s1", StopSequence: 2, ArrivalSec: 30600, DepartureSec: 30600},

			{TripID: "t4", StopID: "s4", StopSequence: 0, ArrivalSec: 32400, DepartureSec: 32400},
			{TripID: "t4", StopID: "s5", StopSequence: 1, ArrivalSec: 33300, DepartureSec: 33300},
			{TripID: "t4", StopID: "s6", StopSequence: 2, ArrivalSec: 34200, DepartureSec: 34200},

			// Crosses midnight: GTFS times beyond 24:00:00.
			{TripID: "t5", StopID: "s4", StopSequence: 0, ArrivalSec: 84600, DepartureSec: 84600},
			{TripID: "t5", StopID: "s5", StopSequence: 1, ArrivalSec: 86400, DepartureSec: 86400},
			{TripID: "t5", StopID: "s6", StopSequence: 2, ArrivalSec: 88200, DepartureSec: 88200},

			{TripID: "t6", StopID: "s6", StopSequence: 0, ArrivalSec: 36000, DepartureSec: 36000},
			{TripID: "t6", StopID: "s5", StopSequence: 1, ArrivalSec: 36900, DepartureSec: 36900},
			{TripID: "t6", StopID: "s4", StopSequence: 2, ArrivalSec: 37800, DepartureSec: 37800},
		},
		Calendar: Calendar{Services: []Service{
			{
				ServiceID: "svc_wk",
				Weekdays:  WeekdaysFrom(true, true, true, true, true, false, false),
				StartDate: "20250901",
				EndDate:   "20250926",
			},
			{
				ServiceID: "svc_sat",
				Weekdays:  WeekdaysFrom(false, false, false, false, false, true, false),
				StartDate: "20250901",
				EndDate:   "20250926",
			},
		}},
	}
	f.Reindex()
	return f
}

func intPtr(v int) *int { return &v }
