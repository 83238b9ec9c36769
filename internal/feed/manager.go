package feed

import (
	"sort"
	"sync"
	"time"

	"github.com/tidwall/rtree"

	"routekit.transitlab.org/internal/utils"
)

// Manager owns the loaded feed for the lifetime of the process. It guards
// access with an RWMutex so HTTP handlers can share the tables, and carries
// a spatial index over stops for location queries.
type Manager struct {
	mu sync.RWMutex

	feed         *Feed
	stopIndex    rtree.RTree
	routesByStop map[string][]string
	ready        bool
	lastUpdated  time.Time
}

// NewManager indexes the feed and returns a ready manager. The feed must
// already be reindexed.
func NewManager(f *Feed) *Manager {
	m := &Manager{feed: f}
	m.buildStopSpatialIndex()
	m.buildRoutesByStop()
	m.ready = true
	m.lastUpdated = time.Now()
	return m
}

// RLock acquires the read lock. Handlers must hold it across any use of the
// value returned by Feed.
func (m *Manager) RLock() { m.mu.RLock() }

// RUnlock releases the read lock.
func (m *Manager) RUnlock() { m.mu.RUnlock() }

// Feed returns the loaded feed.
// IMPORTANT: Caller must hold RLock() before calling this method.
func (m *Manager) Feed() *Feed { return m.feed }

// IsReady reports whether the feed is loaded and indexed.
func (m *Manager) IsReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// LastUpdated returns when the feed was loaded.
func (m *Manager) LastUpdated() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUpdated
}

func (m *Manager) buildStopSpatialIndex() {
	for i := range m.feed.Stops {
		s := &m.feed.Stops[i]
		if s.Lat == 0 && s.Lon == 0 {
			continue
		}
		pt := [2]float64{s.Lon, s.Lat}
		m.stopIndex.Insert(pt, pt, i)
	}
}

func (m *Manager) buildRoutesByStop() {
	m.routesByStop = make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, st := range m.feed.StopTimes {
		trip, ok := m.feed.TripByID(st.TripID)
		if !ok {
			continue
		}
		if seen[st.StopID] == nil {
			seen[st.StopID] = make(map[string]bool)
		}
		if seen[st.StopID][trip.RouteID] {
			continue
		}
		seen[st.StopID][trip.RouteID] = true
		m.routesByStop[st.StopID] = append(m.routesByStop[st.StopID], trip.RouteID)
	}
}

// StopsNear returns the stops within radius meters of the coordinate,
// nearest first.
func (m *Manager) StopsNear(lat, lon, radius float64) []Stop {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bounds := utils.CalculateBounds(lat, lon, radius)
	var stops []Stop
	m.stopIndex.Search(
		[2]float64{bounds.MinLon, bounds.MinLat},
		[2]float64{bounds.MaxLon, bounds.MaxLat},
		func(_, _ [2]float64, data interface{}) bool {
			s := m.feed.Stops[data.(int)]
			if utils.Distance(lat, lon, s.Lat, s.Lon) <= radius {
				stops = append(stops, s)
			}
			return true
		},
	)
	sort.Slice(stops, func(i, j int) bool {
		return utils.Distance(lat, lon, stops[i].Lat, stops[i].Lon) <
			utils.Distance(lat, lon, stops[j].Lat, stops[j].Lon)
	})
	return stops
}

// RoutesNear returns the distinct routes serving any stop within radius
// meters of the coordinate, ordered by route id.
func (m *Manager) RoutesNear(lat, lon, radius float64) []Route {
	stops := m.StopsNear(lat, lon, radius)

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var routes []Route
	for _, s := range stops {
		for _, rid := range m.routesByStop[s.StopID] {
			if seen[rid] {
				continue
			}
			seen[rid] = true
			if r, ok := m.feed.RouteByID(rid); ok {
				routes = append(routes, r)
			}
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].RouteID < routes[j].RouteID })
	return routes
}
