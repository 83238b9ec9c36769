package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReadiness(t *testing.T) {
	m := NewManager(Fixture())
	assert.True(t, m.IsReady())
	assert.False(t, m.LastUpdated().IsZero())
}

func TestStopsNear(t *testing.T) {
	m := NewManager(Fixture())

	// Right on top of s1. s2 is ~556m north, s4 ~750m east.
	near := m.StopsNear(47.600, -122.330, 100)
	require.Len(t, near, 1)
	assert.Equal(t, "s1", near[0].StopID)

	wider := m.StopsNear(47.600, -122.330, 600)
	require.Len(t, wider, 2)
	assert.Equal(t, "s1", wider[0].StopID, "nearest stop first")
	assert.Equal(t, "s2", wider[1].StopID)

	assert.Empty(t, m.StopsNear(0, 0, 100))
}

func TestStopsNearSkipsZeroCoordinates(t *testing.T) {
	f := Fixture()
	f.Stops = append(f.Stops, Stop{StopID: "ghost"})
	f.Reindex()
	m := NewManager(f)

	for _, s := range m.StopsNear(47.600, -122.330, 1e6) {
		assert.NotEqual(t, "ghost", s.StopID)
	}
}

func TestRoutesNear(t *testing.T) {
	m := NewManager(Fixture())

	routes := m.RoutesNear(47.600, -122.330, 100)
	require.Len(t, routes, 1)
	assert.Equal(t, "r10", routes[0].RouteID)

	routes = m.RoutesNear(47.605, -122.320, 100)
	require.Len(t, routes, 1)
	assert.Equal(t, "r20", routes[0].RouteID)

	// A radius spanning both corridors picks up both routes, ordered by id.
	routes = m.RoutesNear(47.605, -122.325, 1000)
	require.Len(t, routes, 2)
	assert.Equal(t, "r10", routes[0].RouteID)
	assert.Equal(t, "r20", routes[1].RouteID)
}
