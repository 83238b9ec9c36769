package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	result := c.Now()
	after := time.Now()

	assert.False(t, result.Before(before), "RealClock.Now() should not be before the call")
	assert.False(t, result.After(after), "RealClock.Now() should not be after the call")
}

func TestRealClock_NowUnixMilli(t *testing.T) {
	c := RealClock{}
	before := time.Now().UnixMilli()
	result := c.NowUnixMilli()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, result, before)
	assert.LessOrEqual(t, result, after)
}

func TestMockClock(t *testing.T) {
	fixedTime := time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)
	c := NewMockClock(fixedTime)

	assert.Equal(t, fixedTime, c.Now())
	assert.Equal(t, fixedTime.UnixMilli(), c.NowUnixMilli())

	later := fixedTime.Add(2 * time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())

	c.Advance(30 * time.Minute)
	assert.Equal(t, later.Add(30*time.Minute), c.Now())

	c.Advance(-time.Hour)
	assert.Equal(t, later.Add(-30*time.Minute), c.Now())
}
