package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	dubai := NewGeoPoint(25.2048, 55.2708)
	abuDhabi := NewGeoPoint(24.4539, 54.3773)

	d := HaversineKm(dubai, abuDhabi)
	assert.InDelta(t, 122.9, d, 1.0)
	assert.InDelta(t, d, HaversineKm(abuDhabi, dubai), 1e-9)
	assert.Zero(t, HaversineKm(dubai, dubai))
}

func TestInterpolateKeepsEndpoints(t *testing.T) {
	a := NewGeoPoint(10, 20)
	b := NewGeoPoint(12, 24)

	pts := Interpolate(a, b, 5)
	require.Len(t, pts, 5)
	assert.True(t, pts[0].SamePosition(a))
	assert.True(t, pts[4].SamePosition(b))
	assert.InDelta(t, 11.0, pts[2].Lat, 1e-9)
	assert.InDelta(t, 22.0, pts[2].Lng, 1e-9)

	assert.Len(t, Interpolate(a, b, 0), 2)
}

func TestGeoPointValid(t *testing.T) {
	assert.True(t, NewGeoPoint(45, 90).Valid())
	assert.False(t, NewGeoPoint(91, 0).Valid())
	assert.False(t, NewGeoPoint(0, -181).Valid())
}
