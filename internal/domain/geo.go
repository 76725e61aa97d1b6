package domain

import "math"

const EarthRadiusKm = 6371.0

// Immutable geographic point (degrees). Elevation is optional and in meters.
type GeoPoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Elevation *float64 `json:"elevation,omitempty"`
}

func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: lat, Lng: lng}
}

// Return coordinates as [lon, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lng, p.Lat} }

// Valid reports whether the point lies within the WGS84 coordinate range.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// SamePosition compares latitude and longitude only.
func (p GeoPoint) SamePosition(o GeoPoint) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng
}

func degreesToRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b GeoPoint) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := lat2 - lat1
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Interpolate returns n points evenly spaced on the straight lat/lng line from a to b,
// both endpoints included. n below 2 is treated as 2.
func Interpolate(a, b GeoPoint, n int) []GeoPoint {
	if n < 2 {
		n = 2
	}

	out := make([]GeoPoint, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out = append(out, GeoPoint{
			Lat: a.Lat + (b.Lat-a.Lat)*t,
			Lng: a.Lng + (b.Lng-a.Lng)*t,
		})
	}
	// Keep the exact endpoints so that consecutive legs stay contiguous.
	out[0] = GeoPoint{Lat: a.Lat, Lng: a.Lng}
	out[n-1] = GeoPoint{Lat: b.Lat, Lng: b.Lng}
	return out
}
