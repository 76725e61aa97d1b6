package domain

import "strings"

// Current conditions near the trip origin, treated as constant for the whole trip.
type WeatherSample struct {
	TemperatureC float64 `json:"temperature_c"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	Condition    string  `json:"condition"`
}

// DefaultWeather is used whenever the weather provider cannot answer.
func DefaultWeather() WeatherSample {
	return WeatherSample{TemperatureC: 25, WindSpeedKmh: 0, Condition: "clear"}
}

// IsWet reports whether the condition slows traffic down (rain, storms, showers).
func (w WeatherSample) IsWet() bool {
	c := strings.ToLower(w.Condition)
	for _, k := range []string{"rain", "storm", "shower", "drizzle", "thunder"} {
		if strings.Contains(c, k) {
			return true
		}
	}
	return false
}
