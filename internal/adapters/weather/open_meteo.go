package weather

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/httpx"
	"ev-route-service/internal/platform/obs"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.open-meteo.com"

// OpenMeteo implements ports.WeatherProvider using the Open-Meteo forecast API.
// No API key is required.
type OpenMeteo struct {
	http    *httpx.Client
	baseURL string
}

func NewOpenMeteo(baseURL string, timeout time.Duration, opts ...httpx.Option) *OpenMeteo {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenMeteo{
		http:    httpx.New(timeout, opts...),
		baseURL: baseURL,
	}
}

type forecastResponse struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

func (o *OpenMeteo) FetchCurrent(ctx context.Context, lat, lng float64) (_ domain.WeatherSample, err error) {
	defer obs.Time(ctx, "weather.FetchCurrent")(&err)

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', 4, 64))
	q.Set("current", "temperature_2m,wind_speed_10m,weather_code")
	q.Set("wind_speed_unit", "kmh")

	var decoded forecastResponse
	if err := o.http.GetJSON(ctx, o.baseURL+"/v1/forecast", q, &decoded); err != nil {
		return domain.WeatherSample{}, fmt.Errorf("open-meteo: %w", err)
	}
	if decoded.Current == nil {
		return domain.WeatherSample{}, fmt.Errorf("open-meteo: response has no current conditions")
	}

	return domain.WeatherSample{
		TemperatureC: decoded.Current.Temperature,
		WindSpeedKmh: decoded.Current.WindSpeed,
		Condition:    Condition(decoded.Current.WeatherCode),
	}, nil
}

// Condition maps a WMO weather interpretation code to a short condition label.
func Condition(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
