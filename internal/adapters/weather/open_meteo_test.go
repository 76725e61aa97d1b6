package weather

import (
	"context"
	"ev-route-service/internal/platform/httpx"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "25.2048", r.URL.Query().Get("latitude"))
		assert.Equal(t, "55.2708", r.URL.Query().Get("longitude"))
		assert.Contains(t, r.URL.Query().Get("current"), "wind_speed_10m")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":38.5,"wind_speed_10m":14.2,"weather_code":63}}`))
	}))
	defer srv.Close()

	got, err := NewOpenMeteo(srv.URL, time.Second).FetchCurrent(context.Background(), 25.2048, 55.2708)
	require.NoError(t, err)
	assert.Equal(t, 38.5, got.TemperatureC)
	assert.Equal(t, 14.2, got.WindSpeedKmh)
	assert.Equal(t, "rain", got.Condition)
	assert.True(t, got.IsWet())
}

func TestFetchCurrentMissingBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewOpenMeteo(srv.URL, time.Second).FetchCurrent(context.Background(), 1, 2)
	require.Error(t, err)
}

func TestFetchCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewOpenMeteo(srv.URL, time.Second, httpx.WithRetry(2, time.Millisecond)).FetchCurrent(context.Background(), 1, 2)
	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestCondition(t *testing.T) {
	cases := map[int]string{
		0:  "clear",
		2:  "cloudy",
		45: "fog",
		53: "drizzle",
		65: "rain",
		73: "snow",
		81: "rain showers",
		86: "snow showers",
		95: "thunderstorm",
		99: "thunderstorm",
		20: "unknown",
	}
	for code, want := range cases {
		assert.Equal(t, want, Condition(code), "code %d", code)
	}
}
