package services

import (
	"context"
	"ev-route-service/internal/adapters/mock"
	"ev-route-service/internal/adapters/stations"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func uaeGeocoder() *mock.Geocoder {
	return mock.NewGeocoder(map[string][]ports.GeocodeResult{
		"Dubai":     {{Lat: dubai.Lat, Lng: dubai.Lng, DisplayName: "Dubai, United Arab Emirates"}},
		"Abu Dhabi": {{Lat: abuDhabi.Lat, Lng: abuDhabi.Lng, DisplayName: "Abu Dhabi, United Arab Emirates"}},
		"Ghantoot":  {{Lat: 24.8563, Lng: 54.8492, DisplayName: "Ghantoot, Abu Dhabi"}},
	})
}

func gulfWeather() domain.WeatherSample {
	return domain.WeatherSample{TemperatureC: 25, WindSpeedKmh: 10, Condition: "clear"}
}

func newTripPlanner(t *testing.T, deps TripPlannerDeps) *TripPlanner {
	t.Helper()
	if deps.Segmenter == nil {
		deps.Segmenter = NewRouteSegmenter(NewElevationProfileBuilder(&mock.ElevationProvider{}), 0)
	}
	if deps.Charging == nil {
		deps.Charging = NewChargingStopPlanner(&mock.StationDirectory{}, time.Second, nil)
	}
	deps.Now = func() time.Time { return fixedNow }
	deps.NewID = func() string { return "plan-1" }

	tp, err := NewTripPlanner(deps)
	require.NoError(t, err)
	return tp
}

func TestNewTripPlannerRequiresCollaborators(t *testing.T) {
	_, err := NewTripPlanner(TripPlannerDeps{})
	assert.Error(t, err)

	_, err = NewTripPlanner(TripPlannerDeps{
		Segmenter: NewRouteSegmenter(NewElevationProfileBuilder(&mock.ElevationProvider{}), 0),
	})
	assert.Error(t, err)
}

func TestPlanTripDubaiToAbuDhabi(t *testing.T) {
	vehicle := testVehicle()
	vehicle.MaxChargingSpeedKW = 150

	tp := newTripPlanner(t, TripPlannerDeps{
		Geocoder: uaeGeocoder(),
		Weather:  &mock.WeatherProvider{Sample: gulfWeather()},
	})

	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Destination: Location{Query: "Abu Dhabi"},
		Vehicle:     vehicle,
		InitialSOC:  75,
	})
	require.NoError(t, err)

	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, fixedNow, plan.CreatedAt)
	assert.Equal(t, dubai, plan.Origin)
	assert.Equal(t, abuDhabi, plan.Destination)
	require.Len(t, plan.Segments, 1)
	assert.Empty(t, plan.ChargingStops)
	assert.Empty(t, plan.Warnings)

	assert.Equal(t, 123.0, plan.TotalDistanceKm)
	assert.Equal(t, 20.9, plan.TotalEnergyUsedKWh)
	assert.Equal(t, 47.0, plan.FinalSOC)
	assert.Equal(t, 105.0, plan.TotalDurationMin)
	assert.Equal(t, 0.0, plan.WeatherImpact)
	assert.Equal(t, gulfWeather(), plan.Weather)
	assert.True(t, plan.Feasible)
}

func TestPlanTripExplicitCoordinates(t *testing.T) {
	tp := newTripPlanner(t, TripPlannerDeps{})

	origin, dest := dubai, abuDhabi
	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Point: &origin},
		Destination: Location{Point: &dest},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWeather(), plan.Weather)
	assert.Equal(t, 123.0, plan.TotalDistanceKm)
}

func TestPlanTripUnknownPlace(t *testing.T) {
	tp := newTripPlanner(t, TripPlannerDeps{Geocoder: uaeGeocoder()})

	_, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Destination: Location{Query: "Atlantis"},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
	})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestPlanTripRejectsInvalidInput(t *testing.T) {
	tp := newTripPlanner(t, TripPlannerDeps{Geocoder: uaeGeocoder()})
	base := PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Destination: Location{Query: "Abu Dhabi"},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
	}

	badVehicle := base
	badVehicle.Vehicle.BatteryCapacityKWh = 0
	_, err := tp.PlanTrip(context.Background(), badVehicle)
	assert.ErrorIs(t, err, domain.ErrInvalidVehicle)

	for _, soc := range []float64{-1, 100.5} {
		badSOC := base
		badSOC.InitialSOC = soc
		_, err := tp.PlanTrip(context.Background(), badSOC)
		assert.ErrorIs(t, err, domain.ErrInvalidSOC, "soc %v", soc)
	}

	badPoint := base
	badPoint.Origin = Location{Point: &domain.GeoPoint{Lat: 95, Lng: 10}}
	_, err = tp.PlanTrip(context.Background(), badPoint)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)

	empty := base
	empty.Destination = Location{Query: "   "}
	_, err = tp.PlanTrip(context.Background(), empty)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestPlanTripRejectsTinySegmentLength(t *testing.T) {
	elevation := &mock.ElevationProvider{}
	tp := newTripPlanner(t, TripPlannerDeps{
		Geocoder:  uaeGeocoder(),
		Segmenter: NewRouteSegmenter(NewElevationProfileBuilder(elevation), 0),
	})

	for _, km := range []float64{0.001, 0.5, -3, math.NaN()} {
		_, err := tp.PlanTrip(context.Background(), PlanTripRequest{
			Origin:          Location{Query: "Dubai"},
			Destination:     Location{Query: "Abu Dhabi"},
			Vehicle:         testVehicle(),
			InitialSOC:      75,
			SegmentLengthKm: &km,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSegmentLength, "segment length %v", km)
	}
	assert.Zero(t, elevation.Calls())
}

func TestPlanTripCapsSegmentCount(t *testing.T) {
	elevation := &mock.ElevationProvider{}
	tp := newTripPlanner(t, TripPlannerDeps{
		Segmenter: NewRouteSegmenter(NewElevationProfileBuilder(elevation), 0),
	})

	origin, dest := domain.NewGeoPoint(0, 0), domain.NewGeoPoint(0, 5)
	km := 1.0
	_, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:          Location{Point: &origin},
		Destination:     Location{Point: &dest},
		Vehicle:         testVehicle(),
		InitialSOC:      75,
		SegmentLengthKm: &km,
	})
	assert.ErrorIs(t, err, domain.ErrTooManySegments)
	assert.Zero(t, elevation.Calls())
}

func TestPlanTripWeatherFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := obs.NewMetrics(reg)
	require.NoError(t, err)

	tp := newTripPlanner(t, TripPlannerDeps{
		Geocoder: uaeGeocoder(),
		Weather:  &mock.WeatherProvider{Err: mock.ErrUnavailable},
		Metrics:  metrics,
	})

	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Destination: Location{Query: "Abu Dhabi"},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWeather(), plan.Weather)
	n, err := testutil.GatherAndCount(reg, "evroute_provider_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = testutil.GatherAndCount(reg, "evroute_plans_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPlanTripWeatherOverride(t *testing.T) {
	tp := newTripPlanner(t, TripPlannerDeps{
		Geocoder: uaeGeocoder(),
		Weather:  &mock.WeatherProvider{Sample: gulfWeather()},
	})

	cold := domain.WeatherSample{TemperatureC: -5, WindSpeedKmh: 40, Condition: "snow"}
	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Destination: Location{Query: "Abu Dhabi"},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
		Weather:     &cold,
	})
	require.NoError(t, err)

	assert.Equal(t, cold, plan.Weather)
	assert.Equal(t, -35.0, plan.WeatherImpact)
	assert.Greater(t, plan.TotalEnergyUsedKWh, 20.9)
}

func TestPlanTripWithWaypoint(t *testing.T) {
	tp := newTripPlanner(t, TripPlannerDeps{
		Geocoder: uaeGeocoder(),
		Weather:  &mock.WeatherProvider{Sample: gulfWeather()},
	})

	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Waypoints:   []Location{{Query: "Ghantoot"}},
		Destination: Location{Query: "Abu Dhabi"},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
	})
	require.NoError(t, err)

	require.Len(t, plan.Segments, 2)
	ghantoot := domain.NewGeoPoint(24.8563, 54.8492)
	assert.Equal(t, dubai, plan.Segments[0].Start)
	assert.Equal(t, ghantoot, plan.Segments[0].End)
	assert.Equal(t, ghantoot, plan.Segments[1].Start)
	assert.Equal(t, abuDhabi, plan.Segments[1].End)
	assert.Equal(t, dubai, plan.Origin)
	assert.Equal(t, abuDhabi, plan.Destination)
	// The detour is never shorter than the direct line.
	assert.GreaterOrEqual(t, plan.TotalDistanceKm, 123.0)
}

// Equatorial corridor with a station every half degree of longitude.
func TestPlanTripLongTripTwoStops(t *testing.T) {
	var corridor []domain.ChargingStation
	for i := 1; i <= 8; i++ {
		lng := 0.5 * float64(i)
		corridor = append(corridor, station(fmt.Sprintf("eq-%.1f", lng), domain.NewGeoPoint(0, lng), 150, domain.NetworkDEWA, 4))
	}

	tp := newTripPlanner(t, TripPlannerDeps{
		Segmenter: NewRouteSegmenter(NewElevationProfileBuilder(&mock.ElevationProvider{}), 90),
		Charging:  NewChargingStopPlanner(&mock.StationDirectory{Stations: corridor}, time.Second, nil),
	})

	origin := domain.NewGeoPoint(0, 0)
	dest := domain.NewGeoPoint(0, 4.0469)
	w := gulfWeather()
	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Point: &origin},
		Destination: Location{Point: &dest},
		Vehicle:     testVehicle(),
		InitialSOC:  80,
		Weather:     &w,
	})
	require.NoError(t, err)

	require.Len(t, plan.Segments, 5)
	assert.Equal(t, 450.0, plan.TotalDistanceKm)

	require.Len(t, plan.ChargingStops, 2)
	first, second := plan.ChargingStops[0], plan.ChargingStops[1]
	assert.Equal(t, 2, first.SegmentIndex)
	assert.Equal(t, "eq-1.5", first.Station.ID)
	assert.Equal(t, 39.0, first.ArrivalSOC)
	assert.Equal(t, 80.0, first.DepartureSOC)
	assert.InDelta(t, 30.6, first.EnergyAddedKWh, 0.1)

	assert.Equal(t, 4, second.SegmentIndex)
	assert.Equal(t, "eq-3.0", second.Station.ID)
	assert.Equal(t, 39.0, second.ArrivalSOC)

	assert.Empty(t, plan.Warnings)
	assert.True(t, plan.Feasible)
	assert.Equal(t, 60.0, plan.FinalSOC)
}

// The live directory is down, so the curated catalog answers and Ghantoot wins on score.
func TestPlanTripDubaiToRuwaisUsesFallbackCatalog(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := obs.NewMetrics(reg)
	require.NoError(t, err)

	dir := stations.NewDirectory(&mock.StationDirectory{Err: mock.ErrUnavailable}, stations.DefaultCatalog(), metrics, nil)
	tp := newTripPlanner(t, TripPlannerDeps{
		Segmenter: NewRouteSegmenter(NewElevationProfileBuilder(&mock.ElevationProvider{}), 50),
		Charging:  NewChargingStopPlanner(dir, time.Second, nil),
		Metrics:   metrics,
	})

	origin := dubai
	ruwais := domain.NewGeoPoint(24.11, 52.73)
	w := gulfWeather()
	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{
		Origin:      Location{Point: &origin},
		Destination: Location{Point: &ruwais},
		Vehicle:     testVehicle(),
		InitialSOC:  40,
		Weather:     &w,
	})
	require.NoError(t, err)

	require.Len(t, plan.Segments, 6)
	require.Len(t, plan.ChargingStops, 1)
	stop := plan.ChargingStops[0]
	assert.Equal(t, "uae-tesla-ghantoot", stop.Station.ID)
	assert.Equal(t, 1, stop.SegmentIndex)
	assert.Equal(t, 29.0, stop.ArrivalSOC)
	assert.Equal(t, 80.0, stop.DepartureSOC)
	assert.InDelta(t, 38.0, stop.EnergyAddedKWh, 0.1)

	assert.True(t, plan.Feasible)
	assert.Empty(t, plan.Warnings)
	assert.InDelta(t, 26.0, plan.FinalSOC, 1)
	assert.Equal(t, 284.0, plan.TotalDistanceKm)

	n, err := testutil.GatherAndCount(reg, "evroute_provider_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPlanTripIsDeterministic(t *testing.T) {
	dir := stations.NewDirectory(nil, stations.DefaultCatalog(), nil, nil)
	tp := newTripPlanner(t, TripPlannerDeps{
		Geocoder:  uaeGeocoder(),
		Weather:   &mock.WeatherProvider{Sample: gulfWeather()},
		Segmenter: NewRouteSegmenter(NewElevationProfileBuilder(&mock.ElevationProvider{Elevations: []float64{5, 40, 12, 60}}), 30),
		Charging:  NewChargingStopPlanner(dir, time.Second, nil),
	})

	req := PlanTripRequest{
		Origin:      Location{Query: "Dubai"},
		Destination: Location{Query: "Abu Dhabi"},
		Vehicle:     testVehicle(),
		InitialSOC:  35,
	}

	first, err := tp.PlanTrip(context.Background(), req)
	require.NoError(t, err)
	second, err := tp.PlanTrip(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanTripCancelledContext(t *testing.T) {
	tp := newTripPlanner(t, TripPlannerDeps{Geocoder: uaeGeocoder()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	origin, dest := dubai, abuDhabi
	_, err := tp.PlanTrip(ctx, PlanTripRequest{
		Origin:      Location{Point: &origin},
		Destination: Location{Point: &dest},
		Vehicle:     testVehicle(),
		InitialSOC:  75,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
