package services

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
	"fmt"
	"math"
	"time"
)

const (
	SafetyBufferSOC         = 20.0
	TargetDepartureSOC      = 80.0
	StationSearchRadiusKm   = 50.0
	defaultDirectoryTimeout = 10 * time.Second
)

// ChargingPlan is the outcome of one planner pass.
// SOCAfterSegment holds the unclamped SOC at the end of every segment.
type ChargingPlan struct {
	Stops           []domain.ChargingStop
	Warnings        []domain.PlanWarning
	SOCAfterSegment []float64
}

// ChargingStopPlanner inserts charging stops with a single greedy forward pass.
//
// It walks the segments in order and reacts at the first segment that would take the
// battery below the safety buffer, charging at the best compatible station near the
// current position. It does not search for globally optimal stop placement.
type ChargingStopPlanner struct {
	directory ports.ChargingStationDirectory
	timeout   time.Duration
	log       logger.Logger
}

func NewChargingStopPlanner(directory ports.ChargingStationDirectory, timeout time.Duration, log logger.Logger) *ChargingStopPlanner {
	if timeout <= 0 {
		timeout = defaultDirectoryTimeout
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &ChargingStopPlanner{directory: directory, timeout: timeout, log: log}
}

// Plan walks the segments and returns the charging stops to insert.
// A missing station is not an error: the stop is skipped and a warning is recorded.
func (p *ChargingStopPlanner) Plan(
	ctx context.Context,
	segments []domain.RouteSegment,
	vehicle domain.Vehicle,
	initialSOC float64,
) (*ChargingPlan, error) {
	if vehicle.BatteryCapacityKWh <= 0 {
		return nil, fmt.Errorf("plan charging stops: %w: battery capacity must be positive", domain.ErrInvalidVehicle)
	}

	plan := &ChargingPlan{
		Stops:           []domain.ChargingStop{},
		Warnings:        []domain.PlanWarning{},
		SOCAfterSegment: make([]float64, 0, len(segments)),
	}
	if len(segments) == 0 {
		return plan, nil
	}

	currentSOC := initialSOC
	currentPosition := segments[0].Start
	depleted := false

	for i, seg := range segments {
		socNeeded := seg.EnergyRequiredKWh / vehicle.BatteryCapacityKWh * 100

		if currentSOC-socNeeded < SafetyBufferSOC {
			if currentSOC > TargetDepartureSOC {
				plan.Warnings = append(plan.Warnings, exceedsRangeWarning(i, socNeeded))
			} else {
				station, ok, err := p.bestStation(ctx, currentPosition, vehicle)
				if err != nil {
					return nil, err
				}

				if !ok {
					p.log.Warnf("no compatible station within %.0f km of (%.4f, %.4f) before segment %d",
						StationSearchRadiusKm, currentPosition.Lat, currentPosition.Lng, i)
					plan.Warnings = append(plan.Warnings, domain.PlanWarning{
						Code:         domain.WarningNoCompatibleStation,
						SegmentIndex: i,
						Message: fmt.Sprintf("no compatible available station within %.0f km; SOC %.0f%% leaves less than the %.0f%% reserve",
							StationSearchRadiusKm, currentSOC, SafetyBufferSOC),
					})
				} else {
					stop := newChargingStop(station, i, currentSOC, vehicle)
					plan.Stops = append(plan.Stops, stop)
					currentSOC = TargetDepartureSOC

					if currentSOC-socNeeded < SafetyBufferSOC {
						plan.Warnings = append(plan.Warnings, exceedsRangeWarning(i, socNeeded))
					}
				}
			}
		}

		currentPosition = seg.End
		currentSOC -= socNeeded
		plan.SOCAfterSegment = append(plan.SOCAfterSegment, currentSOC)

		if currentSOC < 0 && !depleted {
			depleted = true
			plan.Warnings = append(plan.Warnings, domain.PlanWarning{
				Code:         domain.WarningSOCDepleted,
				SegmentIndex: i,
				Message:      fmt.Sprintf("battery runs out during segment %d", i),
			})
		}
	}

	return plan, nil
}

// bestStation queries the directory around pos and returns the highest scoring eligible
// station. Directory failures are logged and treated as "no station".
func (p *ChargingStopPlanner) bestStation(
	ctx context.Context,
	pos domain.GeoPoint,
	vehicle domain.Vehicle,
) (domain.ChargingStation, bool, error) {
	if p.directory == nil {
		return domain.ChargingStation{}, false, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	candidates, err := p.directory.FindNearby(callCtx, pos.Lat, pos.Lng, StationSearchRadiusKm, vehicle.Connectors)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.ChargingStation{}, false, fmt.Errorf("plan charging stops: %w", ctxErr)
		}
		p.log.Warnf("station lookup failed near (%.4f, %.4f): %v", pos.Lat, pos.Lng, err)
		return domain.ChargingStation{}, false, nil
	}

	best, ok := SelectStation(candidates, vehicle)
	return best, ok, nil
}

// SelectStation returns the eligible station with the highest score. Candidates are
// visited in the given order and the first maximal score wins ties.
func SelectStation(candidates []domain.ChargingStation, vehicle domain.Vehicle) (domain.ChargingStation, bool) {
	var (
		best      domain.ChargingStation
		bestScore float64
		found     bool
	)

	for _, s := range candidates {
		if !s.IsAvailable || !vehicle.Supports(s.Connectors) {
			continue
		}

		score := StationScore(s)
		if !found || score > bestScore {
			best, bestScore, found = s, score, true
		}
	}

	return best, found
}

// StationScore ranks stations by power, operator reliability, size and amenities.
func StationScore(s domain.ChargingStation) float64 {
	return s.MaxPowerKW/10 + s.Network.Bonus() + float64(s.NumberOfPorts) + float64(len(s.Amenities))
}

func newChargingStop(station domain.ChargingStation, segmentIndex int, soc float64, vehicle domain.Vehicle) domain.ChargingStop {
	// A battery that already ran dry cannot be charged from below zero.
	soc = clampSOC(soc)
	energyToAdd := vehicle.BatteryCapacityKWh * (TargetDepartureSOC - soc) / 100
	power := math.Min(station.MaxPowerKW, vehicle.MaxChargingSpeedKW)

	chargingTime := 0.0
	if power > 0 {
		chargingTime = energyToAdd / power * 60
	}

	return domain.ChargingStop{
		Station:         station,
		SegmentIndex:    segmentIndex,
		ArrivalSOC:      math.Round(soc),
		DepartureSOC:    TargetDepartureSOC,
		ChargingTimeMin: chargingTime,
		EnergyAddedKWh:  roundTo(energyToAdd, 1),
	}
}

func exceedsRangeWarning(i int, socNeeded float64) domain.PlanWarning {
	return domain.PlanWarning{
		Code:         domain.WarningSegmentExceedsRange,
		SegmentIndex: i,
		Message: fmt.Sprintf("segment needs %.0f%% of the battery, more than a charge to %.0f%% can cover while keeping the %.0f%% reserve",
			socNeeded, TargetDepartureSOC, SafetyBufferSOC),
	}
}

func clampSOC(soc float64) float64 {
	return math.Max(0, math.Min(100, soc))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
