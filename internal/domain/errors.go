package domain

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidVehicle   = errors.New("invalid vehicle")
	ErrInvalidSOC       = errors.New("initial soc must be between 0 and 100")
	ErrInvalidLocation  = errors.New("invalid location")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")

	ErrInvalidSegmentLength = errors.New("invalid segment length")
	ErrTooManySegments      = errors.New("route needs too many segments")
)
