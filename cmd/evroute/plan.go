package main

import (
	"encoding/json"
	"ev-route-service/internal/app"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/services"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var planFlags struct {
	origin        string
	destination   string
	waypoints     []string
	vehicleID     string
	soc           float64
	segmentLength float64
	save          bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip and print the route plan as JSON",
	Example: `  evroute plan --from "25.2048,55.2708" --to "Abu Dhabi" --vehicle tesla-model-3-lr --soc 80
  evroute plan --from Dubai --to Ruwais --via "Abu Dhabi" --soc 60 --segment-length 50`,
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planFlags.origin, "from", "", `origin as "lat,lng" or a place name`)
	f.StringVar(&planFlags.destination, "to", "", `destination as "lat,lng" or a place name`)
	f.StringArrayVar(&planFlags.waypoints, "via", nil, "intermediate stop (repeatable)")
	f.StringVar(&planFlags.vehicleID, "vehicle", "tesla-model-3-lr", "vehicle id from the catalog")
	f.Float64Var(&planFlags.soc, "soc", 80, "initial state of charge in percent")
	f.Float64Var(&planFlags.segmentLength, "segment-length", 0, "split legs into segments of this length in km (0 keeps legs whole, otherwise at least 1)")
	f.BoolVar(&planFlags.save, "save", false, "store the plan in the configured database")
	_ = planCmd.MarkFlagRequired("from")
	_ = planCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	vehicle, err := a.Vehicles.Get(planFlags.vehicleID)
	if err != nil {
		return err
	}

	req := services.PlanTripRequest{
		Origin:      parseLocation(planFlags.origin),
		Destination: parseLocation(planFlags.destination),
		Vehicle:     vehicle,
		InitialSOC:  planFlags.soc,
	}
	for _, wp := range planFlags.waypoints {
		req.Waypoints = append(req.Waypoints, parseLocation(wp))
	}
	if cmd.Flags().Changed("segment-length") {
		req.SegmentLengthKm = &planFlags.segmentLength
	}

	plan, err := a.Planner.PlanTrip(cmd.Context(), req)
	if err != nil {
		return err
	}

	if planFlags.save {
		if err := a.Plans.SavePlan(cmd.Context(), plan); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// parseLocation reads "lat,lng" as coordinates and anything else as a place to geocode.
func parseLocation(s string) services.Location {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ",")
	if len(parts) == 2 {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if latErr == nil && lngErr == nil {
			p := domain.NewGeoPoint(lat, lng)
			return services.Location{Point: &p}
		}
	}
	return services.Location{Query: s}
}
