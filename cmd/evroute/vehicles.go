package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List the vehicle catalog",
	RunE:  runVehicles,
}

func init() {
	rootCmd.AddCommand(vehiclesCmd)
}

func runVehicles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := cfg.VehicleCatalog()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBATTERY kWh\tWh/km\tMAX kW\tCONNECTORS")
	for _, v := range catalog.List() {
		connectors := make([]string, 0, len(v.Connectors))
		for _, c := range v.Connectors {
			connectors = append(connectors, string(c))
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n",
			v.ID, v.Name, v.BatteryCapacityKWh, v.EfficiencyWhPerKm, v.MaxChargingSpeedKW, strings.Join(connectors, ","))
	}
	return tw.Flush()
}
