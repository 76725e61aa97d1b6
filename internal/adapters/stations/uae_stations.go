package stations

import "ev-route-service/internal/domain"

func costPerKWh(v float64) *float64 { return &v }

// UAEStations is a small curated set of real stations along the Dubai / Abu Dhabi / Al Ain
// corridor. Attributes are approximate. Callers receive a fresh copy.
func UAEStations() []domain.ChargingStation {
	return []domain.ChargingStation{
		{
			ID:            "uae-tesla-dubai-mall",
			Name:          "Tesla Supercharger Dubai Mall",
			Location:      domain.NewGeoPoint(25.1985, 55.2796),
			Network:       domain.NetworkTesla,
			Connectors:    []domain.ConnectorType{domain.ConnectorTesla, domain.ConnectorCCS2},
			MaxPowerKW:    250,
			IsAvailable:   true,
			NumberOfPorts: 12,
			CostPerKWh:    costPerKWh(1.2),
			Amenities:     []string{"mall", "restrooms", "food"},
		},
		{
			ID:            "uae-dewa-city-walk",
			Name:          "DEWA EV Green Charger City Walk",
			Location:      domain.NewGeoPoint(25.2069, 55.2620),
			Network:       domain.NetworkDEWA,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
			MaxPowerKW:    50,
			IsAvailable:   false,
			NumberOfPorts: 2,
			CostPerKWh:    costPerKWh(0.29),
			Amenities:     []string{"food"},
		},
		{
			ID:            "uae-dewa-ibn-battuta",
			Name:          "DEWA EV Green Charger Ibn Battuta Mall",
			Location:      domain.NewGeoPoint(25.0445, 55.1195),
			Network:       domain.NetworkDEWA,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorCHAdeMO, domain.ConnectorType2},
			MaxPowerKW:    50,
			IsAvailable:   true,
			NumberOfPorts: 4,
			CostPerKWh:    costPerKWh(0.29),
			Amenities:     []string{"mall", "food"},
		},
		{
			ID:            "uae-dewa-expo-city",
			Name:          "DEWA EV Hub Expo City",
			Location:      domain.NewGeoPoint(24.9635, 55.1495),
			Network:       domain.NetworkDEWA,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
			MaxPowerKW:    150,
			IsAvailable:   true,
			NumberOfPorts: 6,
			CostPerKWh:    costPerKWh(0.29),
			Amenities:     []string{"parking", "restrooms"},
		},
		{
			ID:            "uae-sewa-sharjah-city-centre",
			Name:          "SEWA Charger City Centre Sharjah",
			Location:      domain.NewGeoPoint(25.3256, 55.3926),
			Network:       domain.NetworkOther,
			Connectors:    []domain.ConnectorType{domain.ConnectorType2},
			MaxPowerKW:    22,
			IsAvailable:   true,
			NumberOfPorts: 2,
			Amenities:     []string{"mall"},
		},
		{
			ID:            "uae-tesla-ghantoot",
			Name:          "Tesla Supercharger Ghantoot",
			Location:      domain.NewGeoPoint(24.8563, 54.8492),
			Network:       domain.NetworkTesla,
			Connectors:    []domain.ConnectorType{domain.ConnectorTesla, domain.ConnectorCCS2},
			MaxPowerKW:    250,
			IsAvailable:   true,
			NumberOfPorts: 8,
			CostPerKWh:    costPerKWh(1.2),
			Amenities:     []string{"restrooms", "coffee"},
		},
		{
			ID:            "uae-addc-yas-mall",
			Name:          "ADDC EV Charger Yas Mall",
			Location:      domain.NewGeoPoint(24.4886, 54.6085),
			Network:       domain.NetworkADDC,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorCHAdeMO, domain.ConnectorType2},
			MaxPowerKW:    50,
			IsAvailable:   true,
			NumberOfPorts: 4,
			CostPerKWh:    costPerKWh(0.3),
			Amenities:     []string{"mall", "food", "restrooms"},
		},
		{
			ID:            "uae-tesla-abu-dhabi",
			Name:          "Tesla Supercharger Abu Dhabi",
			Location:      domain.NewGeoPoint(24.4759, 54.3215),
			Network:       domain.NetworkTesla,
			Connectors:    []domain.ConnectorType{domain.ConnectorTesla, domain.ConnectorCCS2},
			MaxPowerKW:    250,
			IsAvailable:   true,
			NumberOfPorts: 8,
			CostPerKWh:    costPerKWh(1.2),
			Amenities:     []string{"mall"},
		},
		{
			ID:            "uae-addc-al-wahda",
			Name:          "ADDC EV Charger Al Wahda Mall",
			Location:      domain.NewGeoPoint(24.4702, 54.3725),
			Network:       domain.NetworkADDC,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
			MaxPowerKW:    22,
			IsAvailable:   true,
			NumberOfPorts: 2,
			CostPerKWh:    costPerKWh(0.3),
			Amenities:     []string{"mall", "food"},
		},
		{
			ID:            "uae-adnoc-al-ain",
			Name:          "ADNOC E2GO Al Ain",
			Location:      domain.NewGeoPoint(24.2075, 55.7447),
			Network:       domain.NetworkOther,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorCHAdeMO},
			MaxPowerKW:    150,
			IsAvailable:   true,
			NumberOfPorts: 2,
			Amenities:     []string{"fuel station", "coffee"},
		},
		{
			ID:            "uae-adnoc-ruwais",
			Name:          "ADNOC E2GO Ruwais",
			Location:      domain.NewGeoPoint(24.1100, 52.7300),
			Network:       domain.NetworkOther,
			Connectors:    []domain.ConnectorType{domain.ConnectorCCS2},
			MaxPowerKW:    100,
			IsAvailable:   true,
			NumberOfPorts: 2,
			Amenities:     []string{"fuel station"},
		},
	}
}
