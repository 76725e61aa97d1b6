package domain

import (
	"fmt"
	"strings"
)

type ConnectorType string

const (
	ConnectorCCS1    ConnectorType = "CCS1"
	ConnectorCCS2    ConnectorType = "CCS2"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorType1   ConnectorType = "Type1"
	ConnectorType2   ConnectorType = "Type2"
	ConnectorTesla   ConnectorType = "Tesla"
	ConnectorGBT     ConnectorType = "GBT"
)

var connectorAliases = map[string]ConnectorType{
	"ccs1":         ConnectorCCS1,
	"ccs (type 1)": ConnectorCCS1,
	"ccs2":         ConnectorCCS2,
	"ccs":          ConnectorCCS2,
	"ccs (type 2)": ConnectorCCS2,
	"chademo":      ConnectorCHAdeMO,
	"type1":        ConnectorType1,
	"type 1":       ConnectorType1,
	"j1772":        ConnectorType1,
	"type2":        ConnectorType2,
	"type 2":       ConnectorType2,
	"mennekes":     ConnectorType2,
	"tesla":        ConnectorTesla,
	"nacs":         ConnectorTesla,
	"supercharger": ConnectorTesla,
	"gbt":          ConnectorGBT,
	"gb/t":         ConnectorGBT,
}

// ParseConnectorType maps a free-form connector label onto the closed connector set.
func ParseConnectorType(s string) (ConnectorType, error) {
	if c, ok := connectorAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown connector type %q", s)
}

func (c ConnectorType) Valid() bool {
	switch c {
	case ConnectorCCS1, ConnectorCCS2, ConnectorCHAdeMO, ConnectorType1, ConnectorType2, ConnectorTesla, ConnectorGBT:
		return true
	}
	return false
}

// Network identifies the operator of a charging station and drives the reliability bonus.
type Network string

const (
	NetworkTesla Network = "tesla"
	NetworkDEWA  Network = "dewa"
	NetworkADDC  Network = "addc"
	NetworkOther Network = "other"
)

// ParseNetwork classifies an operator name. Unknown operators map to NetworkOther.
func ParseNetwork(operator string) Network {
	o := strings.ToLower(operator)
	switch {
	case strings.Contains(o, "tesla"):
		return NetworkTesla
	case strings.Contains(o, "dewa"), strings.Contains(o, "dubai electricity"):
		return NetworkDEWA
	case strings.Contains(o, "addc"), strings.Contains(o, "abu dhabi distribution"):
		return NetworkADDC
	default:
		return NetworkOther
	}
}

// Bonus is the scoring bonus for the network: premium manufacturer network first,
// then the primary and secondary utilities.
func (n Network) Bonus() float64 {
	switch n {
	case NetworkTesla:
		return 20
	case NetworkDEWA:
		return 15
	case NetworkADDC:
		return 10
	default:
		return 0
	}
}

// Read-only charging station record as returned by a station directory.
type ChargingStation struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Location      GeoPoint        `json:"location"`
	Network       Network         `json:"network"`
	Connectors    []ConnectorType `json:"connectors"`
	MaxPowerKW    float64         `json:"max_power_kw"`
	IsAvailable   bool            `json:"is_available"`
	NumberOfPorts int             `json:"number_of_ports"`
	CostPerKWh    *float64        `json:"cost_per_kwh,omitempty"`
	Amenities     []string        `json:"amenities"`
}

// HasConnector reports whether the station offers any of the given connectors.
// An empty filter matches every station.
func (s ChargingStation) HasConnector(connectors []ConnectorType) bool {
	if len(connectors) == 0 {
		return true
	}
	for _, have := range s.Connectors {
		for _, want := range connectors {
			if have == want {
				return true
			}
		}
	}
	return false
}
