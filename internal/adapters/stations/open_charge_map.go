package stations

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

const (
	DefaultOpenChargeMapURL = "https://api.openchargemap.io"
	defaultMaxResults       = 50
)

// Open Charge Map connection type ids for the connectors this service understands.
var ocmConnectionTypes = map[int]domain.ConnectorType{
	1:    domain.ConnectorType1,
	2:    domain.ConnectorCHAdeMO,
	25:   domain.ConnectorType2,
	27:   domain.ConnectorTesla,
	30:   domain.ConnectorTesla,
	32:   domain.ConnectorCCS1,
	33:   domain.ConnectorCCS2,
	1036: domain.ConnectorType2,
}

// OpenChargeMap implements ports.ChargingStationDirectory over the Open Charge Map POI API.
type OpenChargeMap struct {
	http       *httpx.Client
	baseURL    string
	apiKey     string
	maxResults int
}

func NewOpenChargeMap(baseURL, apiKey string, timeout time.Duration, opts ...httpx.Option) *OpenChargeMap {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOpenChargeMapURL
	}
	return &OpenChargeMap{
		http:       httpx.New(timeout, append([]httpx.Option{httpx.WithHeader("X-API-Key", apiKey)}, opts...)...),
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxResults: defaultMaxResults,
	}
}

type ocmPOI struct {
	ID          int `json:"ID"`
	AddressInfo struct {
		Title     string  `json:"Title"`
		Latitude  float64 `json:"Latitude"`
		Longitude float64 `json:"Longitude"`
	} `json:"AddressInfo"`
	OperatorInfo *struct {
		Title string `json:"Title"`
	} `json:"OperatorInfo"`
	StatusType *struct {
		IsOperational *bool `json:"IsOperational"`
	} `json:"StatusType"`
	NumberOfPoints *int `json:"NumberOfPoints"`
	Connections    []struct {
		ConnectionTypeID int `json:"ConnectionTypeID"`
		ConnectionType   *struct {
			Title string `json:"Title"`
		} `json:"ConnectionType"`
		PowerKW  *float64 `json:"PowerKW"`
		Quantity *int     `json:"Quantity"`
	} `json:"Connections"`
}

// FindNearby queries POIs around a point. Stations without any recognised connector are
// dropped; the remaining order is the one returned by the API (nearest first).
func (o *OpenChargeMap) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	connectors []domain.ConnectorType,
) (_ []domain.ChargingStation, err error) {
	defer obs.Time(ctx, "stations.OpenChargeMap.FindNearby")(&err)

	q := url.Values{}
	q.Set("output", "json")
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("distance", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	q.Set("distanceunit", "KM")
	q.Set("maxresults", strconv.Itoa(o.maxResults))
	q.Set("compact", "false")
	q.Set("verbose", "false")
	if o.apiKey != "" {
		q.Set("key", o.apiKey)
	}

	var pois []ocmPOI
	if err := o.http.GetJSON(ctx, o.baseURL+"/v3/poi", q, &pois); err != nil {
		return nil, fmt.Errorf("open charge map: %w", err)
	}

	out := make([]domain.ChargingStation, 0, len(pois))
	for _, p := range pois {
		s, ok := toStation(p)
		if !ok || !s.HasConnector(connectors) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func toStation(p ocmPOI) (domain.ChargingStation, bool) {
	s := domain.ChargingStation{
		ID:          "ocm-" + strconv.Itoa(p.ID),
		Name:        p.AddressInfo.Title,
		Location:    domain.NewGeoPoint(p.AddressInfo.Latitude, p.AddressInfo.Longitude),
		Network:     domain.NetworkOther,
		IsAvailable: true,
		Amenities:   []string{},
	}
	if !s.Location.Valid() {
		return s, false
	}
	if p.OperatorInfo != nil {
		s.Network = domain.ParseNetwork(p.OperatorInfo.Title)
	}
	if p.StatusType != nil && p.StatusType.IsOperational != nil {
		s.IsAvailable = *p.StatusType.IsOperational
	}

	seen := map[domain.ConnectorType]bool{}
	portCount := 0
	for _, c := range p.Connections {
		ct, ok := ocmConnectionTypes[c.ConnectionTypeID]
		if !ok && c.ConnectionType != nil {
			parsed, err := domain.ParseConnectorType(c.ConnectionType.Title)
			ct, ok = parsed, err == nil
		}
		if !ok {
			continue
		}
		if !seen[ct] {
			seen[ct] = true
			s.Connectors = append(s.Connectors, ct)
		}
		if c.PowerKW != nil && *c.PowerKW > s.MaxPowerKW {
			s.MaxPowerKW = *c.PowerKW
		}
		if c.Quantity != nil {
			portCount += *c.Quantity
		} else {
			portCount++
		}
	}
	if len(s.Connectors) == 0 {
		return s, false
	}

	s.NumberOfPorts = portCount
	if p.NumberOfPoints != nil && *p.NumberOfPoints > 0 {
		s.NumberOfPorts = *p.NumberOfPoints
	}
	return s, true
}
