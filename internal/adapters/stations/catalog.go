package stations

import (
	"context"
	"ev-route-service/internal/domain"
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// pointTolerance gives each station a tiny non-degenerate box in the index (degrees).
const pointTolerance = 1e-7

// indexedStation is a catalog entry stored in the R-tree. Points are (lat, lng) in degrees.
type indexedStation struct {
	idx    int
	bounds rtreego.Rect
}

func (s *indexedStation) Bounds() rtreego.Rect { return s.bounds }

// Catalog is an in-memory station directory over a fixed dataset.
// Results are returned in dataset order so repeated queries are deterministic.
// It is safe for concurrent use: the index is never modified after construction.
type Catalog struct {
	stations []domain.ChargingStation
	tree     *rtreego.Rtree
}

func NewCatalog(stations []domain.ChargingStation) *Catalog {
	objs := make([]rtreego.Spatial, 0, len(stations))
	for i, s := range stations {
		p := rtreego.Point{s.Location.Lat, s.Location.Lng}
		objs = append(objs, &indexedStation{idx: i, bounds: p.ToRect(pointTolerance)})
	}
	return &Catalog{
		stations: stations,
		tree:     rtreego.NewTree(2, 2, 8, objs...),
	}
}

// DefaultCatalog is the curated fallback used when the live directory is unreachable.
func DefaultCatalog() *Catalog {
	return NewCatalog(UAEStations())
}

func (c *Catalog) Len() int { return len(c.stations) }

// FindNearby narrows candidates with the R-tree using the bounding rectangle of a
// spherical cap, then applies the exact haversine radius and the connector filter.
func (c *Catalog) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	connectors []domain.ConnectorType,
) ([]domain.ChargingStation, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("station catalog: radius must be positive, got %v", radiusKm)
	}

	center := domain.NewGeoPoint(lat, lng)
	if !center.Valid() {
		return nil, fmt.Errorf("station catalog: %w", domain.ErrInvalidLocation)
	}

	bbox, err := searchRect(lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("station catalog: %w", err)
	}

	hits := c.tree.SearchIntersect(bbox)
	idxs := make([]int, 0, len(hits))
	for _, h := range hits {
		idxs = append(idxs, h.(*indexedStation).idx)
	}
	sort.Ints(idxs)

	out := make([]domain.ChargingStation, 0, len(idxs))
	for _, i := range idxs {
		s := c.stations[i]
		if domain.HaversineKm(center, s.Location) > radiusKm {
			continue
		}
		if !s.HasConnector(connectors) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// searchRect returns the lat/lng rectangle bounding all points within radiusKm of the center.
func searchRect(lat, lng, radiusKm float64) (rtreego.Rect, error) {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	bound := s2.CapFromCenterAngle(center, s1.Angle(radiusKm/domain.EarthRadiusKm)).RectBound()

	lo, hi := bound.Lo(), bound.Hi()
	minLng, maxLng := lo.Lng.Degrees(), hi.Lng.Degrees()
	// The bound wraps the antimeridian or covers every longitude.
	if bound.Lng.IsInverted() || bound.Lng.IsFull() {
		minLng, maxLng = -180, 180
	}

	return rtreego.NewRectFromPoints(
		rtreego.Point{lo.Lat.Degrees(), minLng},
		rtreego.Point{hi.Lat.Degrees(), maxLng},
	)
}
