package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// metersPerDegreeLatitude is the mean length of one degree of latitude.
const metersPerDegreeLatitude = 111320.0

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports whether the coordinate lies within the valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %f", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %f", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// Point converts the coordinate to an orb point (lon, lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// CoordinateFromPoint converts an orb point back to a Coordinate.
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Region is a geographic area described by a center and its north-south and east-west extent in meters.
type Region struct {
	Center             Coordinate `json:"center"`
	LatitudinalMeters  float64    `json:"latitudinal_meters"`
	LongitudinalMeters float64    `json:"longitudinal_meters"`
}

// NewRegion returns a square region of the given size centered on c.
func NewRegion(c Coordinate, meters float64) Region {
	return Region{Center: c, LatitudinalMeters: meters, LongitudinalMeters: meters}
}

// Span returns the region extent in degrees of latitude and longitude.
func (r Region) Span() (latDelta, lonDelta float64) {
	latDelta = r.LatitudinalMeters / metersPerDegreeLatitude
	cos := math.Cos(r.Center.Latitude * math.Pi / 180)
	if cos < 1e-9 {
		return latDelta, 360
	}
	lonDelta = r.LongitudinalMeters / (metersPerDegreeLatitude * cos)
	return latDelta, math.Min(lonDelta, 360)
}

// Bound returns the bounding box covered by the region, clamped to valid coordinates.
func (r Region) Bound() orb.Bound {
	latDelta, lonDelta := r.Span()
	minLat := math.Max(r.Center.Latitude-latDelta/2, -90)
	maxLat := math.Min(r.Center.Latitude+latDelta/2, 90)
	minLon := math.Max(r.Center.Longitude-lonDelta/2, -180)
	maxLon := math.Min(r.Center.Longitude+lonDelta/2, 180)
	return orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}
}

// Bound is a JSON-friendly bounding box.
type Bound struct {
	SouthWest Coordinate `json:"south_west"`
	NorthEast Coordinate `json:"north_east"`
}

// BoundFromOrb converts an orb bound to a Bound.
func BoundFromOrb(b orb.Bound) Bound {
	return Bound{
		SouthWest: CoordinateFromPoint(b.Min),
		NorthEast: CoordinateFromPoint(b.Max),
	}
}

// Orb converts the bound back to an orb bound.
func (b Bound) Orb() orb.Bound {
	return orb.Bound{Min: b.SouthWest.Point(), Max: b.NorthEast.Point()}
}
