package geom

import "fmt"

// Position is a geographic location: latitude and longitude in degrees and
// altitude in meters above the ellipsoid.
type Position struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// String formats the position as "(lat, lon, alt)".
func (p Position) String() string {
	return fmt.Sprintf("(%.6f°, %.6f°, %.1fm)", p.Latitude, p.Longitude, p.Altitude)
}
