// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package terrain

import "github.com/gogpu/worldwind/geom"

// PlateCarree maps plane coordinates to positions with a fixed number of
// degrees per model unit. Model y grows southward, matching screen rows.
type PlateCarree struct {
	// Origin is the position at model (0, 0).
	Origin geom.Position

	// DegreesPerUnit is the angular size of one model unit.
	DegreesPerUnit float64
}

// CartesianToGeographic converts a model point to a position. Altitude is
// the point's z.
func (g PlateCarree) CartesianToGeographic(p geom.Vec3) geom.Position {
	return geom.Position{
		Latitude:  clampLatitude(g.Origin.Latitude - p[1]*g.DegreesPerUnit),
		Longitude: normalizeLongitude(g.Origin.Longitude + p[0]*g.DegreesPerUnit),
		Altitude:  g.Origin.Altitude + p[2],
	}
}

func clampLatitude(lat float64) float64 {
	return max(-90, min(90, lat))
}

func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
