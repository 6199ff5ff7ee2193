// math/latlong.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"strconv"
)

const NMPerLatitude = 60

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the point in decimal degrees.
func (p Point2LL) DDString() string {
	return strconv.FormatFloat(float64(p[1]), 'f', 6, 32) + "," +
		strconv.FormatFloat(float64(p[0]), 'f', 6, 32)
}

// NMPerLongitudeAt returns the number of nautical miles per degree of
// longitude at the latitude of the given point.
func NMPerLongitudeAt(p Point2LL) float32 {
	return 60 * Cos(Radians(p[1]))
}

// NMDistance2LL returns the distance in nautical miles between two
// provided lat-long coordinates.
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	const R = 6371000 // metres
	rad := func(d float32) float64 { return float64(d) / 180 * gomath.Pi }
	lat1, lon1 := rad(a[1]), rad(a[0])
	lat2, lon2 := rad(b[1]), rad(b[0])
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	return float32(R * c * 0.000539957)
}

// Heading2LL returns the heading from the point |from| to the point |to|
// in degrees. The provided points should be in latitude-longitude
// coordinates and the provided magnetic correction is applied to the
// result.
func Heading2LL(from Point2LL, to Point2LL, nmPerLongitude float32, magCorrection float32) float32 {
	v := Point2LL{to[0] - from[0], to[1] - from[1]}

	// atan2() normally measures w.r.t. the +x axis with angles positive
	// counter-clockwise; passing (x,y) measures w.r.t. +y, clockwise.
	angle := Degrees(Atan2(v[0]*nmPerLongitude, v[1]*NMPerLatitude))
	return NormalizeHeading(angle + magCorrection)
}
