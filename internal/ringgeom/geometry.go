// Package ringgeom converts ring values into the angular extents and
// Cartesian dot positions the Surface needs to draw the dual-ring
// gauge. Pure functions, no state.
package ringgeom

import "math"

const (
	// StartAngle is the 7-o'clock position where every ring arc begins.
	StartAngle = 210.0
	// SweepMax is the maximum angular sweep, reached at value 127.
	SweepMax = 240.0

	InnerRadius  = 70.0
	OuterRadius  = 103.0
	Extra1Radius = 120.0
	Extra2Radius = 127.0
	DotDiameter  = 8.0
)

// Extent returns the signed angular sweep in degrees for a value in
// [0,127]: 0 at v=0, -240 at v=127, monotone decreasing in between.
// Values outside [0,127] are clamped first.
func Extent(v int) float64 {
	v = Clamp(v)
	return -SweepMax * (float64(v) / 127.0)
}

// Clamp restricts v to [0,127].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return v
}

// Point is a Cartesian screen coordinate.
type Point struct {
	X, Y float64
}

// PeakDot returns the position of the peak dot for a value's arc on the
// given radius, centered at (cx, cy). The angle convention matches the
// canvas: extent sweeps clockwise from StartAngle, and Y is inverted
// because screen coordinates grow downward.
func PeakDot(cx, cy, radius float64, v int) Point {
	theta := StartAngle + Extent(v)
	rad := theta * math.Pi / 180.0
	return Point{
		X: cx + radius*math.Cos(-rad),
		Y: cy + radius*math.Sin(-rad),
	}
}
