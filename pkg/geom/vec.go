// Package geom provides the pixel-space vector type shared by the canvas
// core. Positions are 3-component: X/Y are canvas pixels, Z is a layering
// hint (ring index in 2D, a real depth offset in 3D) rather than a physical
// distance.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is an immutable pixel-space position. The math routes through
// gonum's r3 package; Vec3 itself carries wire-friendly lowercase JSON keys.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V constructs a Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) r3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(v r3.Vec) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns a+b.
func Add(a, b Vec3) Vec3 {
	return fromR3(r3.Add(a.r3(), b.r3()))
}

// Sub returns a-b.
func Sub(a, b Vec3) Vec3 {
	return fromR3(r3.Sub(a.r3(), b.r3()))
}

// Scale returns v scaled by f.
func Scale(f float64, v Vec3) Vec3 {
	return fromR3(r3.Scale(f, v.r3()))
}

// Length returns the Euclidean norm of v.
func Length(v Vec3) float64 {
	return r3.Norm(v.r3())
}

// Dist returns the distance between a and b.
func Dist(a, b Vec3) float64 {
	return r3.Norm(r3.Sub(a.r3(), b.r3()))
}

// WithZ returns v with its Z component replaced. Dragging in 2D moves X/Y
// and must leave the layering hint untouched.
func (v Vec3) WithZ(z float64) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

// DistXY returns the planar distance between a and b, ignoring Z.
func DistXY(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
