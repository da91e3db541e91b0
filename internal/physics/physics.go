// Package physics provides 2D vector math and proximity tests.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// CirclesTouch checks if two circles touch or overlap. Contact is inclusive:
// circles exactly r1+r2 apart count as touching.
func CirclesTouch(a Vec2, ra float64, b Vec2, rb float64) bool {
	return Distance(a, b) <= ra+rb
}

// InRing reports whether p lies strictly between inner and outer distance from center.
func InRing(p, center Vec2, inner, outer float64) bool {
	d := Distance(p, center)
	return d > inner && d < outer
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Vec2
}

// Inset returns r shrunk by d on every side (negative d grows it).
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Vec2{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClampPoint moves p to the nearest point inside r.
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, r.Min.X, r.Max.X),
		Y: Clamp(p.Y, r.Min.Y, r.Max.Y),
	}
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}
