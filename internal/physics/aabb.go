package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns an inverted box that any ExpandByPoint call will replace.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size mgl32.Vec3) AABB {
	half := mgl32.Vec3{math32.Abs(size.X()) / 2, math32.Abs(size.Y()) / 2, math32.Abs(size.Z()) / 2}
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// NewAABBFromPoints returns the smallest box containing every point.
func NewAABBFromPoints(points ...mgl32.Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.ExpandByPoint(p)
	}
	return b
}

func (a AABB) IsEmpty() bool {
	return a.Max.X() < a.Min.X() || a.Max.Y() < a.Min.Y() || a.Max.Z() < a.Min.Z()
}

func (a AABB) ExpandByPoint(p mgl32.Vec3) AABB {
	return AABB{
		Min: mgl32.Vec3{math32.Min(a.Min.X(), p.X()), math32.Min(a.Min.Y(), p.Y()), math32.Min(a.Min.Z(), p.Z())},
		Max: mgl32.Vec3{math32.Max(a.Max.X(), p.X()), math32.Max(a.Max.Y(), p.Y()), math32.Max(a.Max.Z(), p.Z())},
	}
}

// Union returns the smallest box containing both a and b. Empty boxes are ignored.
func (a AABB) Union(b AABB) AABB {
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}
	return a.ExpandByPoint(b.Min).ExpandByPoint(b.Max)
}

func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

func (a AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{a.Min.X(), a.Min.Y(), a.Min.Z()},
		{a.Max.X(), a.Min.Y(), a.Min.Z()},
		{a.Min.X(), a.Max.Y(), a.Min.Z()},
		{a.Max.X(), a.Max.Y(), a.Min.Z()},
		{a.Min.X(), a.Min.Y(), a.Max.Z()},
		{a.Max.X(), a.Min.Y(), a.Max.Z()},
		{a.Min.X(), a.Max.Y(), a.Max.Z()},
		{a.Max.X(), a.Max.Y(), a.Max.Z()},
	}
}

// Transform returns the axis-aligned bounds of a after applying m.
func (a AABB) Transform(m mgl32.Mat4) AABB {
	if a.IsEmpty() {
		return a
	}
	out := EmptyAABB()
	for _, c := range a.Corners() {
		out = out.ExpandByPoint(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// Intersects reports whether the boxes overlap. Touching faces count as overlap.
func (a AABB) Intersects(b AABB) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Contains reports whether b lies entirely inside a (boundaries included).
func (a AABB) Contains(b AABB) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Min.X() <= b.Min.X() && b.Max.X() <= a.Max.X() &&
		a.Min.Y() <= b.Min.Y() && b.Max.Y() <= a.Max.Y() &&
		a.Min.Z() <= b.Min.Z() && b.Max.Z() <= a.Max.Z()
}

func (a AABB) ContainsPoint(p mgl32.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}
