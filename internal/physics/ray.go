package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon is the smallest |dot(dir, normal)| treated as non-parallel.
const parallelEpsilon = 1e-6

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // unit length
}

func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectAABB returns the ray parameter of the first hit with box, using the
// slab method. A ray starting inside the box hits at its exit point.
func (r Ray) IntersectAABB(box AABB) (float32, bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Direction[axis]
		lo := box.Min[axis]
		hi := box.Max[axis]

		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Plane is the set of points p with dot(Normal, p) == dot(Normal, Point).
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// HorizontalPlane returns the plane y = height facing up.
func HorizontalPlane(height float32) Plane {
	return Plane{Point: mgl32.Vec3{0, height, 0}, Normal: mgl32.Vec3{0, 1, 0}}
}

// IntersectPlane returns the hit point, or false when the ray is parallel to
// the plane or the plane is behind the ray origin.
func (r Ray) IntersectPlane(p Plane) (mgl32.Vec3, bool) {
	denom := r.Direction.Dot(p.Normal)
	if math32.Abs(denom) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}
