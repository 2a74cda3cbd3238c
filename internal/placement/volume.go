package placement

import (
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/physics"
)

// Volume is a permitted placement region in world space.
type Volume struct {
	Name    string
	Corners [8]mgl32.Vec3
	Bounds  physics.AABB
}

// VolumeOptions controls how a 2D area becomes a 3D volume.
type VolumeOptions struct {
	Depth  float32    // extrusion along the face's local -Z
	Offset mgl32.Vec3 // world translation applied last
}

func DefaultVolumeOptions() VolumeOptions {
	return VolumeOptions{Depth: 3, Offset: mgl32.Vec3{0, -2, 0}}
}

// NewVolume extrudes the rectangle [min,max] (in the face's local XY plane)
// by opts.Depth, turns it to face normal and moves it by opts.Offset.
func NewVolume(name string, normal mgl32.Vec3, min, max mgl32.Vec2, opts VolumeOptions) Volume {
	basis := faceBasis(normal)
	world := mgl32.Translate3D(opts.Offset.X(), opts.Offset.Y(), opts.Offset.Z()).Mul4(basis)

	local := physics.NewAABBFromPoints(
		mgl32.Vec3{min.X(), min.Y(), 0},
		mgl32.Vec3{max.X(), max.Y(), -opts.Depth},
	)

	v := Volume{Name: name}
	for i, c := range local.Corners() {
		v.Corners[i] = mgl32.TransformCoordinate(c, world)
	}
	v.Bounds = physics.NewAABBFromPoints(v.Corners[:]...)
	return v
}

// faceBasis builds the rotation that looks from the origin toward normal
// with +Y up: local -Z points along normal. A normal parallel to up is
// nudged so the basis stays well defined.
func faceBasis(normal mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}

	z := normal.Mul(-1)
	if z.Len() == 0 {
		z = mgl32.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() == 0 {
		z[2] += 1e-4
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
}
