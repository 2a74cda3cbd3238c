package engine

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in degrees
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the local transform: scale, then rotation (X then Y then Z), then translation.
func (t Transform) Matrix() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X()))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y()))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z()))
	rot := rz.Mul4(ry).Mul4(rx)

	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	trans := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	return trans.Mul4(rot).Mul4(scale)
}

// WorldMatrix composes the local transforms of n and all of its ancestors.
func WorldMatrix(n Node) mgl32.Mat4 {
	o := n.Base()
	local := o.Transform.Matrix()
	if o.parent == nil {
		return local
	}
	return WorldMatrix(o.parent).Mul4(local)
}

// WorldPosition returns the node's origin in world space.
func WorldPosition(n Node) mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{}, WorldMatrix(n))
}
