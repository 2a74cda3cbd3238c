package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/physics"
)

type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera is a look-at camera that turns normalized viewport coordinates into
// world rays. It holds no input handling; callers move it.
type Camera struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Fovy       float32 // degrees, vertical; for Orthographic the visible height
	Aspect     float32 // width / height
	Projection Projection
}

func New(pos, target mgl32.Vec3) *Camera {
	return &Camera{
		Position:   pos,
		Target:     target,
		Up:         mgl32.Vec3{0, 1, 0},
		Fovy:       45,
		Aspect:     1,
		Projection: Perspective,
	}
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// basis returns the right and true-up vectors of the view.
func (c *Camera) basis() (forward, right, up mgl32.Vec3) {
	forward = c.Forward()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return
}

// Ray implements physics.RayCaster. ndc is in [-1,1] on both axes with +Y up
// and the origin at the viewport centre.
func (c *Camera) Ray(ndc mgl32.Vec2) physics.Ray {
	forward, right, up := c.basis()

	if c.Projection == Orthographic {
		halfH := c.Fovy / 2
		halfW := halfH * c.Aspect
		origin := c.Position.
			Add(right.Mul(ndc.X() * halfW)).
			Add(up.Mul(ndc.Y() * halfH))
		return physics.NewRay(origin, forward)
	}

	tanHalf := math32.Tan(mgl32.DegToRad(c.Fovy) / 2)
	dir := forward.
		Add(right.Mul(ndc.X() * c.Aspect * tanHalf)).
		Add(up.Mul(ndc.Y() * tanHalf))
	return physics.NewRay(c.Position, dir)
}

// Orbit rotates the camera around its target by yaw and pitch degrees.
// Pitch is clamped so the view never flips over the pole.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.Position.Sub(c.Target)
	dist := offset.Len()
	if dist == 0 {
		return
	}

	curYaw := math32.Atan2(offset.Z(), offset.X())
	curPitch := math32.Asin(offset.Y() / dist)

	curYaw += mgl32.DegToRad(yaw)
	curPitch += mgl32.DegToRad(pitch)

	limit := mgl32.DegToRad(89)
	if curPitch > limit {
		curPitch = limit
	}
	if curPitch < -limit {
		curPitch = -limit
	}

	c.Position = c.Target.Add(mgl32.Vec3{
		dist * math32.Cos(curPitch) * math32.Cos(curYaw),
		dist * math32.Sin(curPitch),
		dist * math32.Cos(curPitch) * math32.Sin(curYaw),
	})
}

// Zoom moves the camera along its view direction, never closer to the target
// than minDist.
func (c *Camera) Zoom(amount, minDist float32) {
	offset := c.Position.Sub(c.Target)
	dist := offset.Len() - amount
	if dist < minDist {
		dist = minDist
	}
	c.Position = c.Target.Add(offset.Normalize().Mul(dist))
}
