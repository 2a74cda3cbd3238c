package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/engine"
)

// RayCaster turns a normalized pointer coordinate into a world-space ray.
type RayCaster interface {
	Ray(ndc mgl32.Vec2) Ray
}

type RaycastHit struct {
	Node     engine.Node  // the candidate that was hit
	Mesh     *engine.Mesh // the leaf mesh inside Node that was hit
	Point    mgl32.Vec3
	Distance float32
}

// Query resolves picks and plane projections for one camera. It keeps no
// state between calls.
type Query struct {
	Camera RayCaster
}

func NewQuery(cam RayCaster) *Query {
	return &Query{Camera: cam}
}

// Pick casts a ray through ndc and returns the nearest candidate it hits.
func (q *Query) Pick(ndc mgl32.Vec2, candidates []engine.Node) (RaycastHit, bool) {
	return Raycast(q.Camera.Ray(ndc), candidates)
}

// Project intersects the ray through ndc with plane.
func (q *Query) Project(ndc mgl32.Vec2, plane Plane) (mgl32.Vec3, bool) {
	return q.Camera.Ray(ndc).IntersectPlane(plane)
}

// Raycast checks every visible leaf mesh of every candidate and returns the
// closest hit. A later candidate only wins with a strictly smaller distance,
// so on exact ties the earliest candidate in the slice is returned.
func Raycast(ray Ray, candidates []engine.Node) (RaycastHit, bool) {
	var closest RaycastHit
	hit := false

	for _, c := range candidates {
		if c == nil || !engine.VisibleInTree(c) {
			continue
		}
		engine.Walk(c, func(n engine.Node) bool {
			if !n.Base().Visible {
				return false
			}
			m, ok := n.(*engine.Mesh)
			if !ok {
				return true
			}
			t, ok := ray.IntersectAABB(MeshBounds(m))
			if !ok {
				return true
			}
			if !hit || t < closest.Distance {
				closest = RaycastHit{Node: c, Mesh: m, Point: ray.At(t), Distance: t}
				hit = true
			}
			return true
		})
	}

	return closest, hit
}
