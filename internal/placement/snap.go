package placement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Grid describes the placement lattice. Offset is a fraction of Cell; an
// offset of 0.5 puts lattice points at cell centres.
type Grid struct {
	Cell   float32
	Offset float32
}

func DefaultGrid() Grid {
	return Grid{Cell: 1, Offset: 0.5}
}

// Snap rounds v to the nearest lattice point. A non-positive cell disables
// snapping.
func (g Grid) Snap(v float32) float32 {
	if g.Cell <= 0 {
		return v
	}
	shift := g.Offset * g.Cell
	return math32.Floor((v+shift)/g.Cell+0.5)*g.Cell - shift
}

// SnapXZ snaps the horizontal components of p and keeps Y.
func (g Grid) SnapXZ(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{g.Snap(p.X()), p.Y(), g.Snap(p.Z())}
}
