// Package assets holds the catalog of placeable assets: their template
// objects, the areas they may be dropped into, and per-asset UI state.
package assets

import (
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/engine"
)

// Area is a rectangle on one face of the placement space. Min and Max are
// corners in the face's local XY frame; Normal is the direction the face
// looks.
type Area struct {
	Name   string
	Normal mgl32.Vec3
	Min    mgl32.Vec2
	Max    mgl32.Vec2
}

type Asset struct {
	ID   int
	Name string
	// Object is the template every placed instance is cloned from. It is
	// never added to a scene itself.
	Object engine.Node
	Areas  []Area
	// Unrestricted assets may be dropped anywhere when they declare no areas.
	Unrestricted bool

	Visible bool
	Focused bool
	// ViewerPos is a pixel position inside the catalog viewport. Nil means
	// the catalog lays the asset out itself.
	ViewerPos *mgl32.Vec2
}
