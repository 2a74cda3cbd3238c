// Package viewport ties a screen rectangle, a camera and a scene together
// and turns shared pointer state into per-viewport drag input.
package viewport

import (
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/drag"
)

// Rect is a viewport area in window pixels, origin top-left.
type Rect struct {
	X, Y, W, H float32
}

// NDC maps a window pixel to normalized coordinates of r: [-1,1] on both
// axes with +Y up. inBounds is false when the pixel lies outside r.
func (r Rect) NDC(px, py float32) (ndc mgl32.Vec2, inBounds bool) {
	if r.W <= 0 || r.H <= 0 {
		return mgl32.Vec2{}, false
	}
	x := (px-r.X)/r.W*2 - 1
	y := -((py-r.Y)/r.H*2 - 1)
	inBounds = x >= -1 && x <= 1 && y >= -1 && y <= 1
	return mgl32.Vec2{x, y}, inBounds
}

func (r Rect) Aspect() float32 {
	if r.H == 0 {
		return 1
	}
	return r.W / r.H
}

// Pointer is the window-wide mouse state sampled once per frame.
type Pointer struct {
	X, Y    float32
	Pressed bool
	Held    bool
}

// Input converts p into drag input relative to r.
func (r Rect) Input(p Pointer) drag.Input {
	ndc, in := r.NDC(p.X, p.Y)
	return drag.Input{NDC: ndc, Pressed: p.Pressed, Held: p.Held, InBounds: in}
}

// PointerTracker derives the press edge from a level signal for callers that
// only know whether the button is down.
type PointerTracker struct {
	wasDown bool
}

func (t *PointerTracker) Sample(x, y float32, down bool) Pointer {
	p := Pointer{X: x, Y: y, Held: down, Pressed: down && !t.wasDown}
	t.wasDown = down
	return p
}
