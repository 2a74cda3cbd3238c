// Package highlight recolors scene nodes with a translucent overlay and
// restores their original look afterwards.
package highlight

import (
	"image/color"

	"placer/internal/engine"
)

type Tier int

const (
	Hover Tier = iota
	Valid
	Invalid
)

func (t Tier) String() string {
	switch t {
	case Hover:
		return "hover"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

type Palette struct {
	Hover   color.RGBA
	Valid   color.RGBA
	Invalid color.RGBA
}

// DefaultPalette uses blue for hover and valid, and orange for invalid.
func DefaultPalette() Palette {
	return Palette{
		Hover:   color.RGBA{0x00, 0x00, 0xff, 0xff},
		Valid:   color.RGBA{0x00, 0x00, 0xff, 0xff},
		Invalid: color.RGBA{0xdb, 0x55, 0x16, 0xff},
	}
}

func (p Palette) color(t Tier) color.RGBA {
	switch t {
	case Valid:
		return p.Valid
	case Invalid:
		return p.Invalid
	default:
		return p.Hover
	}
}

type capture struct {
	material    engine.Material
	renderOrder int
	overlay     *engine.BasicMaterial
	tier        Tier
}

// Controller tracks which meshes currently wear an overlay. The original
// material and render order of a mesh are captured on the first Apply and
// kept until Clear, so any sequence of Apply calls followed by one Clear
// leaves the mesh exactly as it was.
type Controller struct {
	Palette     Palette
	Opacity     float32
	RenderRaise int

	captures map[*engine.Mesh]*capture
}

func NewController(p Palette, opacity float32, renderRaise int) *Controller {
	return &Controller{
		Palette:     p,
		Opacity:     opacity,
		RenderRaise: renderRaise,
		captures:    make(map[*engine.Mesh]*capture),
	}
}

// Apply puts the tier overlay on every leaf mesh under n.
func (c *Controller) Apply(n engine.Node, t Tier) {
	if n == nil {
		return
	}
	col := c.Palette.color(t)
	for _, m := range engine.Meshes(n) {
		cp, ok := c.captures[m]
		if !ok {
			overlay := engine.NewBasicMaterial(col)
			overlay.Opacity = c.Opacity
			overlay.Transparent = true
			cp = &capture{
				material:    m.Material,
				renderOrder: m.RenderOrder,
				overlay:     overlay,
			}
			c.captures[m] = cp
		}
		cp.tier = t
		cp.overlay.SetColor(col)
		m.Material = cp.overlay
		m.RenderOrder = cp.renderOrder + c.RenderRaise
	}
}

// Clear restores every captured mesh under n. Meshes that were never
// highlighted are left alone.
func (c *Controller) Clear(n engine.Node) {
	if n == nil {
		return
	}
	for _, m := range engine.Meshes(n) {
		cp, ok := c.captures[m]
		if !ok {
			continue
		}
		m.Material = cp.material
		m.RenderOrder = cp.renderOrder
		delete(c.captures, m)
	}
}

// Highlighted reports whether any mesh under n wears an overlay.
func (c *Controller) Highlighted(n engine.Node) bool {
	_, ok := c.TierOf(n)
	return ok
}

// TierOf returns the tier of the first highlighted mesh under n.
func (c *Controller) TierOf(n engine.Node) (Tier, bool) {
	if n == nil {
		return 0, false
	}
	for _, m := range engine.Meshes(n) {
		if cp, ok := c.captures[m]; ok {
			return cp.tier, true
		}
	}
	return 0, false
}

// Forget drops captures for meshes under n without restoring them. Used when
// the node is being discarded.
func (c *Controller) Forget(n engine.Node) {
	for _, m := range engine.Meshes(n) {
		delete(c.captures, m)
	}
}

func (c *Controller) Len() int { return len(c.captures) }
