package engine

import (
	"image/color"

	"github.com/jinzhu/copier"
)

type MaterialKind int

const (
	MaterialBasic MaterialKind = iota
	MaterialPhong
	MaterialStandard
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialBasic:
		return "basic"
	case MaterialPhong:
		return "phong"
	case MaterialStandard:
		return "standard"
	}
	return "unknown"
}

// Material is the visual style of a mesh. The set of kinds is closed; callers
// that need a property go through the capability interfaces below instead of
// switching on the concrete type.
type Material interface {
	Kind() MaterialKind
	Clone() Material
	GetOpacity() float32
}

// Colored is implemented by materials with a base color.
type Colored interface {
	GetColor() color.RGBA
	SetColor(c color.RGBA)
}

// Emitter is implemented by materials with an emissive color.
type Emitter interface {
	GetEmissive() color.RGBA
	SetEmissive(c color.RGBA)
}

// BasicMaterial is an unlit flat color.
type BasicMaterial struct {
	Color       color.RGBA
	Opacity     float32
	Transparent bool
}

func NewBasicMaterial(c color.RGBA) *BasicMaterial {
	return &BasicMaterial{Color: c, Opacity: 1}
}

func (m *BasicMaterial) Kind() MaterialKind    { return MaterialBasic }
func (m *BasicMaterial) GetColor() color.RGBA  { return m.Color }
func (m *BasicMaterial) SetColor(c color.RGBA) { m.Color = c }
func (m *BasicMaterial) GetOpacity() float32   { return m.Opacity }
func (m *BasicMaterial) Clone() Material       { return cloneMaterial(m) }

// PhongMaterial is a lit material with specular shininess.
type PhongMaterial struct {
	Color             color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float32
	Shininess         float32
	Opacity           float32
	Transparent       bool
	Textures          map[string]string // slot -> texture path
}

func NewPhongMaterial(c color.RGBA) *PhongMaterial {
	return &PhongMaterial{Color: c, Shininess: 30, Opacity: 1}
}

func (m *PhongMaterial) Kind() MaterialKind       { return MaterialPhong }
func (m *PhongMaterial) GetColor() color.RGBA     { return m.Color }
func (m *PhongMaterial) SetColor(c color.RGBA)    { m.Color = c }
func (m *PhongMaterial) GetEmissive() color.RGBA  { return m.Emissive }
func (m *PhongMaterial) SetEmissive(c color.RGBA) { m.Emissive = c }
func (m *PhongMaterial) GetOpacity() float32      { return m.Opacity }
func (m *PhongMaterial) Clone() Material          { return cloneMaterial(m) }

// StandardMaterial is a metallic/roughness material.
type StandardMaterial struct {
	Color             color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float32
	Metallic          float32
	Roughness         float32
	Opacity           float32
	Transparent       bool
	Textures          map[string]string
}

func NewStandardMaterial(c color.RGBA) *StandardMaterial {
	return &StandardMaterial{Color: c, Roughness: 0.5, Opacity: 1}
}

func (m *StandardMaterial) Kind() MaterialKind       { return MaterialStandard }
func (m *StandardMaterial) GetColor() color.RGBA     { return m.Color }
func (m *StandardMaterial) SetColor(c color.RGBA)    { m.Color = c }
func (m *StandardMaterial) GetEmissive() color.RGBA  { return m.Emissive }
func (m *StandardMaterial) SetEmissive(c color.RGBA) { m.Emissive = c }
func (m *StandardMaterial) GetOpacity() float32      { return m.Opacity }
func (m *StandardMaterial) Clone() Material          { return cloneMaterial(m) }

// deepCopy copies src into dst, following pointers and maps.
var deepCopy = func(dst, src any) error {
	return copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}

// cloneMaterial deep copies src so texture maps are not shared. If the deep
// copy fails the clone gets src's fields by value.
func cloneMaterial[M any](src *M) *M {
	dst := new(M)
	if err := deepCopy(dst, src); err != nil {
		*dst = *src
	}
	return dst
}

// ColorOf returns the base color of m, or white when m has none.
func ColorOf(m Material) color.RGBA {
	if c, ok := m.(Colored); ok {
		return c.GetColor()
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
