package assets

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"placer/internal/engine"
)

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Assets []assetDef `yaml:"assets"`
}

type assetDef struct {
	ID           int        `yaml:"id"`
	Name         string     `yaml:"name"`
	Object       *objectDef `yaml:"object"`
	Areas        []areaDef  `yaml:"areas"`
	Unrestricted bool       `yaml:"unrestricted"`
	Visible      *bool      `yaml:"visible"`
	Focused      bool       `yaml:"focused"`
	ViewerPos    []float32  `yaml:"viewer_pos"`
}

type objectDef struct {
	Type     string      `yaml:"type"` // "mesh" (default) or "group"
	Name     string      `yaml:"name"`
	Size     []float32   `yaml:"size"`
	Color    string      `yaml:"color"`
	Material string      `yaml:"material"` // basic, phong, standard
	Position []float32   `yaml:"position"`
	Rotation []float32   `yaml:"rotation"`
	Scale    []float32   `yaml:"scale"`
	Children []objectDef `yaml:"children"`
}

type areaDef struct {
	Name   string    `yaml:"name"`
	Normal []float32 `yaml:"normal"`
	Min    []float32 `yaml:"min"`
	Max    []float32 `yaml:"max"`
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) ([]*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	list, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return list, nil
}

func ParseCatalog(data []byte) ([]*Asset, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	seen := make(map[int]bool, len(f.Assets))
	out := make([]*Asset, 0, len(f.Assets))
	for i, def := range f.Assets {
		if seen[def.ID] {
			return nil, fmt.Errorf("assets[%d]: %w: %d", i, ErrDuplicateAsset, def.ID)
		}
		seen[def.ID] = true

		a, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("assets[%d] (%s): %w", i, def.Name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (d assetDef) build() (*Asset, error) {
	if d.Object == nil {
		return nil, fmt.Errorf("missing object")
	}
	obj, err := d.Object.build(d.Name)
	if err != nil {
		return nil, err
	}

	a := &Asset{
		ID:           d.ID,
		Name:         d.Name,
		Object:       obj,
		Unrestricted: d.Unrestricted,
		Visible:      d.Visible == nil || *d.Visible,
		Focused:      d.Focused,
	}
	if d.ViewerPos != nil {
		p, err := vec2(d.ViewerPos, "viewer_pos")
		if err != nil {
			return nil, err
		}
		a.ViewerPos = &p
	}

	for i, ad := range d.Areas {
		area, err := ad.build()
		if err != nil {
			return nil, fmt.Errorf("areas[%d]: %w", i, err)
		}
		a.Areas = append(a.Areas, area)
	}
	return a, nil
}

func (d areaDef) build() (Area, error) {
	normal, err := vec3(d.Normal, mgl32.Vec3{0, 1, 0}, "normal")
	if err != nil {
		return Area{}, err
	}
	if normal.Len() == 0 {
		return Area{}, fmt.Errorf("normal must not be zero")
	}
	min, err := vec2(d.Min, "min")
	if err != nil {
		return Area{}, err
	}
	max, err := vec2(d.Max, "max")
	if err != nil {
		return Area{}, err
	}
	return Area{Name: d.Name, Normal: normal, Min: min, Max: max}, nil
}

func (d objectDef) build(fallbackName string) (engine.Node, error) {
	name := d.Name
	if name == "" {
		name = fallbackName
	}

	var n engine.Node
	switch strings.ToLower(d.Type) {
	case "group":
		g := engine.NewGroup(name)
		for i, child := range d.Children {
			c, err := child.build(fmt.Sprintf("%s/%d", name, i))
			if err != nil {
				return nil, fmt.Errorf("children[%d]: %w", i, err)
			}
			g.Add(c)
		}
		n = g
	case "", "mesh":
		if len(d.Children) > 0 {
			return nil, fmt.Errorf("mesh %q cannot have children", name)
		}
		size, err := vec3(d.Size, mgl32.Vec3{1, 1, 1}, "size")
		if err != nil {
			return nil, err
		}
		mat, err := material(d.Material, d.Color)
		if err != nil {
			return nil, err
		}
		n = engine.NewMesh(name, engine.NewBoxGeometry(size), mat)
	default:
		return nil, fmt.Errorf("unknown object type %q", d.Type)
	}

	t := &n.Base().Transform
	var err error
	if t.Position, err = vec3(d.Position, mgl32.Vec3{}, "position"); err != nil {
		return nil, err
	}
	if t.Rotation, err = vec3(d.Rotation, mgl32.Vec3{}, "rotation"); err != nil {
		return nil, err
	}
	if t.Scale, err = vec3(d.Scale, mgl32.Vec3{1, 1, 1}, "scale"); err != nil {
		return nil, err
	}
	return n, nil
}

func material(kind, colorName string) (engine.Material, error) {
	c := engine.White
	if colorName != "" {
		var ok bool
		if c, ok = engine.LookupColor(colorName); !ok {
			return nil, fmt.Errorf("unknown color %q", colorName)
		}
	}
	switch strings.ToLower(kind) {
	case "basic":
		return engine.NewBasicMaterial(c), nil
	case "", "phong":
		return engine.NewPhongMaterial(c), nil
	case "standard":
		return engine.NewStandardMaterial(c), nil
	default:
		return nil, fmt.Errorf("unknown material %q", kind)
	}
}

func vec3(v []float32, def mgl32.Vec3, field string) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mgl32.Vec3{}, fmt.Errorf("%s: want 3 numbers, got %d", field, len(v))
	}
}

func vec2(v []float32, field string) (mgl32.Vec2, error) {
	if len(v) != 2 {
		return mgl32.Vec2{}, fmt.Errorf("%s: want 2 numbers, got %d", field, len(v))
	}
	return mgl32.Vec2{v[0], v[1]}, nil
}
