package engine

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a scene graph node. The set of node kinds is closed: *Mesh and *Group.
type Node interface {
	Base() *Object
	// Clone returns a deep copy with no parent and no scene.
	Clone() Node
	isNode()
}

// Object holds the state every node kind shares.
type Object struct {
	Name        string
	Transform   Transform
	Visible     bool
	RenderOrder int

	parent *Group
	scene  *Scene
}

func newObject(name string) Object {
	return Object{
		Name:      name,
		Transform: NewTransform(),
		Visible:   true,
	}
}

func (o *Object) Base() *Object { return o }

// Parent returns the group holding this node, or nil for scene roots and detached nodes.
func (o *Object) Parent() *Group { return o.parent }

// Scene returns the scene the node's root belongs to, or nil.
func (o *Object) Scene() *Scene {
	if o.parent != nil {
		return o.parent.Scene()
	}
	return o.scene
}

func (o *Object) isNode() {}

// cloneObject copies shared state without the graph links.
func (o *Object) cloneObject() Object {
	c := *o
	c.parent = nil
	c.scene = nil
	return c
}

// Geometry is a box in the mesh's local space.
type Geometry struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBoxGeometry returns a box of the given size centered on the origin.
func NewBoxGeometry(size mgl32.Vec3) Geometry {
	half := size.Mul(0.5)
	return Geometry{Min: half.Mul(-1), Max: half}
}

// Translate offsets the geometry inside its local frame.
func (g Geometry) Translate(offset mgl32.Vec3) Geometry {
	return Geometry{Min: g.Min.Add(offset), Max: g.Max.Add(offset)}
}

func (g Geometry) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{g.Min.X(), g.Min.Y(), g.Min.Z()},
		{g.Max.X(), g.Min.Y(), g.Min.Z()},
		{g.Min.X(), g.Max.Y(), g.Min.Z()},
		{g.Max.X(), g.Max.Y(), g.Min.Z()},
		{g.Min.X(), g.Min.Y(), g.Max.Z()},
		{g.Max.X(), g.Min.Y(), g.Max.Z()},
		{g.Min.X(), g.Max.Y(), g.Max.Z()},
		{g.Max.X(), g.Max.Y(), g.Max.Z()},
	}
}

// Mesh is a leaf node: geometry drawn with a material.
type Mesh struct {
	Object
	Geometry Geometry
	Material Material
}

func NewMesh(name string, geometry Geometry, material Material) *Mesh {
	return &Mesh{
		Object:   newObject(name),
		Geometry: geometry,
		Material: material,
	}
}

func (m *Mesh) Clone() Node {
	c := &Mesh{
		Object:   m.cloneObject(),
		Geometry: m.Geometry,
	}
	if m.Material != nil {
		c.Material = m.Material.Clone()
	}
	return c
}

// Group is a composite node.
type Group struct {
	Object
	Children []Node
}

func NewGroup(name string) *Group {
	return &Group{
		Object:   newObject(name),
		Children: make([]Node, 0),
	}
}

func (g *Group) Clone() Node {
	c := &Group{
		Object:   g.cloneObject(),
		Children: make([]Node, 0, len(g.Children)),
	}
	for _, child := range g.Children {
		c.Add(child.Clone())
	}
	return c
}

// Add appends child, detaching it from wherever it was first.
func (g *Group) Add(child Node) {
	Detach(child)
	child.Base().parent = g
	g.Children = append(g.Children, child)
}

func (g *Group) Remove(child Node) bool {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Base().parent = nil
			return true
		}
	}
	return false
}

// Detach removes n from its parent group or from its scene's roots.
// It reports whether n was attached anywhere.
func Detach(n Node) bool {
	o := n.Base()
	if o.parent != nil {
		return o.parent.Remove(n)
	}
	if o.scene != nil {
		return o.scene.RemoveNode(n)
	}
	return false
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			Walk(child, fn)
		}
	}
}

// Meshes returns every leaf mesh under n, including n itself.
func Meshes(n Node) []*Mesh {
	var out []*Mesh
	Walk(n, func(c Node) bool {
		if m, ok := c.(*Mesh); ok {
			out = append(out, m)
		}
		return true
	})
	return out
}

// VisibleInTree reports whether n and all of its ancestors are visible.
func VisibleInTree(n Node) bool {
	for o := n.Base(); o != nil; {
		if !o.Visible {
			return false
		}
		if o.parent == nil {
			break
		}
		o = o.parent.Base()
	}
	return true
}
