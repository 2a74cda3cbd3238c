package engine

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshCloneIsDeep(t *testing.T) {
	mat := NewPhongMaterial(Red)
	mat.Textures = map[string]string{"diffuse": "wood.png"}
	mesh := NewMesh("Crate", NewBoxGeometry(mgl32.Vec3{1, 2, 1}), mat)
	mesh.Transform.Position = mgl32.Vec3{1, 0, 3}

	clone := mesh.Clone().(*Mesh)

	assert.NotSame(t, mesh, clone)
	assert.Equal(t, mesh.Geometry, clone.Geometry)
	assert.Equal(t, mesh.Transform, clone.Transform)
	require.NotSame(t, mesh.Material, clone.Material)

	cloneMat := clone.Material.(*PhongMaterial)
	cloneMat.Textures["diffuse"] = "metal.png"
	cloneMat.SetColor(Blue)

	assert.Equal(t, "wood.png", mat.Textures["diffuse"])
	assert.Equal(t, Red, mat.Color)
}

func TestCloneDropsGraphLinks(t *testing.T) {
	scene := NewScene("Test")
	group := NewGroup("Parent")
	child := newBox("Child")
	group.Add(child)
	scene.AddNode(group)

	clone := child.Clone()

	assert.Nil(t, clone.Base().Parent())
	assert.Nil(t, clone.Base().Scene())
}

func TestGroupCloneRecurses(t *testing.T) {
	root := NewGroup("Bench")
	seat := newBox("Seat")
	legs := NewGroup("Legs")
	legs.Add(newBox("LegA"))
	legs.Add(newBox("LegB"))
	root.Add(seat)
	root.Add(legs)

	clone := root.Clone().(*Group)

	require.Len(t, clone.Children, 2)
	cloneLegs := clone.Children[1].(*Group)
	require.Len(t, cloneLegs.Children, 2)
	assert.Same(t, clone, cloneLegs.Parent())
	assert.NotSame(t, legs.Children[0], cloneLegs.Children[0])
	assert.Len(t, Meshes(clone), 3)
	assert.Len(t, Meshes(root), 3)
}

func TestMaterialCapabilities(t *testing.T) {
	materials := []Material{
		NewBasicMaterial(Red),
		NewPhongMaterial(Red),
		NewStandardMaterial(Red),
	}
	for _, m := range materials {
		t.Run(m.Kind().String(), func(t *testing.T) {
			c, ok := m.(Colored)
			require.True(t, ok)
			assert.Equal(t, Red, c.GetColor())

			_, emits := m.(Emitter)
			assert.Equal(t, m.Kind() != MaterialBasic, emits)

			clone := m.Clone()
			assert.NotSame(t, m, clone)
			assert.Equal(t, m.Kind(), clone.Kind())
			assert.Equal(t, Red, ColorOf(clone))
			assert.Equal(t, m.GetOpacity(), clone.GetOpacity())
		})
	}
}

func TestMaterialCloneSurvivesCopyFailure(t *testing.T) {
	saved := deepCopy
	deepCopy = func(dst, src any) error { return errors.New("copy failed") }
	t.Cleanup(func() { deepCopy = saved })

	mat := NewStandardMaterial(Green)
	mat.Metallic = 0.7
	mat.Textures = map[string]string{"normal": "bumps.png"}

	var clone Material
	require.NotPanics(t, func() { clone = mat.Clone() })

	got, ok := clone.(*StandardMaterial)
	require.True(t, ok)
	assert.NotSame(t, mat, got)
	assert.Equal(t, *mat, *got)
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, Blue, ColorOf(NewBasicMaterial(Blue)))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, ColorOf(nil))
}

func TestWorldPositionComposesParents(t *testing.T) {
	parent := NewGroup("Parent")
	parent.Transform.Position = mgl32.Vec3{10, 0, 0}
	parent.Transform.Scale = mgl32.Vec3{2, 2, 2}

	child := newBox("Child")
	child.Transform.Position = mgl32.Vec3{1, 1, 0}
	parent.Add(child)

	pos := WorldPosition(child)
	assert.InDelta(t, 12, pos.X(), 1e-5)
	assert.InDelta(t, 2, pos.Y(), 1e-5)
	assert.InDelta(t, 0, pos.Z(), 1e-5)
}

func TestWorldPositionRotation(t *testing.T) {
	parent := NewGroup("Parent")
	parent.Transform.Rotation = mgl32.Vec3{0, 90, 0}

	child := newBox("Child")
	child.Transform.Position = mgl32.Vec3{1, 0, 0}
	parent.Add(child)

	pos := WorldPosition(child)
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.InDelta(t, -1, pos.Z(), 1e-5)
}

func TestVisibleInTree(t *testing.T) {
	parent := NewGroup("Parent")
	child := newBox("Child")
	parent.Add(child)

	assert.True(t, VisibleInTree(child))
	parent.Visible = false
	assert.False(t, VisibleInTree(child))
}
