package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placer/internal/engine"
)

const sampleCatalog = `
assets:
  - id: 0
    name: chair
    object:
      type: group
      children:
        - name: seat
          size: [1, 0.2, 1]
          color: brown
        - name: back
          size: [1, 1, 0.2]
          position: [0, 0.6, -0.4]
          color: "#804020"
          material: standard
    areas:
      - name: floor
        normal: [0, 1, 0]
        min: [-5, -5]
        max: [5, 5]
  - id: 3
    name: lamp
    unrestricted: true
    visible: false
    viewer_pos: [120, 80]
    object:
      size: [0.3, 2, 0.3]
      color: gold
      material: basic
`

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	list, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	r, err := NewRegistry(list...)
	require.NoError(t, err)
	return r
}

func TestParseCatalog(t *testing.T) {
	r := testRegistry(t)
	require.Equal(t, 2, r.Len())

	chair, err := r.Lookup(0)
	require.NoError(t, err)
	assert.Equal(t, "chair", chair.Name)
	assert.True(t, chair.Visible)
	assert.Nil(t, chair.ViewerPos)
	require.Len(t, chair.Areas, 1)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, chair.Areas[0].Normal)
	assert.Equal(t, mgl32.Vec2{5, 5}, chair.Areas[0].Max)

	g, ok := chair.Object.(*engine.Group)
	require.True(t, ok)
	require.Len(t, g.Children, 2)
	back := g.Children[1].(*engine.Mesh)
	assert.Equal(t, "back", back.Name)
	assert.Equal(t, mgl32.Vec3{0, 0.6, -0.4}, back.Transform.Position)
	assert.Equal(t, engine.MaterialStandard, back.Material.Kind())
	assert.Equal(t, engine.MaterialPhong, g.Children[0].(*engine.Mesh).Material.Kind())

	lamp, err := r.Lookup(3)
	require.NoError(t, err)
	assert.True(t, lamp.Unrestricted)
	assert.False(t, lamp.Visible)
	require.NotNil(t, lamp.ViewerPos)
	assert.Equal(t, mgl32.Vec2{120, 80}, *lamp.ViewerPos)
	assert.Equal(t, engine.Gold, engine.ColorOf(lamp.Object.(*engine.Mesh).Material))
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate", "assets:\n  - {id: 1, object: {}}\n  - {id: 1, object: {}}\n", "duplicate"},
		{"no object", "assets:\n  - {id: 1, name: x}\n", "missing object"},
		{"bad color", "assets:\n  - {id: 1, object: {color: nope}}\n", "unknown color"},
		{"bad type", "assets:\n  - {id: 1, object: {type: sphere}}\n", "unknown object type"},
		{"short vector", "assets:\n  - {id: 1, object: {size: [1, 2]}}\n", "size"},
		{"bad area", "assets:\n  - {id: 1, object: {}, areas: [{min: [0, 0]}]}\n", "max"},
		{"malformed", "assets: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Lookup(42)
	assert.ErrorIs(t, err, ErrUnknownAsset)

	_, err = r.Instantiate(42)
	assert.ErrorIs(t, err, ErrUnknownAsset)

	assert.ErrorIs(t, r.SetFocused(42, true), ErrUnknownAsset)
}

func TestInstantiateIsIndependentClone(t *testing.T) {
	r := testRegistry(t)
	chair, _ := r.Lookup(0)

	n, err := r.Instantiate(0)
	require.NoError(t, err)
	assert.NotSame(t, chair.Object, n)

	n.Base().Transform.Position = mgl32.Vec3{9, 9, 9}
	seat := n.(*engine.Group).Children[0].(*engine.Mesh)
	seat.Material.(engine.Colored).SetColor(engine.Red)

	assert.Equal(t, mgl32.Vec3{}, chair.Object.Base().Transform.Position)
	tmplSeat := chair.Object.(*engine.Group).Children[0].(*engine.Mesh)
	assert.Equal(t, engine.Brown, engine.ColorOf(tmplSeat.Material))
}

func TestAllIsOrderedByID(t *testing.T) {
	r, err := NewRegistry(&Asset{ID: 5}, &Asset{ID: 1}, &Asset{ID: 3})
	require.NoError(t, err)

	var ids []int
	for _, a := range r.All() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int{1, 3, 5}, ids)
}

func TestAddAndChanged(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	changes := 0
	r.Changed.AddListener(func() { changes++ })

	require.NoError(t, r.Add(&Asset{ID: 1, Name: "a"}))
	err = r.Add(&Asset{ID: 1, Name: "b"})
	assert.ErrorIs(t, err, ErrDuplicateAsset)

	require.NoError(t, r.SetFocused(1, true))
	require.NoError(t, r.SetVisible(1, false))
	pos := mgl32.Vec2{3, 4}
	require.NoError(t, r.SetViewerPos(1, &pos))

	a, _ := r.Lookup(1)
	assert.True(t, a.Focused)
	assert.False(t, a.Visible)
	assert.Equal(t, &pos, a.ViewerPos)
	assert.Equal(t, 4, changes)
}

func TestReplaceKeepsUIState(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.SetFocused(0, true))

	err := r.Replace([]*Asset{{ID: 0, Name: "chair v2", Visible: true}, {ID: 0}})
	assert.ErrorIs(t, err, ErrDuplicateAsset)
	_, err = r.Lookup(3)
	assert.NoError(t, err, "failed replace leaves registry unchanged")

	require.NoError(t, r.Replace([]*Asset{{ID: 0, Name: "chair v2"}}))
	assert.Equal(t, 1, r.Len())
	a, err := r.Lookup(0)
	require.NoError(t, err)
	assert.Equal(t, "chair v2", a.Name)
	assert.True(t, a.Focused)
	assert.True(t, a.Visible)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	updates, err := Watch(ctx, path, logger)
	require.NoError(t, err)

	// A broken write is skipped; the following good one comes through.
	require.NoError(t, os.WriteFile(path, []byte("assets: ["), 0644))
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  - {id: 9, name: crate, object: {}}\n"), 0644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case list := <-updates:
			if len(list) == 1 && list[0].ID == 9 {
				cancel()
				for range updates {
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
