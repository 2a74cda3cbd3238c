package viewport

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placer/internal/assets"
	"placer/internal/broadcast"
	"placer/internal/camera"
	"placer/internal/drag"
	"placer/internal/engine"
	"placer/internal/highlight"
	"placer/internal/notify"
	"placer/internal/placement"
)

func TestRectNDC(t *testing.T) {
	r := Rect{X: 100, Y: 50, W: 200, H: 100}
	tests := []struct {
		px, py float32
		want   mgl32.Vec2
		in     bool
	}{
		{200, 100, mgl32.Vec2{0, 0}, true},
		{100, 50, mgl32.Vec2{-1, 1}, true},
		{300, 150, mgl32.Vec2{1, -1}, true},
		{350, 100, mgl32.Vec2{1.5, 0}, false},
		{200, 0, mgl32.Vec2{0, 2}, false},
	}
	for _, tt := range tests {
		got, in := r.NDC(tt.px, tt.py)
		assert.InDelta(t, tt.want.X(), got.X(), 1e-6)
		assert.InDelta(t, tt.want.Y(), got.Y(), 1e-6)
		assert.Equal(t, tt.in, in, "pixel (%v,%v)", tt.px, tt.py)
	}

	_, in := Rect{}.NDC(0, 0)
	assert.False(t, in)
	assert.Equal(t, float32(2), r.Aspect())
}

func TestPointerTrackerEdges(t *testing.T) {
	var tr PointerTracker
	p := tr.Sample(1, 2, true)
	assert.True(t, p.Pressed)
	assert.True(t, p.Held)

	p = tr.Sample(1, 2, true)
	assert.False(t, p.Pressed)
	assert.True(t, p.Held)

	p = tr.Sample(1, 2, false)
	assert.False(t, p.Pressed)
	assert.False(t, p.Held)
}

type rig struct {
	reg   *assets.Registry
	ch    *broadcast.Channel
	notes *notify.Center
	cat   *Catalog
	main  *Placement
}

func cube(name string) *engine.Mesh {
	return engine.NewMesh(name, engine.NewBoxGeometry(mgl32.Vec3{1, 1, 1}), engine.NewPhongMaterial(engine.Gray))
}

var (
	catalogRect   = Rect{X: 0, Y: 0, W: 300, H: 300}
	placementRect = Rect{X: 300, Y: 0, W: 200, H: 200}
)

func newRig(t *testing.T) *rig {
	t.Helper()
	reg, err := assets.NewRegistry(
		&assets.Asset{
			ID:     3,
			Name:   "crate",
			Object: cube("crate"),
			Areas: []assets.Area{{
				Normal: mgl32.Vec3{0, 0, 1},
				Min:    mgl32.Vec2{-5, -5},
				Max:    mgl32.Vec2{5, 5},
			}},
			Visible: true,
		},
		&assets.Asset{ID: 4, Name: "hidden", Object: cube("hidden")},
		&assets.Asset{ID: 5, Name: "lamp", Object: cube("lamp"), Visible: true, Focused: true},
	)
	require.NoError(t, err)

	r := &rig{reg: reg, ch: broadcast.New(), notes: notify.NewCenter(time.Minute)}
	hl := highlight.NewController(highlight.DefaultPalette(), 0.6, 10)
	r.cat = NewCatalog(catalogRect, reg, r.ch, hl)
	r.main = NewPlacement(PlacementConfig{
		Rect:         placementRect,
		Registry:     reg,
		Broadcast:    r.ch,
		Highlight:    hl,
		Validator:    placement.NewValidator(placement.PolicyIntersects),
		Notify:       r.notes,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Grid:         placement.DefaultGrid(),
		Volume:       placement.DefaultVolumeOptions(),
		LockVertical: true,
	})
	// Look straight down so pixels map linearly onto the ground.
	cam := r.main.Camera
	cam.Position = mgl32.Vec3{0, 10, 0}
	cam.Up = mgl32.Vec3{0, 0, -1}
	cam.Projection = camera.Orthographic
	cam.Fovy = 20

	t.Cleanup(r.cat.Close)
	t.Cleanup(r.main.Close)
	return r
}

// frame runs one frame in the app's order.
func (r *rig) frame(p Pointer) {
	r.main.Update(p)
	r.cat.Update(p)
}

// catalogPix returns the catalog pixel over world point (x, y) on the backdrop.
func catalogPix(x, y float32) (float32, float32) {
	return (x/4 + 1) * 150, (1 - y/4) * 150
}

// groundPix returns the placement pixel over ground point (x, z).
func groundPix(x, z float32) (float32, float32) {
	return placementRect.X + (x/10+1)*100, (z/10 + 1) * 100
}

func at(x, y float32, pressed, held bool) Pointer {
	return Pointer{X: x, Y: y, Pressed: pressed, Held: held}
}

func TestCatalogLayout(t *testing.T) {
	r := newRig(t)

	nodes := r.cat.Nodes()
	require.Len(t, nodes, 2, "invisible assets are not shown")
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, nodes[0].Base().Transform.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, nodes[1].Base().Transform.Position)

	tier, ok := r.cat.highlight.TierOf(nodes[1])
	require.True(t, ok, "focused asset is highlighted")
	assert.Equal(t, highlight.Valid, tier)
	assert.False(t, r.cat.highlight.Highlighted(nodes[0]))

	px, py := catalogPix(1, 1)
	pos := mgl32.Vec2{px, py}
	require.NoError(t, r.reg.SetViewerPos(3, &pos))
	nodes = r.cat.Nodes()
	got := nodes[0].Base().Transform.Position
	assert.InDelta(t, 1, got.X(), 1e-4)
	assert.InDelta(t, 1, got.Y(), 1e-4)

	require.NoError(t, r.reg.SetVisible(4, true))
	assert.Len(t, r.cat.Nodes(), 3)

	require.NoError(t, r.reg.Add(&assets.Asset{ID: 9, Name: "empty", Visible: true}))
	assert.Len(t, r.cat.Nodes(), 3, "assets without an object have no preview")
}

func TestCatalogHoverKeepsFocus(t *testing.T) {
	r := newRig(t)
	lamp := r.cat.Nodes()[1]

	x, y := catalogPix(0, 0)
	r.cat.Update(at(x, y, false, false))
	id, ok := r.cat.HoveredAsset()
	require.True(t, ok)
	assert.Equal(t, 5, id)
	tier, _ := r.cat.highlight.TierOf(lamp)
	assert.Equal(t, highlight.Hover, tier)

	x, y = catalogPix(3, 3)
	r.cat.Update(at(x, y, false, false))
	_, ok = r.cat.HoveredAsset()
	assert.False(t, ok)
	tier, _ = r.cat.highlight.TierOf(lamp)
	assert.Equal(t, highlight.Valid, tier)
}

func TestCatalogFocusIsExclusive(t *testing.T) {
	r := newRig(t)

	r.cat.Focus(3)
	crate, _ := r.reg.Lookup(3)
	lamp, _ := r.reg.Lookup(5)
	assert.True(t, crate.Focused)
	assert.False(t, lamp.Focused)
	nodes := r.cat.Nodes()
	tier, ok := r.cat.highlight.TierOf(nodes[0])
	require.True(t, ok)
	assert.Equal(t, highlight.Valid, tier)
	assert.False(t, r.cat.highlight.Highlighted(nodes[1]))

	r.cat.Focus(-1)
	for _, a := range r.reg.All() {
		assert.False(t, a.Focused, "asset %d", a.ID)
	}
}

func TestCatalogArrangeMovesPreview(t *testing.T) {
	r := newRig(t)
	var tr PointerTracker

	x, y := catalogPix(-2, 0)
	r.cat.Arrange(tr.Sample(x, y, true))
	id, ok := r.cat.Arranging()
	require.True(t, ok)
	assert.Equal(t, 3, id)

	x, y = catalogPix(1, -1)
	r.cat.Arrange(tr.Sample(x, y, true))
	got := r.cat.Nodes()[0].Base().Transform.Position
	assert.InDelta(t, 1, got.X(), 1e-4)
	assert.InDelta(t, -1, got.Y(), 1e-4)

	// Outside the panel the preview stays put.
	r.cat.Arrange(tr.Sample(1000, 1000, true))
	crate, _ := r.reg.Lookup(3)
	require.NotNil(t, crate.ViewerPos)
	assert.Equal(t, mgl32.Vec2{x, y}, *crate.ViewerPos)

	r.cat.Arrange(tr.Sample(x, y, false))
	_, ok = r.cat.Arranging()
	assert.False(t, ok)
	_, active := r.ch.Get()
	assert.False(t, active, "arranging never starts a drag")
}

func TestCatalogArrangeMissesEmptySpace(t *testing.T) {
	r := newRig(t)
	var tr PointerTracker

	x, y := catalogPix(3, 3)
	r.cat.Arrange(tr.Sample(x, y, true))
	_, ok := r.cat.Arranging()
	assert.False(t, ok)
}

func TestCatalogPressAndReleaseDriveBroadcast(t *testing.T) {
	r := newRig(t)
	var seen []broadcast.Change
	r.ch.Subscribe(func(c broadcast.Change) { seen = append(seen, c) })

	x, y := catalogPix(-2, 0)
	r.cat.Update(at(x, y, true, true))
	id, active := r.ch.Get()
	require.True(t, active)
	assert.Equal(t, 3, id)
	assert.True(t, r.cat.Dragging())

	r.cat.Update(at(x, y, false, true))
	assert.Len(t, seen, 1)

	r.cat.Update(at(x, y, false, false))
	_, active = r.ch.Get()
	assert.False(t, active)
	assert.False(t, r.cat.Dragging())
}

func TestDragFromCatalogIntoScene(t *testing.T) {
	r := newRig(t)

	cx, cy := catalogPix(-2, 0)
	r.frame(at(cx, cy, true, true))
	require.Equal(t, drag.Dragging, r.main.Dragger.State())
	s := r.main.Dragger.Session()
	assert.False(t, s.Node.Base().Visible, "hidden while the pointer is over the catalog")
	assert.Len(t, r.main.Volumes(), 1)

	gx, gz := groundPix(1.2, 1.3)
	r.frame(at(gx, gz, false, true))
	assert.True(t, s.Node.Base().Visible)
	assert.Equal(t, mgl32.Vec3{1.5, 0, 1.5}, s.Node.Base().Transform.Position)

	r.frame(at(gx, gz, false, false))
	assert.Equal(t, drag.Idle, r.main.Dragger.State())
	assert.False(t, r.cat.Dragging())
	require.Len(t, r.main.Dragger.Placements(), 1)
	assert.Equal(t, notify.Success, mustLast(t, r.notes).Type)
	assert.Nil(t, r.main.Volumes())

	require.True(t, r.main.CanUndo())
	require.True(t, r.main.Undo())
	assert.Empty(t, r.main.Dragger.Placements())
	assert.False(t, r.main.Scene.Contains(s.Node))
	assert.False(t, r.main.Undo())
}

func TestDropOnCatalogCancels(t *testing.T) {
	r := newRig(t)
	cx, cy := catalogPix(-2, 0)
	r.frame(at(cx, cy, true, true))
	node := r.main.Dragger.Session().Node

	r.frame(at(cx, cy, false, false))

	assert.Equal(t, drag.Idle, r.main.Dragger.State())
	assert.False(t, r.main.Scene.Contains(node))
	assert.Equal(t, notify.Error, mustLast(t, r.notes).Type)
	assert.False(t, r.main.CanUndo())
}

func TestUndoMoveRestoresPosition(t *testing.T) {
	r := newRig(t)
	n := cube("crate")
	n.Transform.Position = mgl32.Vec3{0.5, 0, 0.5}
	_, err := r.main.Place(3, n)
	require.NoError(t, err)

	x, z := groundPix(0.5, 0.5)
	r.frame(at(x, z, true, true))
	require.Equal(t, drag.Dragging, r.main.Dragger.State())
	x, z = groundPix(2.2, 1.2)
	r.frame(at(x, z, false, true))
	r.frame(at(x, z, false, false))
	require.Equal(t, mgl32.Vec3{2.5, 0, 1.5}, n.Transform.Position)

	require.True(t, r.main.Undo())
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0.5}, n.Transform.Position)
	assert.True(t, r.main.Scene.Contains(n))
	assert.Equal(t, notify.Info, mustLast(t, r.notes).Type)
}

func TestUndoHistoryIsCapped(t *testing.T) {
	var s undoStack
	for i := 0; i < maxUndoStack+10; i++ {
		s.push(undoState{assetID: i})
	}
	assert.Equal(t, maxUndoStack, s.len())
	st, ok := s.pop()
	require.True(t, ok)
	assert.Equal(t, maxUndoStack+9, st.assetID)
}

func mustLast(t *testing.T, c *notify.Center) notify.Notification {
	t.Helper()
	n, ok := c.Last()
	require.True(t, ok)
	return n
}
