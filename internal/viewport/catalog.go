package viewport

import (
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/assets"
	"placer/internal/broadcast"
	"placer/internal/camera"
	"placer/internal/engine"
	"placer/internal/highlight"
	"placer/internal/physics"
)

const (
	catalogColumns = 3
	catalogSpacing = 2
)

type catalogItem struct {
	assetID int
	node    engine.Node
}

// Catalog shows one preview per visible asset. Pressing on a preview starts
// a drag by setting the broadcast; letting go clears it.
type Catalog struct {
	Rect   Rect
	Scene  *engine.Scene
	Camera *camera.Camera

	query     *physics.Query
	registry  *assets.Registry
	channel   *broadcast.Channel
	highlight *highlight.Controller
	backdrop  physics.Plane

	items    []catalogItem
	hovered  *catalogItem
	dragging bool

	arranging bool
	arranged  int
	arrangeAt mgl32.Vec2

	changedID   engine.ListenerID
	unsubscribe func()
}

func NewCatalog(rect Rect, reg *assets.Registry, ch *broadcast.Channel, hl *highlight.Controller) *Catalog {
	cam := camera.New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	cam.Projection = camera.Orthographic
	cam.Fovy = 8
	cam.Aspect = rect.Aspect()

	c := &Catalog{
		Rect:      rect,
		Scene:     engine.NewScene("catalog"),
		Camera:    cam,
		query:     physics.NewQuery(cam),
		registry:  reg,
		channel:   ch,
		highlight: hl,
		backdrop:  physics.Plane{Normal: mgl32.Vec3{0, 0, 1}},
	}
	c.changedID = reg.Changed.AddListener(c.Sync)
	c.unsubscribe = ch.Subscribe(func(v broadcast.Change) {
		if !v.Active {
			c.dragging = false
		}
	})
	c.Sync()
	return c
}

func (c *Catalog) Close() {
	c.registry.Changed.RemoveListener(c.changedID)
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Resize moves the catalog to a new rectangle and relays out previews.
func (c *Catalog) Resize(r Rect) {
	c.Rect = r
	c.Camera.Aspect = r.Aspect()
	c.Sync()
}

// Sync rebuilds the previews from the registry.
func (c *Catalog) Sync() {
	for _, it := range c.items {
		c.highlight.Forget(it.node)
	}
	c.Scene.Clear()
	c.items = c.items[:0]
	c.hovered = nil

	i := 0
	for _, a := range c.registry.All() {
		if !a.Visible {
			continue
		}
		n, err := c.registry.Instantiate(a.ID)
		if err != nil {
			continue
		}
		n.Base().Transform.Position = c.slot(a, i)
		c.Scene.AddNode(n)
		c.items = append(c.items, catalogItem{assetID: a.ID, node: n})
		c.restyle(a, n)
		i++
	}
}

// slot is where the i-th visible asset sits: under its viewer position if
// it has one, otherwise in a grid.
func (c *Catalog) slot(a *assets.Asset, i int) mgl32.Vec3 {
	if a.ViewerPos != nil {
		ndc, _ := c.Rect.NDC(a.ViewerPos.X(), a.ViewerPos.Y())
		if p, ok := c.query.Project(ndc, c.backdrop); ok {
			return p
		}
	}
	col := i % catalogColumns
	row := i / catalogColumns
	return mgl32.Vec3{
		float32(col-(catalogColumns-1)/2) * catalogSpacing,
		-float32(row) * catalogSpacing,
		0,
	}
}

// restyle shows focus when the preview is not hovered.
func (c *Catalog) restyle(a *assets.Asset, n engine.Node) {
	if a.Focused {
		c.highlight.Apply(n, highlight.Valid)
	} else {
		c.highlight.Clear(n)
	}
}

func (c *Catalog) Nodes() []engine.Node {
	out := make([]engine.Node, len(c.items))
	for i, it := range c.items {
		out[i] = it.node
	}
	return out
}

// HoveredAsset returns the id of the preview under the pointer.
func (c *Catalog) HoveredAsset() (int, bool) {
	if c.hovered == nil {
		return 0, false
	}
	return c.hovered.assetID, true
}

func (c *Catalog) Dragging() bool { return c.dragging }

func (c *Catalog) Update(p Pointer) {
	in := c.Rect.Input(p)

	if c.dragging {
		if !in.Held {
			c.dragging = false
			if _, active := c.channel.Get(); active {
				c.channel.Clear()
			}
		}
		return
	}

	var hit *catalogItem
	if in.InBounds {
		if h, ok := c.query.Pick(in.NDC, c.Nodes()); ok {
			hit = c.item(h.Node)
		}
	}

	if c.hovered != nil && c.hovered != hit {
		c.unhover()
	}
	if hit == nil {
		return
	}
	if c.hovered == nil {
		c.hovered = hit
		c.highlight.Apply(hit.node, highlight.Hover)
	}
	if in.Pressed {
		c.unhover()
		c.dragging = true
		c.channel.Set(hit.assetID)
	}
}

func (c *Catalog) unhover() {
	it := c.hovered
	c.hovered = nil
	if a, err := c.registry.Lookup(it.assetID); err == nil {
		c.restyle(a, it.node)
	} else {
		c.highlight.Clear(it.node)
	}
}

func (c *Catalog) item(n engine.Node) *catalogItem {
	for i := range c.items {
		if c.items[i].node == n {
			return &c.items[i]
		}
	}
	return nil
}

// Focus makes id the only focused asset. An id that is not in the registry
// clears focus everywhere.
func (c *Catalog) Focus(id int) {
	for _, a := range c.registry.All() {
		want := a.ID == id
		if a.Focused != want {
			_ = c.registry.SetFocused(a.ID, want)
		}
	}
}

// Arranging reports the asset being moved around the panel, if any.
func (c *Catalog) Arranging() (int, bool) { return c.arranged, c.arranging }

// Arrange lets a second pointer button move previews around the panel.
// Pressing on a preview picks it up and its viewer position follows the
// pointer until the button is let go.
func (c *Catalog) Arrange(p Pointer) {
	if c.arranging {
		if !p.Held {
			c.arranging = false
			return
		}
		at := mgl32.Vec2{p.X, p.Y}
		if _, in := c.Rect.NDC(p.X, p.Y); !in || at == c.arrangeAt {
			return
		}
		c.arrangeAt = at
		if err := c.registry.SetViewerPos(c.arranged, &at); err != nil {
			c.arranging = false
		}
		return
	}

	if !p.Pressed || c.dragging {
		return
	}
	in := c.Rect.Input(p)
	if !in.InBounds {
		return
	}
	h, ok := c.query.Pick(in.NDC, c.Nodes())
	if !ok {
		return
	}
	if it := c.item(h.Node); it != nil {
		c.arranging = true
		c.arranged = it.assetID
		c.arrangeAt = mgl32.Vec2{p.X, p.Y}
	}
}
