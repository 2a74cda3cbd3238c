// Package drag implements the hover, pick and drag state machine of the
// placement viewport.
package drag

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"placer/internal/assets"
	"placer/internal/broadcast"
	"placer/internal/engine"
	"placer/internal/highlight"
	"placer/internal/notify"
	"placer/internal/physics"
	"placer/internal/placement"
)

type Config struct {
	Scene     *engine.Scene
	Query     *physics.Query
	Registry  *assets.Registry
	Broadcast *broadcast.Channel

	Highlight *highlight.Controller // defaults to DefaultPalette, 0.6 opacity
	Validator *placement.Validator  // defaults to PolicyIntersects
	Notify    *notify.Center
	Logger    *slog.Logger

	Grid   placement.Grid
	Volume placement.VolumeOptions
	// Plane is the surface the pointer is projected onto while dragging.
	Plane physics.Plane
	// LockVertical keeps a dragged node at its height; otherwise it takes
	// the height of the projected point.
	LockVertical bool
}

// Dragger owns the selectable set and the committed placements of one
// viewport. It reacts to the broadcast so drags started in another viewport
// continue here. All methods run on the frame loop.
type Dragger struct {
	scene     *engine.Scene
	query     *physics.Query
	registry  *assets.Registry
	channel   *broadcast.Channel
	highlight *highlight.Controller
	validator *placement.Validator
	notes     *notify.Center
	logger    *slog.Logger

	grid         placement.Grid
	volume       placement.VolumeOptions
	plane        physics.Plane
	lockVertical bool

	state      State
	hovered    engine.Node
	session    *Session
	last       Input
	selectable []engine.Node
	placements map[engine.Node]*Placement

	// writing is set while this dragger writes the broadcast so its own
	// subscription ignores the echo.
	writing     bool
	unsubscribe func()

	Committed engine.EventWithArg[Placement]
	Cancelled engine.EventWithArg[Cancellation]
}

func New(cfg Config) *Dragger {
	d := &Dragger{
		scene:        cfg.Scene,
		query:        cfg.Query,
		registry:     cfg.Registry,
		channel:      cfg.Broadcast,
		highlight:    cfg.Highlight,
		validator:    cfg.Validator,
		notes:        cfg.Notify,
		logger:       cfg.Logger,
		grid:         cfg.Grid,
		volume:       cfg.Volume,
		plane:        cfg.Plane,
		lockVertical: cfg.LockVertical,
		placements:   make(map[engine.Node]*Placement),
	}
	if d.highlight == nil {
		d.highlight = highlight.NewController(highlight.DefaultPalette(), 0.6, 10)
	}
	if d.validator == nil {
		d.validator = placement.NewValidator(placement.PolicyIntersects)
	}
	if d.notes == nil {
		d.notes = notify.NewCenter(2 * time.Second)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.channel != nil {
		d.unsubscribe = d.channel.Subscribe(d.onBroadcast)
	}
	return d
}

// Close detaches the dragger from the broadcast.
func (d *Dragger) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

func (d *Dragger) State() State { return d.state }

// Session returns the active drag, or nil.
func (d *Dragger) Session() *Session { return d.session }

func (d *Dragger) Hovered() engine.Node { return d.hovered }

func (d *Dragger) Highlight() *highlight.Controller { return d.highlight }

// Selectables returns the nodes that can currently be picked.
func (d *Dragger) Selectables() []engine.Node {
	out := make([]engine.Node, len(d.selectable))
	copy(out, d.selectable)
	return out
}

func (d *Dragger) Placements() []Placement {
	out := make([]Placement, 0, len(d.selectable))
	for _, n := range d.selectable {
		if p, ok := d.placements[n]; ok {
			out = append(out, *p)
		}
	}
	return out
}

func (d *Dragger) PlacementOf(n engine.Node) (Placement, bool) {
	p, ok := d.placements[n]
	if !ok {
		return Placement{}, false
	}
	return *p, true
}

// Place puts node into the scene as a committed instance of assetID.
func (d *Dragger) Place(assetID int, node engine.Node) (Placement, error) {
	if _, err := d.registry.Lookup(assetID); err != nil {
		return Placement{}, err
	}
	p := &Placement{
		ID:       uuid.New(),
		AssetID:  assetID,
		Node:     node,
		Position: node.Base().Transform.Position,
	}
	d.scene.AddNode(node)
	d.addSelectable(node)
	d.placements[node] = p
	return *p, nil
}

// Remove takes a committed placement out of the scene. A placement that is
// being dragged cannot be removed.
func (d *Dragger) Remove(id uuid.UUID) bool {
	for n, p := range d.placements {
		if p.ID != id {
			continue
		}
		if d.session != nil && d.session.Node == n {
			return false
		}
		if d.hovered == n {
			d.highlight.Clear(n)
			d.hovered = nil
			d.state = Idle
		}
		d.removeSelectable(n)
		engine.Detach(n)
		delete(d.placements, n)
		return true
	}
	return false
}

// Move puts a committed placement at pos. A placement that is being dragged
// cannot be moved.
func (d *Dragger) Move(id uuid.UUID, pos mgl32.Vec3) bool {
	for n, p := range d.placements {
		if p.ID != id {
			continue
		}
		if d.session != nil && d.session.Node == n {
			return false
		}
		n.Base().Transform.Position = pos
		p.Position = pos
		return true
	}
	return false
}

// Update advances the state machine by one frame.
func (d *Dragger) Update(in Input) {
	d.last = in

	if d.state == Dragging {
		if in.Held {
			d.drag(in)
			return
		}
		d.finish(in)
		return
	}

	var hit physics.RaycastHit
	ok := false
	if in.InBounds {
		hit, ok = d.query.Pick(in.NDC, d.selectable)
	}

	switch {
	case ok && in.Pressed:
		d.startLocal(hit.Node)
	case ok:
		d.hover(hit.Node)
	case d.state == Hovered:
		d.unhover()
	}
}

func (d *Dragger) hover(n engine.Node) {
	if d.state == Hovered && d.hovered == n {
		return
	}
	if d.hovered != nil {
		d.highlight.Clear(d.hovered)
	}
	d.hovered = n
	d.state = Hovered
	d.highlight.Apply(n, highlight.Hover)
}

func (d *Dragger) unhover() {
	if d.hovered != nil {
		d.highlight.Clear(d.hovered)
	}
	d.hovered = nil
	d.state = Idle
}

func (d *Dragger) startLocal(n engine.Node) {
	placed := d.placements[n]
	if placed == nil {
		d.logger.Warn("picked node has no placement", "node", n.Base().Name)
		return
	}
	asset, err := d.registry.Lookup(placed.AssetID)
	if err != nil {
		d.notes.Errorf("Asset %d is no longer available", placed.AssetID)
		d.logger.Warn("drag start failed", "asset", placed.AssetID, "err", err)
		return
	}
	if d.hovered != nil {
		d.highlight.Clear(d.hovered)
		d.hovered = nil
	}

	d.removeSelectable(n)
	// Lift the node to the scene root, keeping where it is in the world.
	world := engine.WorldPosition(n)
	engine.Detach(n)
	n.Base().Transform.Position = world
	d.scene.AddNode(n)

	d.begin(n, asset, OriginLocal, placed)
	d.revalidate()
	d.logger.Debug("drag started", "asset", asset.ID, "origin", OriginLocal)

	d.publish(asset.ID)
}

func (d *Dragger) startBroadcast(id int) {
	node, err := d.registry.Instantiate(id)
	if err != nil {
		d.notes.Errorf("Asset %d cannot be placed", id)
		d.logger.Warn("ignoring drag of unusable asset", "asset", id, "err", err)
		return
	}
	asset, _ := d.registry.Lookup(id)
	node.Base().Visible = true
	d.scene.AddNode(node)

	d.begin(node, asset, OriginBroadcast, nil)
	d.logger.Debug("drag started", "asset", id, "origin", OriginBroadcast)
	d.drag(d.last)
}

func (d *Dragger) begin(n engine.Node, a *assets.Asset, origin Origin, placed *Placement) {
	s := &Session{
		Node:         n,
		AssetID:      a.ID,
		AssetName:    a.Name,
		Unrestricted: a.Unrestricted,
		Origin:       origin,
		placed:       placed,
	}
	for _, area := range a.Areas {
		s.Volumes = append(s.Volumes, placement.NewVolume(area.Name, area.Normal, area.Min, area.Max, d.volume))
	}
	d.session = s
	d.state = Dragging
}

// drag moves the session node to the pointer. Outside the viewport the node
// is hidden and left where it was.
func (d *Dragger) drag(in Input) {
	s := d.session
	if s == nil {
		return
	}
	t := &s.Node.Base().Transform
	s.Node.Base().Visible = in.InBounds
	if !in.InBounds {
		return
	}

	if p, ok := d.query.Project(in.NDC, d.plane); ok {
		pos := t.Position
		pos[0] = p.X()
		pos[2] = p.Z()
		if !d.lockVertical {
			pos[1] = p.Y()
		}
		t.Position = d.grid.SnapXZ(pos)
	}
	d.revalidate()
}

func (d *Dragger) revalidate() {
	s := d.session
	s.Valid = d.validator.Check(s.Node, s.Volumes, s.Unrestricted)
	tier := highlight.Invalid
	if s.Valid {
		tier = highlight.Valid
	}
	d.highlight.Apply(s.Node, tier)
}

// Release ends the active drag as if the pointer had been let go with the
// last sampled input. It does nothing without a session.
func (d *Dragger) Release() {
	if d.session != nil {
		d.finish(d.last)
	}
}

// Cancel aborts the active drag. It does nothing without a session.
func (d *Dragger) Cancel() {
	if d.session != nil {
		d.cancel(ReasonAborted)
	}
}

// finish drops the node where the pointer was let go. The release point is
// projected first, since the pointer may have moved since the last held frame.
func (d *Dragger) finish(in Input) {
	if in.InBounds {
		d.drag(in)
	}
	s := d.session
	switch {
	case !in.InBounds:
		d.cancel(ReasonOutOfBounds)
	case !s.Valid:
		d.cancel(ReasonInvalid)
	default:
		d.commit()
	}
}

func (d *Dragger) commit() {
	s := d.session
	d.session = nil
	d.state = Idle

	d.highlight.Clear(s.Node)
	s.Node.Base().Visible = true
	if !d.scene.Contains(s.Node) {
		d.scene.AddNode(s.Node)
	}

	p := s.placed
	if p == nil {
		p = &Placement{ID: uuid.New(), AssetID: s.AssetID, Node: s.Node}
	}
	p.Position = s.Node.Base().Transform.Position
	d.placements[s.Node] = p
	d.addSelectable(s.Node)

	d.clearBroadcast()
	d.notes.Success(fmt.Sprintf("Placed %s", s.AssetName))
	d.logger.Info("placement committed", "asset", s.AssetID, "id", p.ID, "position", p.Position)
	d.Committed.Invoke(*p)
}

// cancel discards the session node. A superseded session belongs to a
// broadcast value someone else now owns, so it neither clears the broadcast
// nor notifies.
func (d *Dragger) cancel(reason CancelReason) {
	s := d.session
	d.session = nil
	d.state = Idle

	d.highlight.Clear(s.Node)
	engine.Detach(s.Node)
	delete(d.placements, s.Node)

	if reason != ReasonSuperseded {
		d.clearBroadcast()
		d.notes.Errorf("Could not place %s: %s", s.AssetName, reason)
	}
	d.logger.Info("placement cancelled", "asset", s.AssetID, "reason", reason.String())
	d.Cancelled.Invoke(Cancellation{AssetID: s.AssetID, Reason: reason})
}

func (d *Dragger) onBroadcast(ch broadcast.Change) {
	if d.writing {
		return
	}
	if !ch.Active {
		if d.session != nil {
			d.finish(d.last)
		}
		return
	}

	// Another viewport started a drag. Whatever we were doing is stale.
	if d.session != nil {
		d.cancel(ReasonSuperseded)
	}
	if d.hovered != nil {
		d.unhover()
	}
	d.startBroadcast(ch.AssetID)
}

func (d *Dragger) publish(id int) {
	if d.channel == nil {
		return
	}
	d.writing = true
	defer func() { d.writing = false }()
	d.channel.Set(id)
}

func (d *Dragger) clearBroadcast() {
	if d.channel == nil {
		return
	}
	if _, active := d.channel.Get(); !active {
		return
	}
	d.writing = true
	defer func() { d.writing = false }()
	d.channel.Clear()
}

func (d *Dragger) addSelectable(n engine.Node) {
	for _, s := range d.selectable {
		if s == n {
			return
		}
	}
	d.selectable = append(d.selectable, n)
}

func (d *Dragger) removeSelectable(n engine.Node) {
	for i, s := range d.selectable {
		if s == n {
			d.selectable = append(d.selectable[:i], d.selectable[i+1:]...)
			return
		}
	}
}
