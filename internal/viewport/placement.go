package viewport

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"placer/internal/assets"
	"placer/internal/broadcast"
	"placer/internal/camera"
	"placer/internal/drag"
	"placer/internal/engine"
	"placer/internal/highlight"
	"placer/internal/notify"
	"placer/internal/physics"
	"placer/internal/placement"
)

type PlacementConfig struct {
	Rect      Rect
	Registry  *assets.Registry
	Broadcast *broadcast.Channel
	Highlight *highlight.Controller
	Validator *placement.Validator
	Notify    *notify.Center
	Logger    *slog.Logger

	Grid         placement.Grid
	Volume       placement.VolumeOptions
	PlaneHeight  float32
	LockVertical bool
}

// Placement is the main scene viewport. It owns the dragger and remembers
// committed drags so they can be undone.
type Placement struct {
	Rect    Rect
	Scene   *engine.Scene
	Camera  *camera.Camera
	Dragger *drag.Dragger

	registry *assets.Registry
	notes    *notify.Center
	logger   *slog.Logger

	history   undoStack
	positions map[uuid.UUID]mgl32.Vec3
}

func NewPlacement(cfg PlacementConfig) *Placement {
	cam := camera.New(mgl32.Vec3{8, 10, 12}, mgl32.Vec3{})
	cam.Aspect = cfg.Rect.Aspect()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Placement{
		Rect:      cfg.Rect,
		Scene:     engine.NewScene("placement"),
		Camera:    cam,
		registry:  cfg.Registry,
		notes:     cfg.Notify,
		logger:    logger,
		positions: make(map[uuid.UUID]mgl32.Vec3),
	}
	p.Dragger = drag.New(drag.Config{
		Scene:        p.Scene,
		Query:        physics.NewQuery(cam),
		Registry:     cfg.Registry,
		Broadcast:    cfg.Broadcast,
		Highlight:    cfg.Highlight,
		Validator:    cfg.Validator,
		Notify:       cfg.Notify,
		Logger:       logger,
		Grid:         cfg.Grid,
		Volume:       cfg.Volume,
		Plane:        physics.HorizontalPlane(cfg.PlaneHeight),
		LockVertical: cfg.LockVertical,
	})
	p.Dragger.Committed.AddListener(p.onCommitted)
	return p
}

func (p *Placement) Close() { p.Dragger.Close() }

func (p *Placement) Resize(r Rect) {
	p.Rect = r
	p.Camera.Aspect = r.Aspect()
}

func (p *Placement) Update(ptr Pointer) {
	p.Dragger.Update(p.Rect.Input(ptr))
}

// Volumes returns the areas of the active drag, for drawing.
func (p *Placement) Volumes() []placement.Volume {
	if s := p.Dragger.Session(); s != nil {
		return s.Volumes
	}
	return nil
}

// Place adds an initial placement that is not part of the undo history.
func (p *Placement) Place(assetID int, node engine.Node) (drag.Placement, error) {
	pl, err := p.Dragger.Place(assetID, node)
	if err != nil {
		return pl, err
	}
	p.positions[pl.ID] = pl.Position
	return pl, nil
}

func (p *Placement) onCommitted(pl drag.Placement) {
	st := undoState{kind: undoPlace, id: pl.ID, assetID: pl.AssetID}
	if from, ok := p.positions[pl.ID]; ok {
		st = undoState{kind: undoMove, id: pl.ID, assetID: pl.AssetID, from: from}
	}
	p.positions[pl.ID] = pl.Position
	p.history.push(st)
}

func (p *Placement) CanUndo() bool { return p.history.len() > 0 }

// Undo reverts the most recent committed drag that still applies: a new
// placement is removed, a move goes back to where it came from. Entries for
// placements that no longer exist are skipped.
func (p *Placement) Undo() bool {
	if p.Dragger.State() == drag.Dragging {
		return false
	}
	for {
		st, ok := p.history.pop()
		if !ok {
			return false
		}

		var applied bool
		switch st.kind {
		case undoPlace:
			applied = p.Dragger.Remove(st.id)
			if applied {
				delete(p.positions, st.id)
			}
		case undoMove:
			applied = p.Dragger.Move(st.id, st.from)
			if applied {
				p.positions[st.id] = st.from
			}
		}
		if !applied {
			continue
		}

		name := fmt.Sprintf("asset %d", st.assetID)
		if a, err := p.registry.Lookup(st.assetID); err == nil {
			name = a.Name
		}
		if p.notes != nil {
			p.notes.Infof("Undid %s", name)
		}
		p.logger.Debug("undo", "id", st.id, "asset", st.assetID)
		return true
	}
}
