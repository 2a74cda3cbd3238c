package assets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/engine"
)

var (
	ErrUnknownAsset   = errors.New("unknown asset")
	ErrDuplicateAsset = errors.New("duplicate asset id")
)

// Registry maps asset ids to assets. Changed fires after every mutation so
// viewports can resync.
type Registry struct {
	assets  map[int]*Asset
	Changed engine.Event
}

func NewRegistry(list ...*Asset) (*Registry, error) {
	r := &Registry{assets: make(map[int]*Asset)}
	for _, a := range list {
		if err := r.add(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(a *Asset) error {
	if a == nil {
		return errors.New("nil asset")
	}
	if _, ok := r.assets[a.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateAsset, a.ID)
	}
	r.assets[a.ID] = a
	return nil
}

func (r *Registry) Add(a *Asset) error {
	if err := r.add(a); err != nil {
		return err
	}
	r.Changed.Invoke()
	return nil
}

// Replace swaps the whole catalog. UI state (focus, visibility, viewer
// position) carries over for ids present in both. On error the registry is
// unchanged.
func (r *Registry) Replace(list []*Asset) error {
	next := make(map[int]*Asset, len(list))
	for _, a := range list {
		if a == nil {
			continue
		}
		if _, ok := next[a.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateAsset, a.ID)
		}
		if old, ok := r.assets[a.ID]; ok {
			a.Focused = old.Focused
			a.Visible = old.Visible
			a.ViewerPos = old.ViewerPos
		}
		next[a.ID] = a
	}
	r.assets = next
	r.Changed.Invoke()
	return nil
}

func (r *Registry) Lookup(id int) (*Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAsset, id)
	}
	return a, nil
}

// All returns every asset ordered by id.
func (r *Registry) All() []*Asset {
	out := make([]*Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Len() int { return len(r.assets) }

// Instantiate returns a fresh deep clone of the asset's template.
func (r *Registry) Instantiate(id int) (engine.Node, error) {
	a, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	if a.Object == nil {
		return nil, fmt.Errorf("asset %d (%s) has no object", id, a.Name)
	}
	return a.Object.Clone(), nil
}

func (r *Registry) update(id int, fn func(a *Asset)) error {
	a, err := r.Lookup(id)
	if err != nil {
		return err
	}
	fn(a)
	r.Changed.Invoke()
	return nil
}

func (r *Registry) SetFocused(id int, focused bool) error {
	return r.update(id, func(a *Asset) { a.Focused = focused })
}

func (r *Registry) SetVisible(id int, visible bool) error {
	return r.update(id, func(a *Asset) { a.Visible = visible })
}

func (r *Registry) SetViewerPos(id int, pos *mgl32.Vec2) error {
	return r.update(id, func(a *Asset) { a.ViewerPos = pos })
}
