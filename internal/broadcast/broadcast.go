// Package broadcast holds the single "currently dragged asset" value shared
// between viewports.
package broadcast

import (
	"placer/internal/engine"
)

// Change is delivered to subscribers on every write. Active is false after a
// Clear.
type Change struct {
	AssetID int
	Active  bool
}

// Channel is an observable single value. Writes are delivered synchronously,
// in subscription order, before Set or Clear returns. The last writer wins.
// A Channel is not safe for concurrent use; it lives on the frame loop.
type Channel struct {
	value   Change
	changed engine.EventWithArg[Change]
}

func New() *Channel {
	return &Channel{}
}

func (c *Channel) Set(id int) {
	c.write(Change{AssetID: id, Active: true})
}

func (c *Channel) Clear() {
	c.write(Change{})
}

func (c *Channel) write(v Change) {
	c.value = v
	c.changed.Invoke(v)
}

// Get returns the current asset id, or false when nothing is being dragged.
func (c *Channel) Get() (int, bool) {
	return c.value.AssetID, c.value.Active
}

// Subscribe registers fn and returns a function that removes it.
func (c *Channel) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := c.changed.AddListener(fn)
	return func() { c.changed.RemoveListener(id) }
}

func (c *Channel) Subscribers() int {
	return c.changed.GetListenerCount()
}
