// Package notify carries short user-facing messages from the placement logic
// to whatever draws them.
package notify

import (
	"fmt"
	"time"

	"placer/internal/engine"
)

type Type int

const (
	Success Type = iota
	Error
	Warning
	Info
)

func (t Type) String() string {
	switch t {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

type Notification struct {
	Type    Type
	Message string
	At      time.Time
}

// Center fans notifications out to subscribers and remembers the latest one
// for display.
type Center struct {
	// Duration is how long Current keeps returning the latest notification.
	Duration time.Duration
	Now      func() time.Time

	latest    Notification
	has       bool
	published engine.EventWithArg[Notification]
}

func NewCenter(d time.Duration) *Center {
	return &Center{Duration: d, Now: time.Now}
}

func (c *Center) Publish(t Type, msg string) {
	n := Notification{Type: t, Message: msg, At: c.Now()}
	c.latest = n
	c.has = true
	c.published.Invoke(n)
}

func (c *Center) Success(msg string) { c.Publish(Success, msg) }

func (c *Center) Errorf(format string, args ...any) {
	c.Publish(Error, fmt.Sprintf(format, args...))
}

func (c *Center) Infof(format string, args ...any) {
	c.Publish(Info, fmt.Sprintf(format, args...))
}

func (c *Center) Subscribe(fn func(Notification)) (unsubscribe func()) {
	id := c.published.AddListener(fn)
	return func() { c.published.RemoveListener(id) }
}

// Last returns the most recent notification regardless of age.
func (c *Center) Last() (Notification, bool) {
	return c.latest, c.has
}

// Current returns the latest notification while it is still on screen.
func (c *Center) Current(now time.Time) (Notification, bool) {
	if !c.has || now.Sub(c.latest.At) >= c.Duration {
		return Notification{}, false
	}
	return c.latest, true
}
