package drag

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"placer/internal/engine"
	"placer/internal/placement"
)

type State int

const (
	Idle State = iota
	Hovered
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovered:
		return "hovered"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Input is one frame of pointer state for a viewport.
type Input struct {
	NDC      mgl32.Vec2 // [-1,1] on both axes, +Y up
	Pressed  bool       // went down this frame
	Held     bool       // is down
	InBounds bool       // pointer is inside the viewport
}

type Origin int

const (
	// OriginLocal sessions start from a pick in this viewport.
	OriginLocal Origin = iota
	// OriginBroadcast sessions start from another viewport's broadcast.
	OriginBroadcast
)

func (o Origin) String() string {
	if o == OriginBroadcast {
		return "broadcast"
	}
	return "local"
}

// Session is the state of one in-progress drag.
type Session struct {
	Node         engine.Node
	AssetID      int
	AssetName    string
	Volumes      []placement.Volume
	Unrestricted bool
	Valid        bool
	Origin       Origin

	// placed is set when an already placed node is being moved again.
	placed *Placement
}

// Placement is a committed asset instance in the scene.
type Placement struct {
	ID       uuid.UUID
	AssetID  int
	Node     engine.Node
	Position mgl32.Vec3
}

// Cancellation describes a drag that ended without a placement.
type Cancellation struct {
	AssetID int
	Reason  CancelReason
}

type CancelReason int

const (
	ReasonInvalid CancelReason = iota
	ReasonOutOfBounds
	ReasonSuperseded
	ReasonAborted
)

func (r CancelReason) String() string {
	switch r {
	case ReasonInvalid:
		return "invalid placement"
	case ReasonOutOfBounds:
		return "released outside viewport"
	case ReasonSuperseded:
		return "superseded by another drag"
	case ReasonAborted:
		return "aborted"
	default:
		return fmt.Sprintf("CancelReason(%d)", int(r))
	}
}
