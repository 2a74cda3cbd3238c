package viewport

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const maxUndoStack = 50

type undoKind int

const (
	undoPlace undoKind = iota
	undoMove
)

// undoState is one committed drag that can be reverted.
type undoState struct {
	kind    undoKind
	id      uuid.UUID
	assetID int
	from    mgl32.Vec3 // previous position, for undoMove
}

type undoStack struct {
	states []undoState
}

func (s *undoStack) push(st undoState) {
	if len(s.states) >= maxUndoStack {
		s.states = s.states[1:]
	}
	s.states = append(s.states, st)
}

func (s *undoStack) pop() (undoState, bool) {
	if len(s.states) == 0 {
		return undoState{}, false
	}
	st := s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]
	return st, true
}

func (s *undoStack) len() int { return len(s.states) }
