// Package placement decides whether a dragged node may be dropped where it is
// and snaps drag positions to the placement grid.
package placement

import (
	"fmt"
	"strings"

	"placer/internal/engine"
	"placer/internal/physics"
)

// Policy selects how a node's bounds are compared with an area volume.
type Policy int

const (
	// PolicyIntersects accepts a node that overlaps any volume.
	PolicyIntersects Policy = iota
	// PolicyContains accepts a node that lies wholly inside one volume.
	PolicyContains
)

func (p Policy) String() string {
	switch p {
	case PolicyIntersects:
		return "intersects"
	case PolicyContains:
		return "contains"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "intersects":
		return PolicyIntersects, nil
	case "contains":
		return PolicyContains, nil
	default:
		return 0, fmt.Errorf("unknown placement policy %q", s)
	}
}

type Validator struct {
	Policy Policy
}

func NewValidator(p Policy) *Validator {
	return &Validator{Policy: p}
}

// IsValidPlacement reports whether node is acceptable for at least one of
// volumes. An empty volume list is never valid.
func (v *Validator) IsValidPlacement(node engine.Node, volumes []Volume) bool {
	return v.Check(node, volumes, false)
}

// Check is IsValidPlacement with an escape hatch for assets that may be
// placed anywhere.
func (v *Validator) Check(node engine.Node, volumes []Volume, unrestricted bool) bool {
	if node == nil {
		return false
	}
	if len(volumes) == 0 {
		return unrestricted
	}

	bounds := physics.WorldBounds(node)
	if bounds.IsEmpty() {
		return false
	}

	for _, vol := range volumes {
		switch v.Policy {
		case PolicyContains:
			if vol.Bounds.Contains(bounds) {
				return true
			}
		default:
			if vol.Bounds.Intersects(bounds) {
				return true
			}
		}
	}
	return false
}
