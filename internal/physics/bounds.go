package physics

import (
	"placer/internal/engine"
)

// MeshBounds returns the world-space axis-aligned bounds of a single mesh.
func MeshBounds(m *engine.Mesh) AABB {
	local := AABB{Min: m.Geometry.Min, Max: m.Geometry.Max}
	return local.Transform(engine.WorldMatrix(m))
}

// WorldBounds returns the union of the world bounds of every mesh under n.
// Nodes without meshes have empty bounds.
func WorldBounds(n engine.Node) AABB {
	out := EmptyAABB()
	for _, m := range engine.Meshes(n) {
		out = out.Union(MeshBounds(m))
	}
	return out
}
