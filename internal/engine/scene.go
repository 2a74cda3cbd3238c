package engine

type Scene struct {
	Name  string
	Nodes []Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		Nodes: make([]Node, 0),
	}
}

// AddNode adds n as a root, detaching it from any previous parent or scene.
func (s *Scene) AddNode(n Node) {
	if n.Base().scene == s && n.Base().parent == nil {
		return
	}
	Detach(n)
	n.Base().scene = s
	s.Nodes = append(s.Nodes, n)
}

func (s *Scene) RemoveNode(n Node) bool {
	for i, obj := range s.Nodes {
		if obj == n {
			s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
			n.Base().scene = nil
			return true
		}
	}
	return false
}

// Contains reports whether n is attached anywhere in this scene.
func (s *Scene) Contains(n Node) bool {
	return n.Base().Scene() == s
}

func (s *Scene) FindByName(name string) Node {
	var found Node
	s.Walk(func(n Node) bool {
		if found != nil {
			return false
		}
		if n.Base().Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits every node of the scene depth first.
func (s *Scene) Walk(fn func(Node) bool) {
	for _, n := range s.Nodes {
		Walk(n, fn)
	}
}

func (s *Scene) Clear() {
	for _, n := range s.Nodes {
		n.Base().scene = nil
	}
	s.Nodes = s.Nodes[:0]
}
