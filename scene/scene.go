// Package scene holds the factory scene graph: named nodes in a parent
// chain, world-space triangles for picking, and swappable materials.
package scene

import (
	"fmt"

	"github.com/ansipixels/twincam/math3d"
)

// NodeID is a stable identifier for a node, unique within one Scene.
type NodeID int

// Triangle is one world-space triangle.
type Triangle [3]math3d.Vec3

// Node is a scene graph entry. Group nodes have no triangles.
type Node struct {
	ID       NodeID
	Name     string
	Parent   *Node
	Children []*Node

	// Triangles are stored in world space so picking needs no transforms.
	Triangles []Triangle
	// Material is swapped (never mutated) by highlighting code.
	Material *Material
	Bounds   math3d.AABB
}

// IsMesh reports whether the node carries geometry.
func (n *Node) IsMesh() bool {
	return len(n.Triangles) > 0
}

// Label returns the node name, or a synthesized "object-<id>" when empty.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("object-%d", n.ID)
}

// Scene is a tree of nodes rooted at Root.
type Scene struct {
	Root   *Node
	nodes  map[NodeID]*Node
	meshes []*Node
	nextID NodeID
}

// New creates an empty scene whose root carries the given name.
func New(rootName string) *Scene {
	s := &Scene{nodes: make(map[NodeID]*Node)}
	s.Root = s.newNode(nil, rootName)
	return s
}

func (s *Scene) newNode(parent *Node, name string) *Node {
	s.nextID++
	n := &Node{ID: s.nextID, Name: name, Parent: parent, Bounds: math3d.EmptyAABB()}
	s.nodes[n.ID] = n
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

// AddGroup adds a geometry-less node under parent (Root when nil).
func (s *Scene) AddGroup(parent *Node, name string) *Node {
	if parent == nil {
		parent = s.Root
	}
	return s.newNode(parent, name)
}

// AddMesh adds a renderable node under parent (Root when nil).
func (s *Scene) AddMesh(parent *Node, name string, tris []Triangle, mat *Material) *Node {
	if parent == nil {
		parent = s.Root
	}
	if mat == nil {
		mat = DefaultMaterial()
	}
	n := s.newNode(parent, name)
	n.Triangles = tris
	n.Material = mat
	for _, t := range tris {
		n.Bounds = n.Bounds.Extend(t[0]).Extend(t[1]).Extend(t[2])
	}
	s.meshes = append(s.meshes, n)
	return n
}

// Node looks up a node by id.
func (s *Scene) Node(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Meshes returns the renderable nodes in insertion order.
func (s *Scene) Meshes() []*Node {
	return s.meshes
}

// MeshCount returns the number of renderable nodes.
func (s *Scene) MeshCount() int {
	return len(s.meshes)
}

// TriangleCount returns the number of triangles over all meshes.
func (s *Scene) TriangleCount() int {
	count := 0
	for _, m := range s.meshes {
		count += len(m.Triangles)
	}
	return count
}

// FindMeshes returns the meshes whose name is exactly one of names.
func (s *Scene) FindMeshes(names ...string) []*Node {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var found []*Node
	for _, m := range s.meshes {
		if want[m.Name] {
			found = append(found, m)
		}
	}
	return found
}

// Bounds returns the union of all mesh bounds.
func (s *Scene) Bounds() math3d.AABB {
	b := math3d.EmptyAABB()
	for _, m := range s.meshes {
		b = b.Union(m.Bounds)
	}
	return b
}

// Remove detaches the node and its subtree and returns the removed ids so
// owners of per-node caches can drop their entries.
func (s *Scene) Remove(id NodeID) []NodeID {
	n, ok := s.nodes[id]
	if !ok || n == s.Root {
		return nil
	}
	if p := n.Parent; p != nil {
		for i, c := range p.Children {
			if c == n {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	var removed []NodeID
	Walk(n, func(c *Node) {
		removed = append(removed, c.ID)
		delete(s.nodes, c.ID)
	})
	kept := s.meshes[:0]
	for _, m := range s.meshes {
		if _, ok := s.nodes[m.ID]; ok {
			kept = append(kept, m)
		}
	}
	s.meshes = kept
	return removed
}

// Walk visits n and all its descendants depth-first.
func Walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
