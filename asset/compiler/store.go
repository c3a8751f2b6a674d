package compiler

import (
	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/asset/scene"
)

// The Store owns the global arrays shared by all loaded models. Triangles
// and nodes are only ever appended; once appended, all indices stored in
// them are absolute offsets into these arrays. The instance array is
// rebuilt from the live object list whenever objects change.
//
// A Store is not safe for concurrent use.
type Store struct {
	Triangles []input.Triangle
	Nodes     []scene.BvhNode
	Instances []InstanceRecord
	Materials []scene.Material
}

// Create an empty store.
func NewStore() *Store {
	return &Store{
		Triangles: make([]input.Triangle, 0),
		Nodes:     make([]scene.BvhNode, 0),
		Instances: make([]InstanceRecord, 0),
		Materials: make([]scene.Material, 0),
	}
}

// Append the geometry of a model whose indices have already been remapped
// to absolute offsets.
func (s *Store) appendModel(tris []input.Triangle, nodes []scene.BvhNode) {
	s.Triangles = append(s.Triangles, tris...)
	s.Nodes = append(s.Nodes, nodes...)
}

func (s *Store) resetInstances() {
	s.Instances = s.Instances[:0]
}
