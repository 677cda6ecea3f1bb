// Package scene holds the mutable working set for one turn — named models
// plus pending operations — and the persistent store that keeps models
// across turns. The pipeline is single-threaded: one batch is processed
// end to end before the next, so there is no locking here.
package scene

import (
	"cad-engine/internal/model"
)

// Scene is the working set for one turn. Models keep insertion order (mesh
// output order follows it); names are unique, with last-writer-wins
// semantics on collision.
type Scene struct {
	models []*model.Model
	index  map[string]*model.Model
	ops    []*model.Operation
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{index: make(map[string]*model.Model)}
}

// Add inserts a model. A model with an existing name replaces the previous
// one in place, keeping its slot in the output order.
func (s *Scene) Add(m *model.Model) {
	if _, exists := s.index[m.Name]; exists {
		for i, old := range s.models {
			if old.Name == m.Name {
				s.models[i] = m
				break
			}
		}
	} else {
		s.models = append(s.models, m)
	}
	s.index[m.Name] = m
}

// Lookup returns the model with the given name, or nil.
func (s *Scene) Lookup(name string) *model.Model {
	return s.index[name]
}

// Models returns the models in insertion order. The slice is a copy; the
// models are not.
func (s *Scene) Models() []*model.Model {
	out := make([]*model.Model, len(s.models))
	copy(out, s.models)
	return out
}

// Len returns the number of models in the working set.
func (s *Scene) Len() int { return len(s.models) }

// PushOperation queues an operation for the materializer.
func (s *Scene) PushOperation(op *model.Operation) {
	s.ops = append(s.ops, op)
}

// Operations returns the pending operations in queue order.
func (s *Scene) Operations() []*model.Operation {
	out := make([]*model.Operation, len(s.ops))
	copy(out, s.ops)
	return out
}

// TakeOperations removes and returns the pending operations. The
// materializer consumes each operation exactly once; callers keep the
// returned slice only for audit.
func (s *Scene) TakeOperations() []*model.Operation {
	ops := s.ops
	s.ops = nil
	return ops
}

// Reset clears models and pending operations. Models survive a reset only
// if they were retained in a Store beforehand.
func (s *Scene) Reset() {
	s.models = nil
	s.ops = nil
	s.index = make(map[string]*model.Model)
}
