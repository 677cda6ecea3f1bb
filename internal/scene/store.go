package scene

import (
	"sort"

	"github.com/jinzhu/copier"

	"cad-engine/internal/model"
)

// Store is the persistent name→model map a multi-turn session keeps outside
// the per-turn working set. Created at session start, cleared on explicit
// reset; a second model retained under an existing name replaces the entry
// (last writer wins). Entries are deep copies, so later turns cannot mutate
// what a previous turn retained.
type Store struct {
	entries map[string]*model.Model
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*model.Model)}
}

// Retain saves a deep copy of m under its name.
func (st *Store) Retain(m *model.Model) error {
	clone := &model.Model{}
	if err := copier.CopyWithOption(clone, m, copier.Option{DeepCopy: true}); err != nil {
		return err
	}
	st.entries[m.Name] = clone
	return nil
}

// Get returns a deep copy of the stored model, or nil if absent.
func (st *Store) Get(name string) *model.Model {
	m, ok := st.entries[name]
	if !ok {
		return nil
	}
	clone := &model.Model{}
	if err := copier.CopyWithOption(clone, m, copier.Option{DeepCopy: true}); err != nil {
		return nil
	}
	return clone
}

// Names returns the stored names, sorted.
func (st *Store) Names() []string {
	out := make([]string, 0, len(st.entries))
	for name := range st.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Remove drops the entry with the given name, if present.
func (st *Store) Remove(name string) {
	delete(st.entries, name)
}

// Clear drops every entry.
func (st *Store) Clear() {
	st.entries = make(map[string]*model.Model)
}

// Len returns the number of stored models.
func (st *Store) Len() int { return len(st.entries) }

// Session ties a store to successive per-turn scenes.
type Session struct {
	store *Store
	turn  *Scene
}

// NewSession returns a session with an empty store and no open turn.
func NewSession() *Session {
	return &Session{store: NewStore()}
}

// Store exposes the session's persistent store.
func (s *Session) Store() *Store { return s.store }

// BeginTurn opens a fresh working set seeded with copies of every stored
// model, so a later turn can transform what an earlier turn created. The
// copies are independent; the store only picks up changes at EndTurn.
func (s *Session) BeginTurn() *Scene {
	s.turn = New()
	for _, name := range s.store.Names() {
		if m := s.store.Get(name); m != nil {
			s.turn.Add(m)
		}
	}
	return s.turn
}

// EndTurn retains every model of the current turn into the store and closes
// the turn. Safe to call with no open turn.
func (s *Session) EndTurn() error {
	if s.turn == nil {
		return nil
	}
	for _, m := range s.turn.Models() {
		if err := s.store.Retain(m); err != nil {
			return err
		}
	}
	s.turn = nil
	return nil
}
