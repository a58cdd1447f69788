package section

import (
	"github.com/matzehuels/resumake/pkg/errors"
)

// Patch is a partial update for a section. Nil fields are left untouched.
// There is deliberately no way to patch ID or Type.
type Patch struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Jobs    *[]Job    `json:"jobs,omitempty"`
	Schools *[]School `json:"schools,omitempty"`
}

// String returns a pointer to s, for building Patch values.
func String(s string) *string { return &s }

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Jobs == nil && p.Schools == nil
}

// check rejects entry lists for sections whose kind does not carry them.
func (p Patch) check(sec Section) error {
	if p.Jobs != nil && sec.Kind() != KindJobs {
		return errors.New(errors.ErrCodeInvalidInput, "%s section %s has no job entries", sec.Type, sec.ID)
	}
	if p.Schools != nil && sec.Kind() != KindSchools {
		return errors.New(errors.ErrCodeInvalidInput, "%s section %s has no school entries", sec.Type, sec.ID)
	}
	return nil
}

func (p Patch) apply(s *Section) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
	if p.Jobs != nil {
		s.Jobs = append([]Job{}, (*p.Jobs)...)
	}
	if p.Schools != nil {
		s.Schools = append([]School{}, (*p.Schools)...)
	}
}

// Store owns the canonical ordered sequence of sections and the current
// selection.
//
// The zero value is not usable; use NewStore or NewStoreFrom.
// Store is not safe for concurrent use; callers serialize events (see the
// editor package).
type Store struct {
	sections []Section
	index    map[string]int // id -> position in sections
	selected string         // "" means no selection
}

// NewStore creates an empty store with no selection.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// NewStoreFrom creates a store holding secs in the given order.
// Every section must have a known type and a non-empty id that is unique
// within secs.
func NewStoreFrom(secs []Section) (*Store, error) {
	s := NewStore()
	for _, sec := range secs {
		if !sec.Type.Valid() {
			return nil, errors.New(errors.ErrCodeUnknownSectionType, "section %s: unknown type %q", sec.ID, sec.Type)
		}
		if sec.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "section of type %s has no id", sec.Type)
		}
		if _, dup := s.index[sec.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate section id %q", sec.ID)
		}
		if err := sec.CheckEntries(); err != nil {
			return nil, err
		}
		s.index[sec.ID] = len(s.sections)
		s.sections = append(s.sections, sec.Clone())
	}
	return s, nil
}

// Len returns the number of sections.
func (s *Store) Len() int { return len(s.sections) }

// Sections returns a copy of the canonical sequence.
func (s *Store) Sections() []Section {
	out := make([]Section, len(s.sections))
	for i, sec := range s.sections {
		out[i] = sec.Clone()
	}
	return out
}

// Get returns the section with the given id.
func (s *Store) Get(id string) (Section, bool) {
	i, ok := s.index[id]
	if !ok {
		return Section{}, false
	}
	return s.sections[i].Clone(), true
}

// Selected returns the selected section id, or "" when nothing is selected.
func (s *Store) Selected() string { return s.selected }

// Select marks id as the selected section. Selecting "" clears the
// selection. Returns NOT_FOUND (and keeps the selection) for unknown ids.
func (s *Store) Select(id string) error {
	if id == "" {
		s.selected = ""
		return nil
	}
	if _, ok := s.index[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "section %q not found", id)
	}
	s.selected = id
	return nil
}

// Add appends a new section of type t, initialized from the palette, and
// selects it. Returns UNKNOWN_SECTION_TYPE without changing state when t is
// not in the palette.
func (s *Store) Add(t Type) (Section, error) {
	sec, err := Instantiate(t)
	if err != nil {
		return Section{}, err
	}
	s.index[sec.ID] = len(s.sections)
	s.sections = append(s.sections, sec)
	s.selected = sec.ID
	return sec.Clone(), nil
}

// Update merges p into the section with the given id and returns the
// result. The section keeps its id, type and position. Returns NOT_FOUND
// when id is absent and INVALID_INPUT when p carries job or school entries
// the section's kind does not hold; state is unchanged in both cases.
func (s *Store) Update(id string, p Patch) (Section, error) {
	i, ok := s.index[id]
	if !ok {
		return Section{}, errors.New(errors.ErrCodeNotFound, "section %q not found", id)
	}
	if err := p.check(s.sections[i]); err != nil {
		return Section{}, err
	}
	p.apply(&s.sections[i])
	return s.sections[i].Clone(), nil
}

// Remove deletes the section with the given id, keeping the relative order
// of the rest. A removed selection becomes no selection. Returns NOT_FOUND
// without changing state when id is absent.
func (s *Store) Remove(id string) error {
	i, ok := s.index[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "section %q not found", id)
	}
	s.sections = append(s.sections[:i], s.sections[i+1:]...)
	s.reindex()
	if s.selected == id {
		s.selected = ""
	}
	return nil
}

// ReplaceOrder commits seq as the new canonical order. seq must hold every
// current id exactly once; otherwise SEQUENCE_MISMATCH is returned and the
// store is left untouched.
//
// Only the order is taken from seq. Section content always comes from the
// store, so a stale snapshot cannot roll back edits.
func (s *Store) ReplaceOrder(seq []Section) error {
	if len(seq) != len(s.sections) {
		return errors.New(errors.ErrCodeSequenceMismatch,
			"sequence has %d sections, store has %d", len(seq), len(s.sections))
	}
	seen := make(map[string]struct{}, len(seq))
	for _, sec := range seq {
		if _, ok := s.index[sec.ID]; !ok {
			return errors.New(errors.ErrCodeSequenceMismatch, "sequence references unknown section %q", sec.ID)
		}
		if _, dup := seen[sec.ID]; dup {
			return errors.New(errors.ErrCodeSequenceMismatch, "sequence repeats section %q", sec.ID)
		}
		seen[sec.ID] = struct{}{}
	}

	next := make([]Section, len(seq))
	for i, sec := range seq {
		next[i] = s.sections[s.index[sec.ID]]
	}
	s.sections = next
	s.reindex()
	return nil
}

func (s *Store) reindex() {
	clear(s.index)
	for i, sec := range s.sections {
		s.index[sec.ID] = i
	}
}
