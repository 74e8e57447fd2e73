// Package session holds the mutable state of one fetch-to-selection cycle:
// the installed suggestion list, the text it was fetched for, the highlighted
// entry and the generation counter used to fence stale fetch results.
package session

import "autosuggest/internal/domain"

// Session is not safe for concurrent use; it is owned by the event loop.
type Session struct {
	items      []domain.Suggestion
	text       string
	selected   domain.Suggestion
	generation uint64
}

// New creates an empty session
func New() *Session {
	return &Session{}
}

// Generation returns the current generation
func (s *Session) Generation() uint64 {
	return s.generation
}

// Bump advances the generation and returns the new value
func (s *Session) Bump() uint64 {
	s.generation++
	return s.generation
}

// Install replaces the list with items fetched for text and selects the
// first element. A nil slice installs an empty list.
func (s *Session) Install(text string, items []domain.Suggestion) {
	s.items = make([]domain.Suggestion, len(items))
	copy(s.items, items)
	s.text = text
	s.selected = nil
	if len(s.items) > 0 {
		s.selected = s.items[0]
	}
}

// Clear empties the list, unsets the selection and bumps the generation
func (s *Session) Clear() {
	s.generation++
	s.items = nil
	s.text = ""
	s.selected = nil
}

// Items returns the installed list. Callers must not modify it.
func (s *Session) Items() []domain.Suggestion {
	return s.items
}

// Len returns the number of installed suggestions
func (s *Session) Len() int {
	return len(s.items)
}

// Text returns the input text the list was fetched for
func (s *Session) Text() string {
	return s.text
}

// Selected returns the highlighted suggestion, or nil
func (s *Session) Selected() domain.Suggestion {
	return s.selected
}

// HasSelection reports whether a suggestion is highlighted
func (s *Session) HasSelection() bool {
	return s.selected != nil
}

// IsSelected reports whether item is the highlighted suggestion
func (s *Session) IsSelected(item domain.Suggestion) bool {
	return s.selected != nil && domain.Same(s.selected, item)
}
