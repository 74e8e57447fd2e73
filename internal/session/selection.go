package session

import "autosuggest/internal/domain"

// SelectNext advances to the successor, wrapping from the last element (or
// from no selection) to the first.
func (s *Session) SelectNext() {
	n := len(s.items)
	if n == 0 {
		s.selected = nil
		return
	}
	i := domain.IndexOf(s.items, s.selected)
	if i < 0 || i == n-1 {
		s.selected = s.items[0]
		return
	}
	s.selected = s.items[i+1]
}

// SelectPrev moves to the predecessor, wrapping from the first element to the
// last. The scan runs from the tail; a selection that is not in the list
// lands on the first element.
func (s *Session) SelectPrev() {
	n := len(s.items)
	if n == 0 {
		s.selected = nil
		return
	}
	if s.IsSelected(s.items[0]) {
		s.selected = s.items[n-1]
		return
	}
	for i := n - 1; i > 0; i-- {
		if s.IsSelected(s.items[i]) || i == 1 {
			s.selected = s.items[i-1]
			return
		}
	}
	// single element list with no selection
	s.selected = s.items[0]
}
