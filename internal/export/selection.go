package export

import "errors"

// ErrDuplicatePage is returned when a page is added to a selection twice.
// Duplicates are rejected so an exported document is a deterministic
// function of which pages were picked.
var ErrDuplicatePage = errors.New("page already in selection")

// Selection is the ordered set of page indices the user has picked for
// export. Order is insertion order; membership is unique. A selection is
// transient: it is never persisted and is discarded on document change.
type Selection struct {
	pages  []int
	member map[int]struct{}
}

func NewSelection() *Selection {
	return &Selection{member: make(map[int]struct{})}
}

// Add appends page to the selection. Adding a page that is already present
// returns ErrDuplicatePage and leaves the selection unchanged.
func (s *Selection) Add(page int) error {
	if _, ok := s.member[page]; ok {
		return ErrDuplicatePage
	}
	s.member[page] = struct{}{}
	s.pages = append(s.pages, page)
	return nil
}

// Remove drops page from the selection, preserving the order of the rest.
func (s *Selection) Remove(page int) {
	if _, ok := s.member[page]; !ok {
		return
	}
	delete(s.member, page)
	for i, p := range s.pages {
		if p == page {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			break
		}
	}
}

// Contains reports whether page is selected.
func (s *Selection) Contains(page int) bool {
	_, ok := s.member[page]
	return ok
}

// Toggle adds page if absent and removes it if present.
func (s *Selection) Toggle(page int) {
	if s.Contains(page) {
		s.Remove(page)
		return
	}
	s.Add(page)
}

func (s *Selection) Len() int {
	return len(s.pages)
}

// Pages returns the selected page indices in selection order.
func (s *Selection) Pages() []int {
	out := make([]int, len(s.pages))
	copy(out, s.pages)
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.pages = s.pages[:0]
	s.member = make(map[int]struct{})
}
