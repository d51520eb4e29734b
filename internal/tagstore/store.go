// Package tagstore holds the per-page review tags of an open document and
// keeps them durable in a JSON sidecar file next to the PDF.
package tagstore

import (
	"sort"

	"github.com/pdftagger/pdftagger/pkg/models"
)

// Store maps page indices to tags for a document with a fixed page count.
// Only non-None tags are stored; absence of an entry means models.TagNone.
//
// A Store belongs to exactly one open-document session and is mutated from a
// single control flow; it carries no locking of its own.
type Store struct {
	pageCount int
	tags      map[int]models.Tag
}

// New returns an empty store for a document with pageCount pages.
func New(pageCount int) *Store {
	return &Store{
		pageCount: pageCount,
		tags:      make(map[int]models.Tag),
	}
}

func (s *Store) PageCount() int {
	return s.pageCount
}

// Set records tag for page, overwriting any previous tag. Setting
// models.TagNone removes the entry. Page must be in [0, PageCount());
// callers clamp before calling, out-of-range pages are ignored.
func (s *Store) Set(page int, tag models.Tag) {
	if page < 0 || page >= s.pageCount {
		return
	}
	if tag == models.TagNone {
		delete(s.tags, page)
		return
	}
	s.tags[page] = tag
}

// Get returns the tag for page, or models.TagNone if the page is untagged
// or out of range.
func (s *Store) Get(page int) models.Tag {
	return s.tags[page]
}

// Clear removes any tag from page.
func (s *Store) Clear(page int) {
	s.Set(page, models.TagNone)
}

// Len returns the number of tagged pages.
func (s *Store) Len() int {
	return len(s.tags)
}

// Pages returns the indices of all tagged pages in increasing order.
func (s *Store) Pages() []int {
	pages := make([]int, 0, len(s.tags))
	for page := range s.tags {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

// Counts totals the tagged pages per tag.
func (s *Store) Counts() models.TagCounts {
	var counts models.TagCounts
	for _, tag := range s.tags {
		switch tag {
		case models.TagKnown:
			counts.Known++
		case models.TagReview:
			counts.Review++
		case models.TagHard:
			counts.Hard++
		}
	}
	return counts
}

// Equal reports whether both stores hold the same (page, tag) pairs.
func (s *Store) Equal(other *Store) bool {
	if len(s.tags) != len(other.tags) {
		return false
	}
	for page, tag := range s.tags {
		if other.tags[page] != tag {
			return false
		}
	}
	return true
}
