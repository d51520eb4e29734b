// Package filter derives the visible page list from a tag store and the set
// of tags the user has enabled.
package filter

import (
	"fmt"
	"strings"

	"github.com/pdftagger/pdftagger/internal/tagstore"
	"github.com/pdftagger/pdftagger/pkg/models"
)

// TagSet is a set of tag variants, including models.TagNone for untagged
// pages. Four variants fit comfortably in a bitset.
type TagSet uint8

// NewTagSet builds a set containing the given tags.
func NewTagSet(tags ...models.Tag) TagSet {
	var set TagSet
	for _, tag := range tags {
		set = set.Add(tag)
	}
	return set
}

// All returns the set with every variant enabled, which makes every page
// visible.
func All() TagSet {
	return NewTagSet(models.TagNone, models.TagKnown, models.TagReview, models.TagHard)
}

func (s TagSet) Add(tag models.Tag) TagSet {
	return s | 1<<tag
}

func (s TagSet) Remove(tag models.Tag) TagSet {
	return s &^ (1 << tag)
}

func (s TagSet) Has(tag models.Tag) bool {
	return s&(1<<tag) != 0
}

func (s TagSet) IsEmpty() bool {
	return s == 0
}

func (s TagSet) String() string {
	var names []string
	for _, tag := range []models.Tag{models.TagNone, models.TagKnown, models.TagReview, models.TagHard} {
		if s.Has(tag) {
			names = append(names, tag.String())
		}
	}
	return strings.Join(names, ",")
}

// ParseTagSet builds a set from a comma-separated list of tag names, e.g.
// "known,hard" or "None,Review". Names are case-insensitive here because
// they arrive from the command line rather than the sidecar file.
func ParseTagSet(list string) (TagSet, error) {
	var set TagSet
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		var tag models.Tag
		switch strings.ToLower(name) {
		case "none", "untagged":
			tag = models.TagNone
		case "known":
			tag = models.TagKnown
		case "review":
			tag = models.TagReview
		case "hard":
			tag = models.TagHard
		default:
			return 0, fmt.Errorf("invalid filter %q", name)
		}
		set = set.Add(tag)
	}
	if set.IsEmpty() {
		return 0, fmt.Errorf("empty filter list: %q", list)
	}
	return set, nil
}

// VisiblePages returns, in increasing order, every page of [0, pageCount)
// whose tag is in set. Pure function of its inputs; cheap enough to
// recompute on every filter toggle.
func VisiblePages(store *tagstore.Store, set TagSet, pageCount int) []int {
	visible := make([]int, 0, pageCount)
	for page := 0; page < pageCount; page++ {
		if set.Has(store.Get(page)) {
			visible = append(visible, page)
		}
	}
	return visible
}

// NearestVisible picks the position in visible to land on after a filter
// change, given the page the user was looking at. The current page wins if
// still visible; otherwise the next visible page after it, then the nearest
// one before it, then 0. Returns -1 when visible is empty.
func NearestVisible(visible []int, current int) int {
	if len(visible) == 0 {
		return -1
	}
	for i, page := range visible {
		if page == current {
			return i
		}
		if page > current {
			return i
		}
	}
	return len(visible) - 1
}
