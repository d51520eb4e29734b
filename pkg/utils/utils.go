package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdftagger/pdftagger/pkg/models"
)

// DefaultExportSuffix is appended to a document's base name when exporting
// the filtered view without an explicit output path.
const DefaultExportSuffix = "_filtered"

// DefaultExportPath returns the conventional output path for a filtered
// export of docPath: same directory, "<base>_filtered.pdf".
func DefaultExportPath(docPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultExportSuffix
	}
	ext := filepath.Ext(docPath)
	return strings.TrimSuffix(docPath, ext) + suffix + ".pdf"
}

// ParsePageList parses a comma-separated list of one-based page numbers
// ("5,2,7") into zero-based indices, preserving order. Non-numbers, pages
// below 1, and duplicates are errors.
func ParsePageList(list string) ([]int, error) {
	var pages []int
	seen := make(map[int]struct{})
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		if n < 1 {
			return nil, fmt.Errorf("page numbers are one-based, got %d", n)
		}
		if _, ok := seen[n-1]; ok {
			return nil, fmt.Errorf("duplicate page %d", n)
		}
		seen[n-1] = struct{}{}
		pages = append(pages, n-1)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("empty page list: %q", list)
	}
	return pages, nil
}

// TagAssignment pairs a zero-based page index with the tag to apply.
type TagAssignment struct {
	Page int
	Tag  models.Tag
}

// ParseTagAssignments parses "5=hard,2=known" (one-based pages, lowercase
// or capitalized tag names, "none" clears) into ordered assignments.
func ParseTagAssignments(list string) ([]TagAssignment, error) {
	var out []TagAssignment
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pageStr, name, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q, want page=tag", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(pageStr))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page number %q in %q", pageStr, part)
		}
		var tag models.Tag
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "none", "clear":
			tag = models.TagNone
		case "known":
			tag = models.TagKnown
		case "review":
			tag = models.TagReview
		case "hard":
			tag = models.TagHard
		default:
			return nil, fmt.Errorf("unknown tag %q in %q", name, part)
		}
		out = append(out, TagAssignment{Page: n - 1, Tag: tag})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty assignment list: %q", list)
	}
	return out, nil
}
