package models

import "fmt"

type PageDimensions struct {
	Width  float64
	Height float64
}

// DocumentInfo describes an open PDF document.
type DocumentInfo struct {
	Path      string
	PageCount int
}

// TagCounts is a per-tag total for one document.
type TagCounts struct {
	Known  int
	Review int
	Hard   int
}

// Tagged returns the number of pages carrying any tag.
func (c TagCounts) Tagged() int {
	return c.Known + c.Review + c.Hard
}

// Summary renders counts with percentages relative to pageCount, in the
// fixed Known/Review/Hard order. Zero-count tags are omitted.
func (c TagCounts) Summary(pageCount int) string {
	if pageCount == 0 {
		return ""
	}
	out := ""
	for _, entry := range []struct {
		name  string
		count int
	}{
		{"Known", c.Known},
		{"Review", c.Review},
		{"Hard", c.Hard},
	} {
		if entry.count == 0 {
			continue
		}
		if out != "" {
			out += " | "
		}
		percent := float64(entry.count) / float64(pageCount) * 100
		out += fmt.Sprintf("%s %d (%.0f%%)", entry.name, entry.count, percent)
	}
	return out
}
