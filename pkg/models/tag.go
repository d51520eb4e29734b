package models

import "fmt"

// Tag is the review label attached to a single page. TagNone means the page
// carries no label; it is never written to the sidecar file.
type Tag uint8

const (
	TagNone Tag = iota
	TagKnown
	TagReview
	TagHard
)

// Display colors matching the desktop UI, keyed by tag.
const (
	ColorKnown    = "#4CAF50"
	ColorReview   = "#FFEB3B"
	ColorHard     = "#F44336"
	ColorUntagged = "#444444"
)

// Tags lists every taggable variant, excluding TagNone.
var Tags = []Tag{TagKnown, TagReview, TagHard}

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagKnown:
		return "Known"
	case TagReview:
		return "Review"
	case TagHard:
		return "Hard"
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Color returns the display hex color for the tag.
func (t Tag) Color() string {
	switch t {
	case TagKnown:
		return ColorKnown
	case TagReview:
		return ColorReview
	case TagHard:
		return ColorHard
	}
	return ColorUntagged
}

// ParseTag maps a tag name to its Tag value. Names are matched exactly as
// serialized ("Known", "Review", "Hard", "None"); anything else is an error.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "None":
		return TagNone, nil
	case "Known":
		return TagKnown, nil
	case "Review":
		return TagReview, nil
	case "Hard":
		return TagHard, nil
	}
	return TagNone, fmt.Errorf("unknown tag name: %q", name)
}
