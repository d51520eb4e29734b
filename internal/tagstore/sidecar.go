package tagstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdftagger/pdftagger/pkg/models"
)

// SidecarSuffix is appended to a document's base name to form its tag file.
const SidecarSuffix = "_pdf-tagger-sav.json"

// ErrMalformedSidecar marks a sidecar file that could not be parsed. Load
// still returns a usable empty store alongside it.
var ErrMalformedSidecar = errors.New("malformed sidecar file")

// SidecarPath returns the tag file path for a document: same directory,
// document base name without extension, plus SidecarSuffix.
func SidecarPath(docPath string) string {
	ext := filepath.Ext(docPath)
	return strings.TrimSuffix(docPath, ext) + SidecarSuffix
}

// Load reads the sidecar file at path for a document with pageCount pages.
// An absent file yields an empty store and no error. A file that cannot be
// read or parsed yields an empty store and an error wrapping
// ErrMalformedSidecar, so callers can warn and continue.
//
// Entries for out-of-range pages or unknown tag names are dropped. Tags are
// keyed by page index, so a document whose page order changed since the
// sidecar was written will have tags on the wrong pages; that is a known
// limitation of the format.
func Load(path string, pageCount int) (*Store, error) {
	store := New(pageCount)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return store, fmt.Errorf("%w: reading %s: %v", ErrMalformedSidecar, path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return store, fmt.Errorf("%w: parsing %s: %v", ErrMalformedSidecar, path, err)
	}

	for key, name := range raw {
		page, err := strconv.Atoi(key)
		if err != nil || page < 0 || page >= pageCount {
			continue
		}
		tag, err := models.ParseTag(name)
		if err != nil {
			continue
		}
		store.Set(page, tag)
	}

	return store, nil
}

// Save writes the store's non-None entries to path as JSON, keyed by the
// decimal page index. The file is written to a temp file in the same
// directory and renamed into place so a crash mid-write never leaves a
// truncated sidecar behind.
func (s *Store) Save(path string) error {
	raw := make(map[string]string, len(s.tags))
	for page, tag := range s.tags {
		raw[strconv.Itoa(page)] = tag.String()
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp sidecar: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write sidecar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close sidecar: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace sidecar: %w", err)
	}

	return nil
}
