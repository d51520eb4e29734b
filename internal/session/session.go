// Package session owns the state of one open document: its tag store, the
// active filter, the export selection, and the current position in the
// visible page list. The CLI and GUI drive everything through a Session so
// the stateful core stays testable without either front end.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdftagger/pdftagger/internal/config"
	"github.com/pdftagger/pdftagger/internal/document"
	"github.com/pdftagger/pdftagger/internal/export"
	"github.com/pdftagger/pdftagger/internal/filter"
	"github.com/pdftagger/pdftagger/internal/tagstore"
	"github.com/pdftagger/pdftagger/pkg/logger"
	"github.com/pdftagger/pdftagger/pkg/models"
	"github.com/pdftagger/pdftagger/pkg/utils"
)

// Session is single threaded by contract: every operation runs to
// completion on one control flow in response to a user action. Front ends
// that dispatch from multiple goroutines serialize access themselves.
type Session struct {
	cfg *config.Config
	log *logger.Logger

	doc         *document.Document
	store       *tagstore.Store
	sidecarPath string

	filterSet filter.TagSet
	visible   []int
	position  int // index into visible, -1 when visible is empty

	selection *export.Selection
	exporter  *export.Exporter

	dirty bool // tags changed since the last successful save
}

func New(cfg *config.Config, log *logger.Logger) *Session {
	return &Session{
		cfg:       cfg,
		log:       log,
		selection: export.NewSelection(),
		exporter:  export.NewExporter(log),
		position:  -1,
	}
}

// Open loads the document at path and its sidecar tags, resets the filter
// to the configured default, and clears the selection. A malformed sidecar
// is a warning, not a failure: the session starts with an empty store.
// On open failure the session keeps whatever document was open before.
func (s *Session) Open(path string) error {
	doc, err := document.Open(path)
	if err != nil {
		return err
	}

	if s.doc != nil {
		s.Close()
	}

	s.doc = doc
	s.sidecarPath = tagstore.SidecarPath(path)

	store, err := tagstore.Load(s.sidecarPath, doc.PageCount())
	if err != nil {
		s.log.Warn("Ignoring unreadable tag file %s: %v", s.sidecarPath, err)
	}
	s.store = store

	s.filterSet = s.defaultFilter()
	s.selection.Clear()
	s.dirty = false
	s.refreshVisible(0)

	s.log.Info("Opened %s (%d pages, %d tagged)", path, doc.PageCount(), store.Len())
	return nil
}

// Close releases the document. Unsaved tag changes are flushed first so the
// sidecar stays the durable copy.
func (s *Session) Close() {
	if s.doc == nil {
		return
	}
	if s.dirty {
		if err := s.Save(); err != nil {
			s.log.Warn("Could not save tags on close: %v", err)
		}
	}
	if err := s.doc.Close(); err != nil {
		s.log.Debug("Error closing document: %v", err)
	}
	s.doc = nil
	s.store = nil
	s.sidecarPath = ""
	s.visible = nil
	s.position = -1
	s.selection.Clear()
}

func (s *Session) HasDocument() bool {
	return s.doc != nil
}

func (s *Session) Document() *document.Document {
	return s.doc
}

func (s *Session) Store() *tagstore.Store {
	return s.store
}

func (s *Session) Selection() *export.Selection {
	return s.selection
}

func (s *Session) SidecarPath() string {
	return s.sidecarPath
}

// SetTag tags a page and persists the store. The page is clamped to the
// document's range before it reaches the store. A failed save keeps the
// in-memory tag so the next mutation or explicit Save can retry.
func (s *Session) SetTag(page int, tag models.Tag) {
	if s.store == nil {
		return
	}
	page = s.clamp(page)
	s.store.Set(page, tag)
	s.dirty = true

	if s.cfg.AutosaveEnabled() {
		if err := s.Save(); err != nil {
			s.log.Warn("Tags kept in memory, save failed: %v", err)
		}
	}

	current := s.CurrentPage()
	s.refreshVisible(current)
}

func (s *Session) ClearTag(page int) {
	s.SetTag(page, models.TagNone)
}

// Save writes the sidecar file. Safe to call with no pending changes.
func (s *Session) Save() error {
	if s.store == nil {
		return fmt.Errorf("no document open")
	}
	if err := s.store.Save(s.sidecarPath); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *Session) Counts() models.TagCounts {
	if s.store == nil {
		return models.TagCounts{}
	}
	return s.store.Counts()
}

func (s *Session) Filter() filter.TagSet {
	return s.filterSet
}

// SetFilter changes the visible tag set and repositions onto the nearest
// still-visible page.
func (s *Session) SetFilter(set filter.TagSet) {
	current := s.CurrentPage()
	s.filterSet = set
	s.refreshVisible(current)
}

// VisiblePages returns the pages matching the active filter, in increasing
// order.
func (s *Session) VisiblePages() []int {
	out := make([]int, len(s.visible))
	copy(out, s.visible)
	return out
}

// CurrentPage returns the document page index currently in view, or -1
// when no page matches the filter.
func (s *Session) CurrentPage() int {
	if s.position < 0 || s.position >= len(s.visible) {
		return -1
	}
	return s.visible[s.position]
}

// CurrentTag returns the tag of the page in view.
func (s *Session) CurrentTag() models.Tag {
	page := s.CurrentPage()
	if page < 0 || s.store == nil {
		return models.TagNone
	}
	return s.store.Get(page)
}

// Next advances one step through the visible pages. Advancing past the
// last visible page is a no-op; there is no wraparound.
func (s *Session) Next() {
	if s.position >= 0 && s.position < len(s.visible)-1 {
		s.position++
	}
}

// Prev moves one step back, stopping at the first visible page.
func (s *Session) Prev() {
	if s.position > 0 {
		s.position--
	}
}

// GoTo jumps to the given document page if it is visible; otherwise to the
// nearest visible page.
func (s *Session) GoTo(page int) {
	if s.doc == nil {
		return
	}
	s.position = filter.NearestVisible(s.visible, s.clamp(page))
}

// Search returns the visible pages whose text contains term.
func (s *Session) Search(ctx context.Context, term string) ([]int, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("no document open")
	}
	hits, err := s.doc.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, page := range hits {
		if s.filterSet.Has(s.store.Get(page)) {
			out = append(out, page)
		}
	}
	return out, nil
}

// ExportSelection writes the current selection, in selection order, to
// outPath.
func (s *Session) ExportSelection(outPath string) error {
	if s.doc == nil {
		return fmt.Errorf("no document open")
	}
	return s.exporter.Export(s.doc.Path(), s.selection, outPath)
}

// ExportVisible writes the pages matching the active filter, in document
// order, to outPath. An empty outPath uses "<base><suffix>.pdf" next to
// the document. Returns the path written to.
func (s *Session) ExportVisible(outPath string) (string, error) {
	if s.doc == nil {
		return "", fmt.Errorf("no document open")
	}
	if outPath == "" {
		outPath = utils.DefaultExportPath(s.doc.Path(), s.cfg.ExportSuffix)
	}
	if err := s.exporter.ExportPages(s.doc.Path(), s.visible, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

func (s *Session) clamp(page int) int {
	if page < 0 {
		return 0
	}
	if last := s.doc.PageCount() - 1; page > last {
		return last
	}
	return page
}

func (s *Session) refreshVisible(current int) {
	if s.doc == nil {
		return
	}
	s.visible = filter.VisiblePages(s.store, s.filterSet, s.doc.PageCount())
	s.position = filter.NearestVisible(s.visible, current)
}

func (s *Session) defaultFilter() filter.TagSet {
	set, err := filter.ParseTagSet(strings.Join(s.cfg.DefaultFilter, ","))
	if err != nil {
		s.log.Debug("Bad default_filter in config, showing all pages: %v", err)
		return filter.All()
	}
	return set
}
