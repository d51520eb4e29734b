// Package export materializes a chosen set of pages into a new PDF. The
// page-copy work itself is pdfcpu's; this package validates the request and
// maps zero-based page indices onto pdfcpu's one-based page selection.
package export

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdftagger/pdftagger/pkg/logger"
)

// ErrEmptySelection is returned when an export is requested with no pages
// selected. An empty selection never produces a zero-page file.
var ErrEmptySelection = errors.New("export selection is empty")

// ErrPageOutOfRange is returned when a selected page does not exist in the
// source document.
var ErrPageOutOfRange = errors.New("page out of range")

type Exporter struct {
	logger *logger.Logger
}

func NewExporter(log *logger.Logger) *Exporter {
	return &Exporter{logger: log}
}

// Export writes a new PDF at outPath containing exactly the pages of
// selection, in selection order, copied from the document at docPath.
// On any failure no partial output file is left behind.
func (e *Exporter) Export(docPath string, selection *Selection, outPath string) error {
	if selection == nil || selection.Len() == 0 {
		return ErrEmptySelection
	}
	return e.ExportPages(docPath, selection.Pages(), outPath)
}

// ExportPages is Export for a raw zero-based page index list. The list must
// be non-empty, duplicate-free, and within the document's page range.
func (e *Exporter) ExportPages(docPath string, pages []int, outPath string) error {
	if len(pages) == 0 {
		return ErrEmptySelection
	}

	pageCount, err := api.PageCountFile(docPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", docPath, err)
	}

	seen := make(map[int]struct{}, len(pages))
	selected := make([]string, 0, len(pages))
	for _, page := range pages {
		if page < 0 || page >= pageCount {
			return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page+1, pageCount)
		}
		if _, ok := seen[page]; ok {
			return fmt.Errorf("%w: page %d", ErrDuplicatePage, page+1)
		}
		seen[page] = struct{}{}
		// pdfcpu selections are one-based.
		selected = append(selected, strconv.Itoa(page+1))
	}

	e.logger.Debug("Exporting %d pages from %s to %s", len(pages), docPath, outPath)

	if err := api.CollectFile(docPath, outPath, selected, nil); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to export pages: %w", err)
	}

	e.logger.Info("Exported %d pages to %s", len(pages), outPath)
	return nil
}
