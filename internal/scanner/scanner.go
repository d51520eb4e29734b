// Package scanner walks a directory tree of PDFs and reports the tagging
// progress recorded in each document's sidecar file.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdftagger/pdftagger/internal/tagstore"
	"github.com/pdftagger/pdftagger/pkg/logger"
	"github.com/pdftagger/pdftagger/pkg/models"
)

// DocumentReport summarizes one PDF found during a scan.
type DocumentReport struct {
	RelativePath string
	PageCount    int
	Counts       models.TagCounts
	HasSidecar   bool
}

// Stats aggregates a whole scan.
type Stats struct {
	PDFCount    int
	TaggedCount int // documents with at least one tagged page
	Reports     []DocumentReport
}

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(log *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{logger: log}
}

// ScanDirectory walks dir recursively, reading each PDF's page count and
// sidecar tags. Documents that cannot be read are logged and skipped; the
// scan keeps going.
func (s *DirectoryScanner) ScanDirectory(ctx context.Context, dir string) (Stats, error) {
	var stats Stats

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Debug("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		stats.PDFCount++
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}

		report, err := s.reportFor(path, relPath)
		if err != nil {
			s.logger.Warn("Skipping %s: %v", relPath, err)
			return nil
		}

		if report.Counts.Tagged() > 0 {
			stats.TaggedCount++
		}
		stats.Reports = append(stats.Reports, report)

		return nil
	})

	if err != nil {
		return stats, err
	}

	if stats.PDFCount == 0 {
		return stats, fmt.Errorf("no PDF files found in %s or its subdirectories", dir)
	}

	return stats, nil
}

func (s *DirectoryScanner) reportFor(path, relPath string) (DocumentReport, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return DocumentReport{}, fmt.Errorf("failed to read page count: %w", err)
	}

	report := DocumentReport{
		RelativePath: relPath,
		PageCount:    pageCount,
	}

	sidecar := tagstore.SidecarPath(path)
	if _, err := os.Stat(sidecar); err == nil {
		report.HasSidecar = true
		store, err := tagstore.Load(sidecar, pageCount)
		if err != nil {
			s.logger.Warn("Unreadable tag file %s: %v", sidecar, err)
		}
		report.Counts = store.Counts()
	}

	return report, nil
}
