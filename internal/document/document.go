// Package document wraps the MuPDF bindings behind the small surface the
// rest of the application needs: page count, rendering, text, and search.
package document

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pdftagger/pdftagger/pkg/models"
)

// Document is an open PDF. Pages are zero indexed, matching the fitz
// package. Not safe for concurrent use; the session serializes access.
type Document struct {
	path string
	doc  *fitz.Document
}

// Open loads the PDF at path. A missing or corrupt file is an error the
// caller reports; no session state is created on failure.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &Document{path: path, doc: doc}, nil
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

func (d *Document) Info() models.DocumentInfo {
	return models.DocumentInfo{Path: d.path, PageCount: d.PageCount()}
}

// Image renders page as an RGBA image at the library's default DPI.
func (d *Document) Image(page int) (*image.RGBA, error) {
	img, err := d.doc.Image(page)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}
	return img, nil
}

// ImageDPI renders page at the given resolution.
func (d *Document) ImageDPI(page int, dpi float64) (*image.RGBA, error) {
	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d at %.0f dpi: %w", page, dpi, err)
	}
	return img, nil
}

// Text extracts the plain text of page.
func (d *Document) Text(page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", page, err)
	}
	return text, nil
}

// Dimensions returns the page size in points.
func (d *Document) Dimensions(page int) (models.PageDimensions, error) {
	bounds, err := d.doc.Bound(page)
	if err != nil {
		return models.PageDimensions{}, fmt.Errorf("failed to get bounds for page %d: %w", page, err)
	}
	return models.PageDimensions{
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}, nil
}

// Search returns, in increasing order, the pages whose text contains term,
// case-insensitively. Pages whose text cannot be extracted are skipped.
func (d *Document) Search(ctx context.Context, term string) ([]int, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}

	var hits []int
	for page := 0; page < d.PageCount(); page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text, err := d.doc.Text(page)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), term) {
			hits = append(hits, page)
		}
	}
	return hits, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}
