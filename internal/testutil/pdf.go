// Package testutil generates small PDF fixtures for tests, so suites do
// not depend on binary files checked into the repo.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// WritePDF writes a minimal single-font PDF to path with one page per
// entry of pageTexts, each page showing its text near the top left.
func WritePDF(path string, pageTexts []string) error {
	n := len(pageTexts)
	if n == 0 {
		return fmt.Errorf("need at least one page")
	}

	// Object numbering: 1 catalog, 2 pages, 3..2+n page objects,
	// 3+n..2+2n content streams, 3+2n font.
	fontObj := 3 + 2*n

	var objects []string

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	)

	for i := 0; i < n; i++ {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+n+i))
	}

	for i := 0; i < n; i++ {
		content := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", escapeText(pageTexts[i]))
		objects = append(objects, fmt.Sprintf(
			"<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// WritePDFPages writes a fixture with pageCount pages labeled "Page 1"
// through "Page N".
func WritePDFPages(path string, pageCount int) error {
	texts := make([]string, pageCount)
	for i := range texts {
		texts[i] = fmt.Sprintf("Page %d", i+1)
	}
	return WritePDF(path, texts)
}

func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}
