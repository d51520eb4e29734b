package scanner_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdftagger/pdftagger/internal/scanner"
	"github.com/pdftagger/pdftagger/internal/tagstore"
	"github.com/pdftagger/pdftagger/internal/testutil"
	"github.com/pdftagger/pdftagger/pkg/logger"
	"github.com/pdftagger/pdftagger/pkg/models"
)

var _ = Describe("DirectoryScanner", func() {
	var (
		testDir     string
		dirScanner  *scanner.DirectoryScanner
		ctx         context.Context
		writeTagged func(name string, pages int, tags map[int]models.Tag)
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		log := logger.New(
			logger.WithOutput(GinkgoWriter),
			logger.WithPrefix("[scanner-test] "),
			logger.WithFlags(0),
		)
		dirScanner = scanner.New(log)
		ctx = context.Background()

		writeTagged = func(name string, pages int, tags map[int]models.Tag) {
			path := filepath.Join(testDir, name)
			Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
			Expect(testutil.WritePDFPages(path, pages)).To(Succeed())
			if len(tags) > 0 {
				store := tagstore.New(pages)
				for page, tag := range tags {
					store.Set(page, tag)
				}
				Expect(store.Save(tagstore.SidecarPath(path))).To(Succeed())
			}
		}
	})

	AfterEach(func() {
		Expect(os.RemoveAll(testDir)).To(Succeed())
	})

	It("errors when the directory holds no PDFs", func() {
		_, err := dirScanner.ScanDirectory(ctx, testDir)
		Expect(err).To(HaveOccurred())
	})

	It("reports every PDF including untagged ones", func() {
		writeTagged("a.pdf", 4, nil)
		writeTagged("sub/b.pdf", 6, map[int]models.Tag{
			1: models.TagKnown,
			3: models.TagHard,
		})

		stats, err := dirScanner.ScanDirectory(ctx, testDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.PDFCount).To(Equal(2))
		Expect(stats.TaggedCount).To(Equal(1))
		Expect(stats.Reports).To(HaveLen(2))
	})

	It("fills in page and tag counts per document", func() {
		writeTagged("deck.pdf", 5, map[int]models.Tag{
			0: models.TagKnown,
			2: models.TagReview,
			4: models.TagHard,
		})

		stats, err := dirScanner.ScanDirectory(ctx, testDir)
		Expect(err).NotTo(HaveOccurred())

		report := stats.Reports[0]
		Expect(report.RelativePath).To(Equal("deck.pdf"))
		Expect(report.PageCount).To(Equal(5))
		Expect(report.HasSidecar).To(BeTrue())
		Expect(report.Counts.Known).To(Equal(1))
		Expect(report.Counts.Review).To(Equal(1))
		Expect(report.Counts.Hard).To(Equal(1))
	})

	It("ignores non-PDF files", func() {
		writeTagged("deck.pdf", 2, nil)
		Expect(os.WriteFile(filepath.Join(testDir, "notes.txt"), []byte("test"), 0644)).To(Succeed())

		stats, err := dirScanner.ScanDirectory(ctx, testDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.PDFCount).To(Equal(1))
	})

	It("stops when the context is cancelled", func() {
		writeTagged("deck.pdf", 2, nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := dirScanner.ScanDirectory(cancelled, testDir)
		Expect(err).To(MatchError(context.Canceled))
	})
})
