package acceptance_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdftagger/pdftagger/internal/config"
	"github.com/pdftagger/pdftagger/internal/filter"
	"github.com/pdftagger/pdftagger/internal/session"
	"github.com/pdftagger/pdftagger/internal/tagstore"
	"github.com/pdftagger/pdftagger/pkg/logger"
	"github.com/pdftagger/pdftagger/pkg/models"
)

var _ = Describe("Tagging workflow", Ordered, func() {
	var (
		tempDir string
		docPath string
		sess    *session.Session
		log     *logger.Logger
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "pdftagger-acceptance-*")
		Expect(err).NotTo(HaveOccurred())

		docPath = filepath.Join(tempDir, "slides.pdf")
		writeDeck(docPath, 10)

		log = logger.New(
			logger.WithOutput(GinkgoWriter),
			logger.WithPrefix("[acceptance] "),
			logger.WithFlags(0),
		)
		sess = session.New(config.Default(), log)
		Expect(sess.Open(docPath)).To(Succeed())
	})

	AfterEach(func() {
		sess.Close()
		Expect(os.RemoveAll(tempDir)).To(Succeed())
	})

	Context("A fresh document", Label("happy-path"), func() {
		It("starts with every page untagged", func() {
			By("loading with no sidecar present")
			Expect(sess.SidecarPath()).NotTo(BeAnExistingFile())

			for page := 0; page < 10; page++ {
				Expect(sess.Store().Get(page)).To(Equal(models.TagNone))
			}
		})
	})

	Context("Tagging and filtering", func() {
		It("filters the view to the tagged subset", func() {
			By("tagging three pages")
			sess.SetTag(2, models.TagKnown)
			sess.SetTag(5, models.TagHard)
			sess.SetTag(7, models.TagReview)

			By("filtering to Hard only")
			sess.SetFilter(filter.NewTagSet(models.TagHard))
			Expect(sess.VisiblePages()).To(Equal([]int{5}))
		})

		It("survives a restart through the sidecar file", func() {
			sess.SetTag(2, models.TagKnown)
			sess.SetTag(5, models.TagHard)
			sess.Close()

			By("reopening the same document")
			sess = session.New(config.Default(), log)
			Expect(sess.Open(docPath)).To(Succeed())
			Expect(sess.Store().Get(2)).To(Equal(models.TagKnown))
			Expect(sess.Store().Get(5)).To(Equal(models.TagHard))
			Expect(sess.Store().Len()).To(Equal(2))
		})

		It("ignores a corrupted sidecar and keeps working", func() {
			sess.Close()
			Expect(os.WriteFile(tagstore.SidecarPath(docPath), []byte("{{{"), 0644)).To(Succeed())

			sess = session.New(config.Default(), log)
			Expect(sess.Open(docPath)).To(Succeed())
			Expect(sess.Store().Len()).To(Equal(0))

			By("re-tagging and saving over the corrupted file")
			sess.SetTag(1, models.TagReview)

			loaded, err := tagstore.Load(tagstore.SidecarPath(docPath), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Get(1)).To(Equal(models.TagReview))
		})
	})

	Context("Exporting a selection", func() {
		It("writes the picked pages in pick order", func() {
			Expect(sess.Selection().Add(5)).To(Succeed())
			Expect(sess.Selection().Add(2)).To(Succeed())
			Expect(sess.Selection().Add(7)).To(Succeed())

			outPath := filepath.Join(tempDir, "picked.pdf")
			Expect(sess.ExportSelection(outPath)).To(Succeed())

			By("checking page content order in the exported file")
			Expect(pageLabels(outPath)).To(Equal([]string{"Page 6", "Page 3", "Page 8"}))
		})

		It("refuses an empty selection instead of writing a 0-page file", func() {
			outPath := filepath.Join(tempDir, "empty.pdf")
			Expect(sess.ExportSelection(outPath)).NotTo(Succeed())
			Expect(outPath).NotTo(BeAnExistingFile())
		})
	})

	Context("Exporting the filtered view", func() {
		It("writes the visible pages in document order", func() {
			sess.SetTag(7, models.TagHard)
			sess.SetTag(3, models.TagHard)
			sess.SetFilter(filter.NewTagSet(models.TagHard))

			written, err := sess.ExportVisible("")
			Expect(err).NotTo(HaveOccurred())
			Expect(pageLabels(written)).To(Equal([]string{"Page 4", "Page 8"}))
		})
	})
})
