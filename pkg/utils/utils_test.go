package utils_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdftagger/pdftagger/pkg/models"
	"github.com/pdftagger/pdftagger/pkg/utils"
)

var _ = Describe("DefaultExportPath", func() {
	It("builds the filtered-export name next to the document", func() {
		Expect(utils.DefaultExportPath("/notes/deck.pdf", "_filtered")).
			To(Equal("/notes/deck_filtered.pdf"))
	})

	It("falls back to the default suffix", func() {
		Expect(utils.DefaultExportPath("/notes/deck.pdf", "")).
			To(Equal("/notes/deck_filtered.pdf"))
	})
})

var _ = Describe("ParsePageList", func() {
	It("converts one-based numbers to zero-based indices in order", func() {
		pages, err := utils.ParsePageList("5,2,7")
		Expect(err).NotTo(HaveOccurred())
		Expect(pages).To(Equal([]int{4, 1, 6}))
	})

	It("tolerates whitespace and empty elements", func() {
		pages, err := utils.ParsePageList(" 1, ,3 ")
		Expect(err).NotTo(HaveOccurred())
		Expect(pages).To(Equal([]int{0, 2}))
	})

	DescribeTable("rejects bad input",
		func(list string) {
			_, err := utils.ParsePageList(list)
			Expect(err).To(HaveOccurred())
		},
		Entry("non-numeric", "1,a"),
		Entry("zero", "0"),
		Entry("negative", "-2"),
		Entry("duplicate", "3,3"),
		Entry("empty", ""),
	)
})

var _ = Describe("ParseTagAssignments", func() {
	It("parses ordered page=tag pairs", func() {
		assignments, err := utils.ParseTagAssignments("5=hard,2=known")
		Expect(err).NotTo(HaveOccurred())
		Expect(assignments).To(Equal([]utils.TagAssignment{
			{Page: 4, Tag: models.TagHard},
			{Page: 1, Tag: models.TagKnown},
		}))
	})

	It("accepts none and clear for removing a tag", func() {
		assignments, err := utils.ParseTagAssignments("3=none,4=clear")
		Expect(err).NotTo(HaveOccurred())
		Expect(assignments[0].Tag).To(Equal(models.TagNone))
		Expect(assignments[1].Tag).To(Equal(models.TagNone))
	})

	DescribeTable("rejects bad input",
		func(list string) {
			_, err := utils.ParseTagAssignments(list)
			Expect(err).To(HaveOccurred())
		},
		Entry("missing tag", "5"),
		Entry("unknown tag", "5=green"),
		Entry("bad page", "x=hard"),
		Entry("zero page", "0=hard"),
		Entry("empty", ""),
	)
})
