package filter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdftagger/pdftagger/internal/filter"
	"github.com/pdftagger/pdftagger/internal/tagstore"
	"github.com/pdftagger/pdftagger/pkg/models"
)

var _ = Describe("TagSet", func() {
	It("adds, removes, and reports membership", func() {
		set := filter.NewTagSet(models.TagHard)
		Expect(set.Has(models.TagHard)).To(BeTrue())
		Expect(set.Has(models.TagKnown)).To(BeFalse())

		set = set.Add(models.TagKnown)
		Expect(set.Has(models.TagKnown)).To(BeTrue())

		set = set.Remove(models.TagHard)
		Expect(set.Has(models.TagHard)).To(BeFalse())
	})

	It("All contains every variant", func() {
		all := filter.All()
		for _, tag := range []models.Tag{models.TagNone, models.TagKnown, models.TagReview, models.TagHard} {
			Expect(all.Has(tag)).To(BeTrue())
		}
	})

	DescribeTable("ParseTagSet",
		func(list string, wantErr bool, members ...models.Tag) {
			set, err := filter.ParseTagSet(list)
			if wantErr {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			for _, tag := range members {
				Expect(set.Has(tag)).To(BeTrue(), "missing %s", tag)
			}
		},
		Entry("single tag", "hard", false, models.TagHard),
		Entry("mixed case", "Known,REVIEW", false, models.TagKnown, models.TagReview),
		Entry("none spelled out", "none", false, models.TagNone),
		Entry("untagged alias", "untagged", false, models.TagNone),
		Entry("unknown name", "green", true),
		Entry("empty list", "", true),
	)
})

var _ = Describe("VisiblePages", func() {
	var store *tagstore.Store

	BeforeEach(func() {
		store = tagstore.New(10)
		store.Set(2, models.TagKnown)
		store.Set(5, models.TagHard)
		store.Set(7, models.TagReview)
	})

	It("shows only pages whose tag is enabled", func() {
		visible := filter.VisiblePages(store, filter.NewTagSet(models.TagHard), 10)
		Expect(visible).To(Equal([]int{5}))
	})

	It("shows untagged pages when TagNone is enabled", func() {
		visible := filter.VisiblePages(store, filter.NewTagSet(models.TagNone), 10)
		Expect(visible).To(Equal([]int{0, 1, 3, 4, 6, 8, 9}))
	})

	It("shows every page for the full set", func() {
		visible := filter.VisiblePages(store, filter.All(), 10)
		Expect(visible).To(HaveLen(10))
	})

	It("is a strictly increasing subsequence of the page range", func() {
		visible := filter.VisiblePages(store, filter.NewTagSet(models.TagKnown, models.TagReview), 10)
		for i, page := range visible {
			Expect(page).To(BeNumerically(">=", 0))
			Expect(page).To(BeNumerically("<", 10))
			if i > 0 {
				Expect(page).To(BeNumerically(">", visible[i-1]))
			}
		}
	})

	It("shows a page iff its tag is in the enabled set", func() {
		set := filter.NewTagSet(models.TagKnown, models.TagNone)
		visible := filter.VisiblePages(store, set, 10)
		member := make(map[int]bool)
		for _, page := range visible {
			member[page] = true
		}
		for page := 0; page < 10; page++ {
			Expect(member[page]).To(Equal(set.Has(store.Get(page))), "page %d", page)
		}
	})

	It("is empty when no tag is enabled", func() {
		Expect(filter.VisiblePages(store, 0, 10)).To(BeEmpty())
	})
})

var _ = Describe("NearestVisible", func() {
	DescribeTable("repositioning after a filter change",
		func(visible []int, current, want int) {
			Expect(filter.NearestVisible(visible, current)).To(Equal(want))
		},
		Entry("current still visible", []int{2, 5, 7}, 5, 1),
		Entry("next page after current", []int{2, 5, 7}, 3, 1),
		Entry("previous page when nothing follows", []int{2, 5, 7}, 8, 2),
		Entry("first page for current before all", []int{2, 5, 7}, 0, 0),
		Entry("empty visible list", []int{}, 4, -1),
	)
})
