package export_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdftagger/pdftagger/internal/export"
)

var _ = Describe("Selection", func() {
	var sel *export.Selection

	BeforeEach(func() {
		sel = export.NewSelection()
	})

	It("preserves insertion order", func() {
		Expect(sel.Add(5)).To(Succeed())
		Expect(sel.Add(2)).To(Succeed())
		Expect(sel.Add(7)).To(Succeed())
		Expect(sel.Pages()).To(Equal([]int{5, 2, 7}))
	})

	It("rejects duplicate pages", func() {
		Expect(sel.Add(5)).To(Succeed())
		Expect(sel.Add(5)).To(MatchError(export.ErrDuplicatePage))
		Expect(sel.Len()).To(Equal(1))
	})

	It("removes pages without disturbing order", func() {
		Expect(sel.Add(5)).To(Succeed())
		Expect(sel.Add(2)).To(Succeed())
		Expect(sel.Add(7)).To(Succeed())
		sel.Remove(2)
		Expect(sel.Pages()).To(Equal([]int{5, 7}))
		Expect(sel.Contains(2)).To(BeFalse())
	})

	It("toggles membership", func() {
		sel.Toggle(3)
		Expect(sel.Contains(3)).To(BeTrue())
		sel.Toggle(3)
		Expect(sel.Contains(3)).To(BeFalse())
	})

	It("allows re-adding a removed page", func() {
		Expect(sel.Add(4)).To(Succeed())
		sel.Remove(4)
		Expect(sel.Add(4)).To(Succeed())
		Expect(sel.Pages()).To(Equal([]int{4}))
	})

	It("clears to empty", func() {
		Expect(sel.Add(1)).To(Succeed())
		Expect(sel.Add(2)).To(Succeed())
		sel.Clear()
		Expect(sel.Len()).To(Equal(0))
		Expect(sel.Pages()).To(BeEmpty())
		Expect(sel.Add(1)).To(Succeed())
	})
})
