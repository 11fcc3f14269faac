package paging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/paginize-go"
)

type pair struct {
	Group int
	Label string
}

var pairColumns = paging.NewColumns(
	paging.Ordered("Group", func(p pair) int { return p.Group }),
	paging.Ordered("Label", func(p pair) string { return p.Label }),
)

func pairKeys(sorts ...paging.SortColumn) []paging.OrderBy[pair] {
	return paging.ResolveSort[pair](pairColumns, sorts)
}

var _ = Describe("SortStable", func() {
	var items []pair

	BeforeEach(func() {
		items = []pair{
			{2, "b"}, {1, "c"}, {2, "a"}, {1, "a"}, {3, "z"}, {1, "b"},
		}
	})

	It("leaves items untouched without keys", func() {
		Expect(paging.SortStable(items, nil)).To(Succeed())
		Expect(items[0]).To(Equal(pair{2, "b"}))
		Expect(items[5]).To(Equal(pair{1, "b"}))
	})

	It("keeps the relative order of equal keys", func() {
		Expect(paging.SortStable(items, pairKeys(paging.Asc("Group")))).To(Succeed())

		Expect(items).To(Equal([]pair{
			{1, "c"}, {1, "a"}, {1, "b"}, {2, "b"}, {2, "a"}, {3, "z"},
		}))
	})

	It("reverses only the descending key", func() {
		Expect(paging.SortStable(items, pairKeys(paging.Desc("Group"), paging.Asc("Label")))).To(Succeed())

		Expect(items).To(Equal([]pair{
			{3, "z"}, {2, "a"}, {2, "b"}, {1, "a"}, {1, "b"}, {1, "c"},
		}))
	})

	It("consults later keys only on ties", func() {
		Expect(paging.SortStable(items, pairKeys(paging.Asc("Label"), paging.Desc("Group")))).To(Succeed())

		Expect(items).To(Equal([]pair{
			{2, "a"}, {1, "a"}, {2, "b"}, {1, "b"}, {1, "c"}, {3, "z"},
		}))
	})

	It("returns the first comparison error", func() {
		type mixed struct{ Value any }
		values := []mixed{{Value: 1}, {Value: "one"}, {Value: 2.5}}
		col, _ := paging.StructColumns[mixed]().ResolveColumn("value")

		err := paging.SortStable(values, []paging.OrderBy[mixed]{{Column: col}})

		Expect(err).To(MatchError(paging.ErrIncomparable))
		Expect(err.Error()).To(ContainSubstring(`column "Value"`))
	})
})

var _ = Describe("CompareKeys", func() {
	It("reports equality when every key ties", func() {
		result, err := paging.CompareKeys(pairKeys(paging.Asc("Group")), pair{1, "a"}, pair{1, "b"})

		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(0))
	})

	It("negates descending keys", func() {
		result, err := paging.CompareKeys(pairKeys(paging.Desc("Label")), pair{1, "a"}, pair{1, "b"})

		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(1))
	})
})

var _ = Describe("AppendTieBreak", func() {
	label, _ := pairColumns.ResolveColumn("Label")

	It("appends an ascending key after the requested ones", func() {
		keys := paging.AppendTieBreak(pairKeys(paging.Desc("Group")), label)

		Expect(keys).To(HaveLen(2))
		Expect(keys[1].Column.Name()).To(Equal("Label"))
		Expect(keys[1].Desc()).To(BeFalse())
	})

	It("orders ties by the appended key", func() {
		items := []pair{{1, "c"}, {2, "b"}, {1, "a"}}

		Expect(paging.SortStable(items, paging.AppendTieBreak(pairKeys(paging.Asc("Group")), label))).To(Succeed())

		Expect(items).To(Equal([]pair{{1, "a"}, {1, "c"}, {2, "b"}}))
	})

	It("skips a column that is already ordered", func() {
		keys := paging.AppendTieBreak(pairKeys(paging.Desc("label")), label)

		Expect(keys).To(HaveLen(1))
		Expect(keys[0].Desc()).To(BeTrue())
	})

	It("orders by the key alone without requested keys", func() {
		Expect(paging.AppendTieBreak(nil, label)).To(HaveLen(1))
	})
})
