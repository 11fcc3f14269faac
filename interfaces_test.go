package paging_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/nrfta/paginize-go"
)

var _ = Describe("Paginator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("serves pages from its source", func() {
		fruits := paging.New(paging.FromSlice(testFruits()), fruitColumns)

		first, err := fruits.Paginate(ctx, paging.WithSortBy(paging.WithPage(nil, 1, 4), "Price", paging.Descending))
		Expect(err).ToNot(HaveOccurred())
		Expect(names(first.Items)).To(Equal([]string{"Elderberry", "Honeydew", "Date", "Fig"}))

		second, err := fruits.Paginate(ctx, paging.WithSortBy(paging.WithPage(nil, 2, 4), "Price", paging.Descending))
		Expect(err).ToNot(HaveOccurred())
		Expect(names(second.Items)).To(Equal([]string{"Cherry", "Kiwi", "Apple", "Grape"}))
	})

	It("defaults the resolver from the record type", func() {
		fruits := paging.New[Fruit](paging.FromSlice(testFruits()), nil)

		result, err := fruits.Paginate(ctx, paging.WithSortBy(nil, "name", paging.Descending))

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Items[0].Name).To(Equal("Lemon"))
		Expect(fruits.(*paging.QueryPaginator[Fruit]).Resolver()).ToNot(BeNil())
	})

	It("applies its options on every call", func() {
		fruits := paging.New(paging.FromSlice(testFruits()), fruitColumns, paging.WithDefaultSize(3))

		for range 2 {
			result, err := fruits.Paginate(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.PageSize).To(Equal(3))
			Expect(result.TotalPages).To(Equal(4))
		}
	})
})

var _ = Describe("Logging", func() {
	var (
		buf    *bytes.Buffer
		logger zerolog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		logger = zerolog.New(buf).Level(zerolog.DebugLevel)
	})

	It("is silent by default", func() {
		_, err := paging.Paginate(testFruits(), paging.WithSortBy(nil, "bogus", paging.Ascending), fruitColumns)

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.Len()).To(BeZero())
	})

	It("logs dropped sort columns", func() {
		_, err := paging.Paginate(testFruits(),
			paging.WithMultiSort(nil, paging.Asc("bogus"), paging.Asc("Name")),
			fruitColumns,
			paging.WithLogger(logger),
		)

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring(`"column":"bogus"`))
		Expect(buf.String()).To(ContainSubstring("sort column not resolved"))
		Expect(buf.String()).ToNot(ContainSubstring(`"column":"Name"`))
	})

	It("logs the page served", func() {
		_, err := paging.Paginate(testFruits(), paging.WithPage(nil, 9, 4), fruitColumns, paging.WithLogger(logger))

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring(`"page":3`))
		Expect(buf.String()).To(ContainSubstring(`"total_count":10`))
		Expect(buf.String()).To(ContainSubstring("page served"))
	})

	It("picks up a logger from the context", func() {
		ctx := logger.WithContext(context.Background())

		_, err := paging.PaginateQuery(ctx, paging.FromSlice(testFruits()), nil, fruitColumns)

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("page served"))
	})

	It("respects the logger level", func() {
		quiet := logger.Level(zerolog.InfoLevel)

		_, err := paging.Paginate(testFruits(), nil, fruitColumns, paging.WithLogger(quiet))

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.Len()).To(BeZero())
	})
})
