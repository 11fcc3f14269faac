package paging

import (
	"context"

	"github.com/rs/zerolog"
)

// Query is a deferred data source. Nothing is evaluated until Count or Slice
// is called, which lets an adapter push ordering, counting and slicing down
// into its own engine (SQL, for instance).
//
// Implementations must treat a Query as an immutable value: Order returns a
// new Query and leaves the receiver unchanged, so one base Query can serve
// any number of concurrent Paginate calls.
//
// Implementations in this module:
//   - paging.FromSlice: in-memory slices
//   - sqlboiler.NewQuery: SQLBoiler query mods
//   - pgxquery.New: raw SQL over pgx
type Query[T any] interface {
	// Order adds a sort key. The first call establishes the primary order;
	// each later call breaks ties left by the keys before it.
	Order(key OrderBy[T]) Query[T]

	// Count returns the number of records in the source.
	Count(ctx context.Context) (int, error)

	// Slice returns at most limit records starting at offset, in order.
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// Paginate sorts and pages an in-memory slice. The slice itself is never
// modified.
//
// A nil filter is treated as NewFilter(). A nil resolver means ResolverFor[T]().
// The only error is a *CompareError, when a sort column holds values that
// cannot be ordered.
//
// Example:
//
//	filter := paging.WithSortBy(&paging.Filter{Page: 1, PageSize: 3}, "Name", paging.Ascending)
//	result, err := paging.Paginate(fruits, filter, fruitColumns)
//	// result.Items: Apple, Banana, Cherry; result.TotalPages: 4
func Paginate[T any](items []T, filter *Filter, resolver ColumnResolver[T], opts ...PaginateOption) (*PagedResult[T], error) {
	return PaginateQuery(context.Background(), FromSlice(items), filter, resolver, opts...)
}

// PaginateQuery sorts and pages a deferred Query. It performs one Count and,
// when the source is not empty, one Slice. Errors from the Query are returned
// unchanged.
//
// The steps are:
//   - resolve filter.SortColumns, dropping names the resolver does not know
//   - apply the resolved keys to q in priority order
//   - normalize the page (< 1 becomes 1) and page size (< 1 becomes the default)
//   - count, and derive TotalPages
//   - clamp the page down to TotalPages and slice out that window
//
// On an empty source the requested page is reported back unclamped.
func PaginateQuery[T any](
	ctx context.Context,
	q Query[T],
	filter *Filter,
	resolver ColumnResolver[T],
	opts ...PaginateOption,
) (*PagedResult[T], error) {
	cfg := applyPaginateOptions(opts...)
	logger := cfg.logger
	if logger == nil {
		logger = zerolog.Ctx(ctx)
	}

	if filter == nil {
		filter = &Filter{Page: 1, PageSize: cfg.defaultSize}
	}

	if sorts := filter.GetSortColumns(); len(sorts) > 0 {
		if resolver == nil {
			resolver = ResolverFor[T]()
		}
		keys, dropped := resolveSort(resolver, sorts)
		for _, name := range dropped {
			logger.Debug().Str("column", name).Msg("sort column not resolved, ignoring")
		}
		q = applyOrder(q, keys)
	}

	pageSize := filter.pageSizeOr(cfg.defaultSize)
	page := filter.RequestedPage()

	totalCount, err := q.Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &PagedResult[T]{
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}

	if totalCount == 0 {
		result.PageIndex = page
		result.Items = []T{}
		return result, nil
	}

	if page > result.TotalPages {
		page = result.TotalPages
	}
	result.PageIndex = page

	items, err := q.Slice(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	result.Items = items

	logger.Debug().
		Int("page", result.PageIndex).
		Int("page_size", result.PageSize).
		Int("total_count", result.TotalCount).
		Int("items", len(result.Items)).
		Msg("page served")

	return result, nil
}

func applyOrder[T any](q Query[T], keys []OrderBy[T]) Query[T] {
	for _, key := range keys {
		q = q.Order(key)
	}
	return q
}

// totalPages is ceil(count/size) without overflowing for large counts.
func totalPages(count, size int) int {
	if count <= 0 {
		return 0
	}
	pages := count / size
	if count%size != 0 {
		pages++
	}
	return pages
}

// FromSlice returns a Query over an in-memory slice. Ordering is applied with
// a stable sort on a copy of items when Slice is called; items is never
// modified.
func FromSlice[T any](items []T) Query[T] {
	return sliceQuery[T]{items: items}
}

type sliceQuery[T any] struct {
	items []T
	keys  []OrderBy[T]
}

func (q sliceQuery[T]) Order(key OrderBy[T]) Query[T] {
	keys := make([]OrderBy[T], len(q.keys), len(q.keys)+1)
	copy(keys, q.keys)
	return sliceQuery[T]{items: q.items, keys: append(keys, key)}
}

func (q sliceQuery[T]) Count(context.Context) (int, error) {
	return len(q.items), nil
}

func (q sliceQuery[T]) Slice(_ context.Context, offset, limit int) ([]T, error) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(q.items) || limit <= 0 {
		return []T{}, nil
	}

	source := q.items
	if len(q.keys) > 0 {
		source = make([]T, len(q.items))
		copy(source, q.items)
		if err := SortStable(source, q.keys); err != nil {
			return nil, err
		}
	}

	end := min(offset+limit, len(source))
	window := make([]T, end-offset)
	copy(window, source[offset:end])
	return window, nil
}
