package paging

import "context"

// Paginator serves pages from a fixed source.
//
// Type parameter T is the record type being paginated (e.g., Fruit, *models.User).
//
// Example:
//
//	fruits := paging.New(sqlboiler.NewQuery(queryFunc, countFunc), fruitColumns)
//	page, err := fruits.Paginate(ctx, filter)
type Paginator[T any] interface {
	// Paginate sorts and pages the source according to filter.
	Paginate(ctx context.Context, filter *Filter) (*PagedResult[T], error)
}

// QueryPaginator binds a Query, a ColumnResolver and options into a Paginator.
type QueryPaginator[T any] struct {
	query    Query[T]
	resolver ColumnResolver[T]
	opts     []PaginateOption
}

// New creates a Paginator over q. A nil resolver means ResolverFor[T]().
// The options apply to every Paginate call.
func New[T any](q Query[T], resolver ColumnResolver[T], opts ...PaginateOption) Paginator[T] {
	if resolver == nil {
		resolver = ResolverFor[T]()
	}
	return &QueryPaginator[T]{
		query:    q,
		resolver: resolver,
		opts:     opts,
	}
}

// Paginate implements Paginator.
func (p *QueryPaginator[T]) Paginate(ctx context.Context, filter *Filter) (*PagedResult[T], error) {
	return PaginateQuery(ctx, p.query, filter, p.resolver, p.opts...)
}

// Resolver returns the resolver the paginator sorts with.
func (p *QueryPaginator[T]) Resolver() ColumnResolver[T] {
	return p.resolver
}
