// Package sqlboiler adapts SQLBoiler queries to paging.Query.
//
// The adapter is ORM-specific but model-agnostic: it only needs a function
// that runs query mods against a model and one that counts them. Sorting and
// slicing are pushed into SQL as ORDER BY, OFFSET and LIMIT mods.
//
// Example usage:
//
//	q := sqlboiler.NewQuery(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Fruit, error) {
//	        return models.Fruits(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Fruits(mods...).Count(ctx, db)
//	    },
//	    qm.Where("deleted_at IS NULL"),
//	).TieBreak(paging.Ordered("ID", func(f *models.Fruit) string { return f.ID }).As("fruits.id"))
//
//	fruits := paging.New(q, paging.StructColumns[*models.Fruit]())
//	page, err := fruits.Paginate(ctx, filter)
//
// Errors from the query and count functions are wrapped with
// github.com/friendsofgo/errors, so errors.Is, errors.As and errors.Cause
// still reach the original error.
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/paginize-go"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.User).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Query implements paging.Query[T] on top of SQLBoiler query mods.
// A Query is an immutable value; Order and Where return new queries.
type Query[T any] struct {
	queryFunc QueryFunc[T]
	countFunc CountFunc
	mods      []qm.QueryMod
	orderBy   []paging.OrderBy[T]
	tieBreak  *paging.Column[T]
}

// NewQuery creates a Query. The base mods (joins, filters, selects) are
// passed to both queryFunc and countFunc; they must not contain ordering,
// limit or offset mods.
func NewQuery[T any](queryFunc QueryFunc[T], countFunc CountFunc, mods ...qm.QueryMod) *Query[T] {
	return &Query[T]{
		queryFunc: queryFunc,
		countFunc: countFunc,
		mods:      mods,
	}
}

// Where returns a copy of q narrowed by additional mods. This is the usual
// place to apply Filter.Search.
func (q *Query[T]) Where(mods ...qm.QueryMod) *Query[T] {
	next := q.clone()
	next.mods = append(next.mods, mods...)
	return next
}

// TieBreak returns a copy of q that orders by col, ascending, after the
// requested keys. Postgres returns rows with equal keys in no fixed order,
// so without a unique tie-break rows can repeat or go missing across pages.
func (q *Query[T]) TieBreak(col paging.Column[T]) *Query[T] {
	next := q.clone()
	next.tieBreak = &col
	return next
}

// Order implements paging.Query.
func (q *Query[T]) Order(key paging.OrderBy[T]) paging.Query[T] {
	next := q.clone()
	next.orderBy = append(next.orderBy, key)
	return next
}

// Count implements paging.Query. Ordering is never sent with the count.
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	count, err := q.countFunc(ctx, q.mods...)
	if err != nil {
		return 0, errors.Wrap(err, "sqlboiler: count")
	}
	return int(count), nil
}

// Slice implements paging.Query.
func (q *Query[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	mods := make([]qm.QueryMod, 0, len(q.mods)+3)
	mods = append(mods, q.mods...)
	mods = append(mods, OrderToQueryMods(q.orderKeys())...)
	mods = append(mods, OffsetToQueryMods(offset, limit)...)

	items, err := q.queryFunc(ctx, mods...)
	if err != nil {
		return nil, errors.Wrapf(err, "sqlboiler: slice offset %d limit %d", offset, limit)
	}
	return items, nil
}

// Mods returns the base mods of the query.
func (q *Query[T]) Mods() []qm.QueryMod {
	return append([]qm.QueryMod(nil), q.mods...)
}

func (q *Query[T]) orderKeys() []paging.OrderBy[T] {
	if q.tieBreak == nil {
		return q.orderBy
	}
	return paging.AppendTieBreak(q.orderBy, *q.tieBreak)
}

func (q *Query[T]) clone() *Query[T] {
	return &Query[T]{
		queryFunc: q.queryFunc,
		countFunc: q.countFunc,
		mods:      append([]qm.QueryMod(nil), q.mods...),
		orderBy:   append([]paging.OrderBy[T](nil), q.orderBy...),
		tieBreak:  q.tieBreak,
	}
}
