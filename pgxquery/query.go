// Package pgxquery adapts a raw SQL SELECT run through pgx to paging.Query.
//
// The base statement is wrapped as a subquery, so sorting, counting and
// slicing happen in Postgres:
//
//	SELECT count(*) FROM (<base>) AS q
//	SELECT * FROM (<base>) AS q ORDER BY "price" DESC LIMIT $n OFFSET $m
//
// Column storage expressions name output columns of the base statement.
//
// Example:
//
//	q := pgxquery.New[Fruit](pool, `SELECT id, name, price FROM fruits WHERE name ILIKE $1`, "%"+term+"%")
//	page, err := paging.PaginateQuery(ctx, q, filter, paging.StructColumns[Fruit]())
//
// Errors from pgx are wrapped with the failing step ("pgxquery: count: ...");
// errors.Is and errors.As still reach the pgx error.
package pgxquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nrfta/paginize-go"
)

// Querier is the subset of *pgx.Conn, *pgxpool.Pool and pgx.Tx the Query needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Query implements paging.Query[T] over a base SELECT statement.
// Rows are mapped with pgx.RowToStructByName[T] unless WithRowTo says otherwise.
type Query[T any] struct {
	db       Querier
	sql      string
	args     []any
	orderBy  []paging.OrderBy[T]
	tieBreak *paging.Column[T]
	rowTo    pgx.RowToFunc[T]
}

// New creates a Query for the base statement sql with its positional args.
// The statement must not carry its own ORDER BY, LIMIT or OFFSET.
func New[T any](db Querier, sql string, args ...any) *Query[T] {
	return &Query[T]{
		db:    db,
		sql:   strings.TrimRight(strings.TrimSpace(sql), ";"),
		args:  args,
		rowTo: pgx.RowToStructByName[T],
	}
}

// WithRowTo returns a copy of q that maps rows with fn, for instance
// pgx.RowToStructByNameLax[T].
func (q *Query[T]) WithRowTo(fn pgx.RowToFunc[T]) *Query[T] {
	next := q.clone()
	next.rowTo = fn
	return next
}

// TieBreak returns a copy of q that orders by col, ascending, after the
// requested keys. col should name a unique output column so that every page
// sees rows with equal keys in the same order.
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

// Count implements paging.Query.
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	var count int64
	if err := q.db.QueryRow(ctx, q.CountSQL(), q.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgxquery: count: %w", err)
	}
	return int(count), nil
}

// Slice implements paging.Query.
func (q *Query[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	sql, args := q.SliceSQL(offset, limit)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("pgxquery: slice: %w", err)
	}

	items, err := pgx.CollectRows(rows, q.rowTo)
	if err != nil {
		return nil, fmt.Errorf("pgxquery: collect rows: %w", err)
	}
	return items, nil
}

// CountSQL returns the statement Count runs.
func (q *Query[T]) CountSQL() string {
	return "SELECT count(*) FROM (" + q.sql + ") AS q"
}

// SliceSQL returns the statement and arguments Slice runs. The window is
// passed as two extra positional parameters after the base arguments.
func (q *Query[T]) SliceSQL(offset, limit int) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM (")
	b.WriteString(q.sql)
	b.WriteString(") AS q")

	if keys := q.orderKeys(); len(keys) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(OrderByClause(keys))
	}

	args := make([]any, 0, len(q.args)+2)
	args = append(args, q.args...)
	args = append(args, max(limit, 0), max(offset, 0))
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// OrderByClause renders sort keys as a Postgres ORDER BY list. Identifier
// expressions are sanitized with pgx.Identifier; other expressions are
// used as is.
func OrderByClause[T any](keys []paging.OrderBy[T]) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		dir := " ASC"
		if key.Desc() {
			dir = " DESC"
		}
		parts[i] = sanitizeExpr(key.Column) + dir
	}
	return strings.Join(parts, ", ")
}

func sanitizeExpr[T any](col paging.Column[T]) string {
	if path := col.ExprPath(); path != nil {
		return pgx.Identifier(path).Sanitize()
	}
	return col.Expr()
}

func (q *Query[T]) orderKeys() []paging.OrderBy[T] {
	if q.tieBreak == nil {
		return q.orderBy
	}
	return paging.AppendTieBreak(q.orderBy, *q.tieBreak)
}

func (q *Query[T]) clone() *Query[T] {
	return &Query[T]{
		db:       q.db,
		sql:      q.sql,
		args:     q.args,
		orderBy:  append([]paging.OrderBy[T](nil), q.orderBy...),
		tieBreak: q.tieBreak,
		rowTo:    q.rowTo,
	}
}
