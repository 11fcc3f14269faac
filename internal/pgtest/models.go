package pgtest

import (
	"cmp"
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/shopspring/decimal"

	"github.com/nrfta/paginize-go"
)

// Fruit is an object representing the database table, shaped like a
// SQLBoiler-generated model.
type Fruit struct {
	ID          string          `boil:"id" json:"id" db:"id"`
	Name        string          `boil:"name" json:"name" db:"name"`
	CreatedDate time.Time       `boil:"created_date" json:"created_date" db:"created_date"`
	Price       decimal.Decimal `boil:"price" json:"price" db:"price"`
	IsActive    bool            `boil:"is_active" json:"is_active" db:"is_active"`
	Notes       null.String     `boil:"notes" json:"notes,omitempty" db:"notes"`
}

var fruitColumns = paging.NewColumns(
	paging.Ordered("Id", func(f *Fruit) string { return f.ID }).As("fruits.id"),
	paging.Ordered("Name", func(f *Fruit) string { return f.Name }).As("fruits.name"),
	paging.Time("CreatedDate", func(f *Fruit) time.Time { return f.CreatedDate }).As("fruits.created_date"),
	paging.Comparable("Price", func(f *Fruit) decimal.Decimal { return f.Price }).As("fruits.price"),
	paging.Bool("IsActive", func(f *Fruit) bool { return f.IsActive }).As("fruits.is_active"),
	paging.Func("Notes", compareNullString).As("fruits.notes"),
)

// PagingColumns registers the sortable columns of the fruits table.
func (*Fruit) PagingColumns() paging.ColumnResolver[*Fruit] {
	return fruitColumns
}

// compareNullString orders null before any value. Postgres puts nulls last
// for ASC, so results only agree with SQL when notes are set.
func compareNullString(a, b *Fruit) int {
	switch {
	case !a.Notes.Valid && !b.Notes.Valid:
		return 0
	case !a.Notes.Valid:
		return -1
	case !b.Notes.Valid:
		return 1
	}
	return cmp.Compare(a.Notes.String, b.Notes.String)
}

var dialect = drivers.Dialect{
	LQ: '"',
	RQ: '"',

	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

type fruitQuery struct {
	*queries.Query
}

// Fruits returns a new query against the fruits table.
func Fruits(mods ...qm.QueryMod) fruitQuery {
	mods = append(mods, qm.From(`"fruits"`))

	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	queries.SetSelect(q, []string{`"fruits".*`})

	return fruitQuery{q}
}

// All returns all Fruit records from the query.
func (q fruitQuery) All(ctx context.Context, exec boil.ContextExecutor) ([]*Fruit, error) {
	var fruits []*Fruit
	if err := q.Bind(ctx, exec, &fruits); err != nil {
		return nil, err
	}
	return fruits, nil
}

// Count returns the count of all Fruit records in the query.
func (q fruitQuery) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)

	err := q.Query.QueryRowContext(ctx, exec).Scan(&count)
	return count, err
}
