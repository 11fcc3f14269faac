package paging

import (
	"reflect"

	"golang.org/x/text/cases"
)

// ColumnResolver maps a sort column name to a Column of T.
// Resolution never fails loudly: unknown names report false and are dropped
// by Paginate.
type ColumnResolver[T any] interface {
	ResolveColumn(name string) (Column[T], bool)
}

// ColumnProvider is implemented by record types that register their own
// sortable columns. ResolverFor uses it in preference to reflection.
//
// When T is a pointer type, PagingColumns is called on a freshly allocated
// zero value, so it must not depend on the receiver's fields.
type ColumnProvider[T any] interface {
	PagingColumns() ColumnResolver[T]
}

// Columns is a registry of sortable columns for T, matched by name
// case-insensitively (Unicode case folding). It implements ColumnResolver.
//
// A Columns value is safe for concurrent reads once it has been built.
type Columns[T any] struct {
	byName map[string]Column[T]
	names  []string
}

// NewColumns creates a registry with the given columns.
func NewColumns[T any](cols ...Column[T]) *Columns[T] {
	c := &Columns[T]{byName: make(map[string]Column[T], len(cols))}
	return c.Add(cols...)
}

// Add registers columns and returns the registry for chaining.
// A column registered under a name that folds to an existing one replaces it.
func (c *Columns[T]) Add(cols ...Column[T]) *Columns[T] {
	for _, col := range cols {
		key := foldName(col.name)
		if _, exists := c.byName[key]; !exists {
			c.names = append(c.names, col.name)
		}
		c.byName[key] = col
	}
	return c
}

// ResolveColumn implements ColumnResolver.
func (c *Columns[T]) ResolveColumn(name string) (Column[T], bool) {
	if c == nil || name == "" {
		return Column[T]{}, false
	}
	col, ok := c.byName[foldName(name)]
	return col, ok
}

// Names returns the registered column names in registration order.
func (c *Columns[T]) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Len returns the number of registered columns.
func (c *Columns[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byName)
}

// ResolverFor returns the resolver for T: the registry supplied by T's
// ColumnProvider implementation if it has one, otherwise StructColumns[T]().
func ResolverFor[T any]() ColumnResolver[T] {
	if provider, ok := any(newRecord[T]()).(ColumnProvider[T]); ok {
		if resolver := provider.PagingColumns(); resolver != nil {
			return resolver
		}
	}
	return StructColumns[T]()
}

// ResolveSort turns sort specifications into ordering keys, in list order.
// Specifications whose column does not resolve are dropped; the relative
// order of the rest is preserved.
func ResolveSort[T any](resolver ColumnResolver[T], sorts []SortColumn) []OrderBy[T] {
	keys, _ := resolveSort(resolver, sorts)
	return keys
}

func resolveSort[T any](resolver ColumnResolver[T], sorts []SortColumn) ([]OrderBy[T], []string) {
	if resolver == nil || len(sorts) == 0 {
		return nil, nil
	}

	var dropped []string
	keys := make([]OrderBy[T], 0, len(sorts))
	for _, sort := range sorts {
		col, ok := resolver.ResolveColumn(sort.Column)
		if !ok {
			dropped = append(dropped, sort.Column)
			continue
		}
		keys = append(keys, OrderBy[T]{Column: col, Direction: sort.Direction})
	}
	return keys, dropped
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

// newRecord returns a zero T, allocating the pointee when T is a pointer so
// that pointer-receiver methods can be called on it.
func newRecord[T any]() T {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(T)
	}
	return zero
}
