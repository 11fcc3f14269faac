package paging

import (
	"cmp"
	"strings"
	"time"
)

// Column is a named, sortable accessor over records of type T.
//
// Columns are built with the typed constructors (Ordered, Bool, Time,
// Comparable, Func) so the comparison is fixed when the column is registered,
// not discovered at sort time.
//
// Example:
//
//	var fruitColumns = paging.NewColumns(
//	    paging.Ordered("Id", func(f Fruit) int { return f.ID }).As("id"),
//	    paging.Ordered("Name", func(f Fruit) string { return f.Name }).As("name"),
//	    paging.Comparable("Price", func(f Fruit) decimal.Decimal { return f.Price }),
//	    paging.Bool("IsActive", func(f Fruit) bool { return f.IsActive }),
//	)
type Column[T any] struct {
	name    string
	expr    string
	compare func(a, b T) (int, error)
}

// Name returns the name the column is registered under.
func (c Column[T]) Name() string {
	return c.name
}

// Expr returns the storage expression used by query adapters to order by
// this column (for example a SQL column name). It defaults to Name. The SQL
// adapters quote identifier expressions verbatim, and Postgres matches quoted
// identifiers case-sensitively, so "Id" does not find a column named id.
func (c Column[T]) Expr() string {
	if c.expr == "" {
		return c.name
	}
	return c.expr
}

// ExprPath splits the storage expression into identifier parts, as in
// "fruits.name" -> ["fruits", "name"]. It returns nil when the expression is
// not a plain or dotted identifier, e.g. "lower(name)"; adapters then use the
// expression verbatim.
func (c Column[T]) ExprPath() []string {
	parts := strings.Split(c.Expr(), ".")
	for _, part := range parts {
		if !isIdent(part) {
			return nil
		}
	}
	return parts
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// As returns a copy of the column with the given storage expression.
func (c Column[T]) As(expr string) Column[T] {
	c.expr = expr
	return c
}

// Compare compares a and b by this column in ascending order.
// The error is non-nil only when the values cannot be ordered.
func (c Column[T]) Compare(a, b T) (int, error) {
	if c.compare == nil {
		return 0, nil
	}
	return c.compare(a, b)
}

// IsZero reports whether c is the zero Column.
func (c Column[T]) IsZero() bool {
	return c.name == "" && c.compare == nil
}

// Ordered creates a column over a natively ordered value: integers, floats
// and strings. Strings compare byte-wise (ordinal).
func Ordered[T any, V cmp.Ordered](name string, get func(T) V) Column[T] {
	return Column[T]{
		name: name,
		compare: func(a, b T) (int, error) {
			return cmp.Compare(get(a), get(b)), nil
		},
	}
}

// Bool creates a column over a boolean value, ordered false before true.
func Bool[T any](name string, get func(T) bool) Column[T] {
	return Column[T]{
		name: name,
		compare: func(a, b T) (int, error) {
			return compareBool(get(a), get(b)), nil
		},
	}
}

// Time creates a column over a time.Time value.
func Time[T any](name string, get func(T) time.Time) Column[T] {
	return Column[T]{
		name: name,
		compare: func(a, b T) (int, error) {
			return get(a).Compare(get(b)), nil
		},
	}
}

// Comparer is implemented by value types that order themselves, such as
// decimal.Decimal and *big.Int.
type Comparer[V any] interface {
	Cmp(V) int
}

// Comparable creates a column over a value with a Cmp method.
func Comparable[T any, V Comparer[V]](name string, get func(T) V) Column[T] {
	return Column[T]{
		name: name,
		compare: func(a, b T) (int, error) {
			return get(a).Cmp(get(b)), nil
		},
	}
}

// Func creates a column from a custom three-way comparison.
func Func[T any](name string, compare func(a, b T) int) Column[T] {
	return Column[T]{
		name: name,
		compare: func(a, b T) (int, error) {
			return compare(a, b), nil
		},
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
