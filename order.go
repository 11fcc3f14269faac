package paging

import "slices"

// OrderBy is a resolved sort key: a column and the direction to apply it in.
type OrderBy[T any] struct {
	Column    Column[T]
	Direction Direction
}

// Desc reports whether the key sorts in descending order.
func (o OrderBy[T]) Desc() bool {
	return o.Direction == Descending
}

// Compare compares a and b by this key, reversing the column's order when
// the key is descending.
func (o OrderBy[T]) Compare(a, b T) (int, error) {
	result, err := o.Column.Compare(a, b)
	if err != nil {
		return 0, err
	}
	if o.Desc() {
		return -result, nil
	}
	return result, nil
}

// CompareKeys compares a and b by each key in turn; a later key is consulted
// only when all earlier keys compare equal.
func CompareKeys[T any](keys []OrderBy[T], a, b T) (int, error) {
	for _, key := range keys {
		result, err := key.Compare(a, b)
		if err != nil || result != 0 {
			return result, err
		}
	}
	return 0, nil
}

// SortStable sorts items in place by keys. Items whose keys all compare equal
// keep their relative order. With no keys, items are left untouched.
//
// If any comparison fails, the first error is returned and the order of items
// is unspecified.
func SortStable[T any](items []T, keys []OrderBy[T]) error {
	if len(keys) == 0 || len(items) < 2 {
		return nil
	}

	var sortErr error
	slices.SortStableFunc(items, func(a, b T) int {
		if sortErr != nil {
			return 0
		}
		result, err := CompareKeys(keys, a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return result
	})

	return sortErr
}

// AppendTieBreak returns keys followed by an ascending key on col, unless a
// key already orders by col's storage expression. col should be unique per
// record, usually the primary key, so that rows with equal keys come back in
// the same order from every query a source runs.
func AppendTieBreak[T any](keys []OrderBy[T], col Column[T]) []OrderBy[T] {
	for _, key := range keys {
		if key.Column.Expr() == col.Expr() {
			return keys
		}
	}
	out := make([]OrderBy[T], 0, len(keys)+1)
	out = append(out, keys...)
	return append(out, OrderBy[T]{Column: col})
}
