package paging

import (
	"bytes"
	"cmp"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrIncomparable is matched by every *CompareError.
var ErrIncomparable = errors.New("paging: incomparable values")

// CompareError is returned when two values of a sort column cannot be ordered,
// for example an interface-typed field holding a string in one record and an
// int in another. It is a schema error and is never recovered by Paginate.
type CompareError struct {
	Column string
	Left   string
	Right  string
}

func (e *CompareError) Error() string {
	return fmt.Sprintf("paging: cannot compare %s with %s for column %q", e.Left, e.Right, e.Column)
}

// Is reports ErrIncomparable as a match.
func (e *CompareError) Is(target error) bool {
	return target == ErrIncomparable
}

var structColumnsCache sync.Map // reflect.Type -> any (*Columns[T])

// StructColumns returns a registry with one column per exported field of T,
// where T is a struct or a pointer to a struct. Fields promoted from embedded
// structs are included; nested paths are not. The registry is built once per
// type and shared.
//
// Field tags:
//   - `paging:"-"` excludes the field
//   - `db:"col"` or `boil:"col"` sets the column's storage expression
//
// Values are compared by the native ordering of their kind: numbers, strings
// (ordinal) and booleans (false < true). time.Time and any type with a
// Compare or Cmp method taking its own type are compared through that method.
// Other driver.Valuer fields, such as null.String or sql.NullInt64, are
// compared by the value they hand to the database. Nil pointers and SQL
// nulls sort before any value. Values that have no ordering yield a
// *CompareError from Column.Compare.
func StructColumns[T any]() *Columns[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := structColumnsCache.Load(t); ok {
		return cached.(*Columns[T])
	}

	cols := buildStructColumns[T](t)
	actual, _ := structColumnsCache.LoadOrStore(t, cols)
	return actual.(*Columns[T])
}

func buildStructColumns[T any](t reflect.Type) *Columns[T] {
	cols := NewColumns[T]()

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return cols
	}

	for _, field := range reflect.VisibleFields(st) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		if field.Tag.Get("paging") == "-" {
			continue
		}

		col := reflectColumn[T](field)
		if expr := storageExpr(field); expr != "" {
			col = col.As(expr)
		}
		cols.Add(col)
	}

	return cols
}

func storageExpr(field reflect.StructField) string {
	for _, key := range []string{"db", "boil"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

func reflectColumn[T any](field reflect.StructField) Column[T] {
	index := field.Index
	name := field.Name

	get := func(record T) reflect.Value {
		v := reflect.ValueOf(&record).Elem()
		if v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		fv, err := v.FieldByIndexErr(index)
		if err != nil {
			// nil embedded pointer on the path
			return reflect.Value{}
		}
		return fv
	}

	return Column[T]{
		name: name,
		compare: func(a, b T) (int, error) {
			return compareValues(name, get(a), get(b))
		},
	}
}

func compareValues(column string, a, b reflect.Value) (int, error) {
	a, b = indirect(a), indirect(b)

	switch {
	case !a.IsValid() && !b.IsValid():
		return 0, nil
	case !a.IsValid():
		return -1, nil
	case !b.IsValid():
		return 1, nil
	}

	if a.Kind() != b.Kind() {
		return 0, incomparable(column, a, b)
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float()), nil
	case reflect.String:
		return cmp.Compare(a.String(), b.String()), nil
	case reflect.Bool:
		return compareBool(a.Bool(), b.Bool()), nil
	case reflect.Slice:
		if a.Type().Elem().Kind() == reflect.Uint8 && b.Type().Elem().Kind() == reflect.Uint8 {
			return bytes.Compare(a.Bytes(), b.Bytes()), nil
		}
	}

	if a.Type() == b.Type() {
		if result, ok := compareByMethod(a, b); ok {
			return result, nil
		}
		if av, bv, ok, err := driverValues(a, b); ok {
			if err != nil {
				return 0, fmt.Errorf("paging: value of column %q: %w", column, err)
			}
			return compareValues(column, reflect.ValueOf(av), reflect.ValueOf(bv))
		}
	}

	return 0, incomparable(column, a, b)
}

// indirect unwraps interfaces and pointers; a nil anywhere yields the zero Value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		if v.Kind() == reflect.Pointer && hasCompareMethod(v.Type()) {
			return v
		}
		v = v.Elem()
	}
	return v
}

var valuerType = reflect.TypeFor[driver.Valuer]()

// driverValues calls Value on both sides when their type is a driver.Valuer,
// through the address for pointer receivers.
func driverValues(a, b reflect.Value) (av, bv driver.Value, ok bool, err error) {
	switch {
	case a.Type().Implements(valuerType):
	case a.CanAddr() && b.CanAddr() && reflect.PointerTo(a.Type()).Implements(valuerType):
		a, b = a.Addr(), b.Addr()
	default:
		return nil, nil, false, nil
	}
	if !a.CanInterface() || !b.CanInterface() {
		return nil, nil, false, nil
	}

	if av, err = a.Interface().(driver.Valuer).Value(); err != nil {
		return nil, nil, true, err
	}
	if bv, err = b.Interface().(driver.Valuer).Value(); err != nil {
		return nil, nil, true, err
	}
	return av, bv, true, nil
}

// compareByMethod uses a Compare(T) int or Cmp(T) int method, as found on
// time.Time, decimal.Decimal and *big.Int.
func compareByMethod(a, b reflect.Value) (int, bool) {
	for _, name := range []string{"Compare", "Cmp"} {
		method, ok := a.Type().MethodByName(name)
		if !ok || !isCompareSignature(method.Type, a.Type()) {
			continue
		}
		out := method.Func.Call([]reflect.Value{a, b})
		return int(out[0].Int()), true
	}
	return 0, false
}

func hasCompareMethod(t reflect.Type) bool {
	for _, name := range []string{"Compare", "Cmp"} {
		if method, ok := t.MethodByName(name); ok && isCompareSignature(method.Type, t) {
			return true
		}
	}
	return false
}

// isCompareSignature checks for func(recv T, other T) int.
func isCompareSignature(fn reflect.Type, t reflect.Type) bool {
	return fn.NumIn() == 2 && fn.In(1) == t &&
		fn.NumOut() == 1 && fn.Out(0).Kind() == reflect.Int
}

func incomparable(column string, a, b reflect.Value) error {
	return &CompareError{Column: column, Left: a.Type().String(), Right: b.Type().String()}
}
