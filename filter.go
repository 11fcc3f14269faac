package paging

import "strings"

// Direction is the sort direction of a single column.
// The zero value is Ascending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps an order string to a Direction.
// Only "desc" (case-insensitive) selects Descending; every other value,
// including the empty string and padded input such as " desc", is Ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Descending
	}
	return Ascending
}

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseDirection,
// so unknown values decode as Ascending rather than failing.
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}

// SortColumn is one (column, direction) pair of a multi-column sort.
type SortColumn struct {
	// Column is matched case-insensitively against the registered column names.
	Column string `json:"column"`

	// Direction defaults to Ascending.
	Direction Direction `json:"order"`
}

// Asc returns an ascending SortColumn.
func Asc(column string) SortColumn {
	return SortColumn{Column: column, Direction: Ascending}
}

// Desc returns a descending SortColumn.
func Desc(column string) SortColumn {
	return SortColumn{Column: column, Direction: Descending}
}

// Filter holds the paging and sorting parameters of a single request.
//
// Page and PageSize are normalized by Paginate rather than rejected:
// a Page below 1 becomes 1 and a PageSize below 1 becomes DefaultPageSize.
// Use Validate when out-of-range values should be reported instead.
//
// Search is carried through untouched. Code that wants to narrow the source by
// it must do so before calling Paginate.
//
// Example:
//
//	filter := paging.WithMultiSort(paging.NewFilter(),
//	    paging.Desc("IsActive"),
//	    paging.Asc("Price"),
//	)
//	result, err := paging.Paginate(products, filter, nil)
type Filter struct {
	Search      *string      `json:"search,omitempty"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
	SortColumns []SortColumn `json:"sortColumns,omitempty"`
}

// NewFilter returns a Filter for the first page with DefaultPageSize items and no sorting.
func NewFilter() *Filter {
	return &Filter{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// WithSortBy configures a single sort column and direction.
// It modifies the Filter and returns it for method chaining.
// If f is nil, a new Filter is created.
//
// Example:
//
//	filter := WithSortBy(nil, "CreatedAt", paging.Descending)
func WithSortBy(f *Filter, column string, direction Direction) *Filter {
	if f == nil {
		f = NewFilter()
	}

	f.SortColumns = []SortColumn{{Column: column, Direction: direction}}
	return f
}

// WithMultiSort configures multiple sort columns, highest priority first.
// It modifies the Filter and returns it for method chaining.
// If f is nil, a new Filter is created.
//
// Example:
//
//	filter := WithMultiSort(nil,
//	    paging.Desc("IsActive"),
//	    paging.Asc("Price"),
//	)
func WithMultiSort(f *Filter, sorts ...SortColumn) *Filter {
	if f == nil {
		f = NewFilter()
	}

	f.SortColumns = sorts
	return f
}

// WithPage sets the requested page and page size.
// If f is nil, a new Filter is created.
func WithPage(f *Filter, page, pageSize int) *Filter {
	if f == nil {
		f = NewFilter()
	}

	f.Page = page
	f.PageSize = pageSize
	return f
}

// WithSearch sets the search term.
// If f is nil, a new Filter is created.
func WithSearch(f *Filter, term string) *Filter {
	if f == nil {
		f = NewFilter()
	}

	f.Search = &term
	return f
}

// GetSearch returns the search term, or "" when none was set.
func (f *Filter) GetSearch() string {
	if f == nil || f.Search == nil {
		return ""
	}
	return *f.Search
}

// GetSortColumns returns the list of sort specifications.
func (f *Filter) GetSortColumns() []SortColumn {
	if f == nil {
		return nil
	}
	return f.SortColumns
}

// RequestedPage returns Page, or 1 when Page is not positive.
func (f *Filter) RequestedPage() int {
	if f == nil || f.Page < 1 {
		return 1
	}
	return f.Page
}

// EffectivePageSize returns PageSize, or DefaultPageSize when PageSize is not positive.
func (f *Filter) EffectivePageSize() int {
	return f.pageSizeOr(DefaultPageSize)
}

func (f *Filter) pageSizeOr(defaultSize int) int {
	if f == nil || f.PageSize < 1 {
		return defaultSize
	}
	return f.PageSize
}
