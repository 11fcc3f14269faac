package paging

import "github.com/nrfta/paginize-go/offset"

// PageInfo contains Relay-style metadata about a paginated result set.
// It uses function fields to enable lazy evaluation of pagination metadata,
// so a GraphQL layer only pays for the fields a client selects.
//
// All functions return both a value and an error to match resolver signatures.
type PageInfo struct {
	TotalCount      func() (*int, error)
	HasPreviousPage func() (bool, error)
	HasNextPage     func() (bool, error)
	StartCursor     func() (*string, error)
	EndCursor       func() (*string, error)
}

// PageInfo returns the Relay view of the result. Cursors are offset cursors
// (see package offset) naming the position of the first and last item of the
// page; both are nil when the page is empty.
func (r *PagedResult[T]) PageInfo() PageInfo {
	count := r.TotalCount
	start := r.Offset()
	end := start + len(r.Items) - 1
	empty := len(r.Items) == 0

	return PageInfo{
		TotalCount: func() (*int, error) { return &count, nil },
		StartCursor: func() (*string, error) {
			if empty {
				return nil, nil
			}
			return offset.EncodeCursor(start), nil
		},
		EndCursor: func() (*string, error) {
			if empty {
				return nil, nil
			}
			return offset.EncodeCursor(end), nil
		},
		HasNextPage:     func() (bool, error) { return r.HasNextPage(), nil },
		HasPreviousPage: func() (bool, error) { return r.HasPreviousPage(), nil },
	}
}

// NewEmptyPageInfo returns a PageInfo with no count, no cursors and no
// neighbouring pages, for resolvers that must answer before any page exists.
func NewEmptyPageInfo() *PageInfo {
	return &PageInfo{
		TotalCount:      func() (*int, error) { return nil, nil },
		StartCursor:     func() (*string, error) { return nil, nil },
		EndCursor:       func() (*string, error) { return nil, nil },
		HasNextPage:     func() (bool, error) { return false, nil },
		HasPreviousPage: func() (bool, error) { return false, nil },
	}
}
