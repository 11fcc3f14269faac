package paging

import "fmt"

// PagedResult is one page of a sorted source plus its paging metadata.
//
// Type parameter T is the record type.
type PagedResult[T any] struct {
	// PageIndex is the 1-based page actually served. It is clamped down to
	// TotalPages for non-empty sources and echoes the requested page otherwise.
	PageIndex int `json:"pageIndex"`

	// TotalPages is ceil(TotalCount / PageSize), or 0 for an empty source.
	TotalPages int `json:"totalPages"`

	// PageSize is the normalized page size, always at least 1.
	PageSize int `json:"pageSize"`

	// TotalCount is the number of records in the whole source.
	TotalCount int `json:"totalCount"`

	// Items holds at most PageSize records. It is empty, never nil, when
	// there is nothing to show.
	Items []T `json:"items"`
}

// HasNextPage reports whether a page follows this one.
func (r *PagedResult[T]) HasNextPage() bool {
	return r.PageIndex < r.TotalPages
}

// HasPreviousPage reports whether a non-empty page precedes this one.
func (r *PagedResult[T]) HasPreviousPage() bool {
	return r.TotalCount > 0 && r.PageIndex > 1
}

// Offset returns the zero-based position of the first item of this page
// within the sorted source.
func (r *PagedResult[T]) Offset() int {
	if r.PageIndex <= 1 {
		return 0
	}
	return (r.PageIndex - 1) * r.PageSize
}

// MapResult converts the items of a PagedResult, keeping its metadata.
// It stops at the first transform error.
//
// Example:
//
//	dtos, err := paging.MapResult(result, func(f *models.Fruit) (FruitDTO, error) {
//	    return toDTO(f), nil
//	})
func MapResult[From any, To any](r *PagedResult[From], transform func(From) (To, error)) (*PagedResult[To], error) {
	items := make([]To, 0, len(r.Items))
	for i, item := range r.Items {
		transformed, err := transform(item)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}
		items = append(items, transformed)
	}

	return &PagedResult[To]{
		PageIndex:  r.PageIndex,
		TotalPages: r.TotalPages,
		PageSize:   r.PageSize,
		TotalCount: r.TotalCount,
		Items:      items,
	}, nil
}
