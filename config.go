package paging

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

const (
	// DefaultPageSize is the number of items per page when the Filter does not specify one.
	DefaultPageSize = 10

	// DefaultMaxPageSize is the largest page size Validate accepts by default.
	DefaultMaxPageSize = 1000
)

// PageConfig holds paging configuration.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := paging.NewPageConfig().WithMaxSize(500)
//	if err := filter.ValidateWith(config); err != nil {
//	    return nil, err
//	}
type PageConfig struct {
	// DefaultSize is the page size used when the Filter does not specify one.
	DefaultSize int

	// MaxSize is the largest page size Validate accepts.
	MaxSize int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 10
// - MaxSize: 1000
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxPageSize,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// Options returns the PaginateOptions matching this config, so the same
// config drives both validation and normalization.
func (c *PageConfig) Options() []PaginateOption {
	if c == nil {
		return nil
	}
	return []PaginateOption{WithDefaultSize(c.DefaultSize)}
}

// Validate reports every Filter field outside its allowed range.
// A nil Filter is valid. The returned error joins one *RangeError per field.
//
// Paginate never calls Validate; it normalizes instead.
func (c *PageConfig) Validate(f *Filter) error {
	if c == nil {
		c = NewPageConfig()
	}

	if f == nil {
		return nil
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	var errs []error
	if f.Page < 1 {
		errs = append(errs, &RangeError{Field: "page", Value: f.Page, Min: 1})
	}
	if f.PageSize < 1 || f.PageSize > maxSize {
		errs = append(errs, &RangeError{Field: "pageSize", Value: f.PageSize, Min: 1, Max: maxSize})
	}

	return errors.Join(errs...)
}

// Validate validates the Filter using the default PageConfig.
func (f *Filter) Validate() error {
	return NewPageConfig().Validate(f)
}

// ValidateWith validates the Filter using a custom PageConfig.
//
// Example:
//
//	config := paging.NewPageConfig().WithMaxSize(100)
//	if err := filter.ValidateWith(config); err != nil {
//	    return nil, err // Page size too large
//	}
func (f *Filter) ValidateWith(config *PageConfig) error {
	return config.Validate(f)
}

// RangeError is returned by Validate for a field outside its allowed range.
// Max is zero when the field has no upper bound.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
	}
	return fmt.Sprintf("%s must be at least %d, got %d", e.Field, e.Min, e.Value)
}

// PaginateOption configures a single Paginate call.
//
// Example:
//
//	result, err := paging.Paginate(items, filter, nil,
//	    paging.WithDefaultSize(25),
//	    paging.WithLogger(logger),
//	)
type PaginateOption func(*paginateConfig)

type paginateConfig struct {
	defaultSize int
	logger      *zerolog.Logger
}

// WithDefaultSize sets the page size used when the Filter has none.
// Non-positive values are ignored.
func WithDefaultSize(size int) PaginateOption {
	return func(c *paginateConfig) {
		if size > 0 {
			c.defaultSize = size
		}
	}
}

// WithLogger sets the logger for debug events such as dropped sort columns.
// Without it, the logger attached to the context (zerolog.Ctx) is used.
func WithLogger(logger zerolog.Logger) PaginateOption {
	return func(c *paginateConfig) {
		c.logger = &logger
	}
}

func applyPaginateOptions(opts ...PaginateOption) *paginateConfig {
	cfg := &paginateConfig{defaultSize: DefaultPageSize}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
