package domain

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "ASC"
	SortDirectionDesc SortDirection = "DESC"
)

const (
	DefaultPageSize  = 10
	DefaultMaxSize   = 100
	DefaultSortField = "createdAt"
)

// orderSortColumns is the allow-list of sortable order fields and their columns.
var orderSortColumns = map[string]string{
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
	"orderStatus":    "status",
	"deliveryMethod": "delivery_method",
	"lastName":       "last_name",
	"city":           "city",
}

// OrderSortColumn resolves an allow-listed sort field to its column name.
func OrderSortColumn(field string) (string, bool) {
	column, ok := orderSortColumns[field]
	return column, ok
}

func ToSortDirection(s string) (SortDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return SortDirectionDesc, nil
	case string(SortDirectionAsc):
		return SortDirectionAsc, nil
	case string(SortDirectionDesc):
		return SortDirectionDesc, nil
	}

	return "", InvalidArgumentf("Unknown sort direction: %s.", s)
}

type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// PageRequest is a zero-based page of a sorted listing.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Direction SortDirection
}

// ParsePageRequest applies defaults and limits to raw listing parameters.
// A zero size selects the default size, sizes above the maximum are capped.
func ParsePageRequest(page, size int, direction, sortField string, limits PageLimits) (PageRequest, error) {
	if limits.MaxSize <= 0 {
		limits.MaxSize = DefaultMaxSize
	}
	if limits.DefaultSize <= 0 {
		limits.DefaultSize = DefaultPageSize
	}
	limits.DefaultSize = min(limits.DefaultSize, limits.MaxSize)

	if page < 0 {
		return PageRequest{}, InvalidArgumentf("Page must not be negative.")
	}

	switch {
	case size < 0:
		return PageRequest{}, InvalidArgumentf("Size must be positive.")
	case size == 0:
		size = limits.DefaultSize
	case size > limits.MaxSize:
		size = limits.MaxSize
	}

	dir, err := ToSortDirection(direction)
	if err != nil {
		return PageRequest{}, err
	}

	sortField = strings.TrimSpace(sortField)
	if sortField == "" {
		sortField = DefaultSortField
	}

	p := PageRequest{
		Page:      page,
		Size:      size,
		SortField: sortField,
		Direction: dir,
	}

	if err := p.Validate(); err != nil {
		return PageRequest{}, err
	}

	return p, nil
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return InvalidArgumentf("Page must not be negative.")
	}

	if p.Size <= 0 {
		return InvalidArgumentf("Size must be positive.")
	}

	// offset must fit into an int
	if p.Page > math.MaxInt/p.Size {
		return InvalidArgumentf("Page is too large.")
	}

	if _, ok := OrderSortColumn(p.SortField); !ok {
		return InvalidArgumentf("Sort field %s is not allowed.", p.SortField)
	}

	if p.Direction != SortDirectionAsc && p.Direction != SortDirectionDesc {
		return InvalidArgumentf("Unknown sort direction: %s.", p.Direction)
	}

	return nil
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderPageQuery selects a page of orders, optionally of a single owner.
type OrderPageQuery struct {
	UserID *uuid.UUID
	PageRequest
}

type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts page items keeping the paging metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	return Page[R]{
		Items: lo.Map(p.Items, func(item T, _ int) R {
			return fn(item)
		}),
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
	}
}
