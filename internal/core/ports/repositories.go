// Package ports declares the contracts the use case layer depends on.
// Adapters under internal/adapter implement them; the core never imports an
// adapter.
package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
)

// PageRequest is a 1-based offset pagination request.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize clamps the request to sane defaults.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	return r
}

// Offset is the number of items to skip for this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Page is one page of results plus the totals needed to render pagination.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPage assembles a page, deriving TotalPages from the total count.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}

// ListOrdersQuery filters and paginates the order listing.
type ListOrdersQuery struct {
	CustomerID vo.ID
	PageRequest
}

// OrdersRepository persists order aggregates. FindByID returns a not-found
// fault when the id is unknown, never a nil order with a nil error.
type OrdersRepository interface {
	Save(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id vo.ID) (*entity.Order, error)
	List(ctx context.Context, query ListOrdersQuery) (Page[*entity.Order], error)
}

// ProductsRepository persists catalog products and serves the showcase reads
// checkout depends on.
type ProductsRepository interface {
	Save(ctx context.Context, product *entity.ShowcaseProduct) error
	FindByID(ctx context.Context, id vo.ID) (*entity.ShowcaseProduct, error)
	Exists(ctx context.Context, id vo.ID) (bool, error)
	FindByIDs(ctx context.Context, ids []vo.ID) ([]*entity.ShowcaseProduct, error)
	List(ctx context.Context, req PageRequest) (Page[*entity.ShowcaseProduct], error)
}

// UsersRepository persists accounts.
type UsersRepository interface {
	Save(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id vo.ID) (*entity.User, error)
	FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error)
}
