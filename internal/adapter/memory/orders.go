// Package memory provides mutex-guarded in-memory implementations of the
// repository ports. They back the test suite and the zero-dependency dev
// mode of cmd/server.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.OrdersRepository = (*OrdersRepository)(nil)

type OrdersRepository struct {
	mu     sync.RWMutex
	orders map[vo.ID]*entity.Order
}

func NewOrdersRepository() *OrdersRepository {
	return &OrdersRepository{orders: make(map[vo.ID]*entity.Order)}
}

func (r *OrdersRepository) Save(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID()] = order
	return nil
}

func (r *OrdersRepository) FindByID(_ context.Context, id vo.ID) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, fault.NotFound("order_not_found", "order %s not found", id)
	}
	return order, nil
}

func (r *OrdersRepository) List(_ context.Context, query ports.ListOrdersQuery) (ports.Page[*entity.Order], error) {
	r.mu.RLock()
	matched := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if !query.CustomerID.IsZero() && order.Customer().ID != query.CustomerID {
			continue
		}
		matched = append(matched, order)
	}
	r.mu.RUnlock()

	// Newest first, id as tiebreaker so pages are stable.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt().Equal(matched[j].CreatedAt()) {
			return matched[i].ID() < matched[j].ID()
		}
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	req := query.PageRequest.Normalize()
	total := int64(len(matched))
	start := req.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + req.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return ports.NewPage(matched[start:end], total, req), nil
}

// Len reports how many orders were saved. Test helper.
func (r *OrdersRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
