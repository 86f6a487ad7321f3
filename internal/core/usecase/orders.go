package usecase

import (
	"context"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// OrderQueries serves the read side: single order lookup and the paginated
// per-customer listing.
type OrderQueries struct {
	orders ports.OrdersRepository
}

func NewOrderQueries(orders ports.OrdersRepository) *OrderQueries {
	return &OrderQueries{orders: orders}
}

func (uc *OrderQueries) Get(ctx context.Context, rawID string) (*entity.Order, error) {
	id, err := vo.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return uc.orders.FindByID(ctx, id)
}

func (uc *OrderQueries) ListForCustomer(ctx context.Context, rawCustomerID string, req ports.PageRequest) (ports.Page[*entity.Order], error) {
	customerID, err := vo.ParseID(rawCustomerID)
	if err != nil {
		return ports.Page[*entity.Order]{}, err
	}
	return uc.orders.List(ctx, ports.ListOrdersQuery{
		CustomerID:  customerID,
		PageRequest: req.Normalize(),
	})
}
