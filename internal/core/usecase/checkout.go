// Package usecase contains the application services. Each use case is a
// struct holding its collaborators (constructor injection) with a single
// Execute-style method, mirroring one inbound operation.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/event"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// CheckoutItemInput is one requested line: which product and how many.
type CheckoutItemInput struct {
	ProductID string
	Quantity  int
}

// CheckoutInput is everything needed to place an order.
type CheckoutInput struct {
	CustomerID     string
	Items          []CheckoutItemInput
	PaymentMethod  vo.PaymentTag
	PaymentDetails vo.PaymentDetails
	Street         string
	Number         string
	Complement     string
	District       string
	City           string
	State          string
	ZipCode        string
}

// Checkout builds, validates, persists and announces an order. Any failure
// before Save aborts the whole operation with nothing written, so there is
// nothing to compensate.
type Checkout struct {
	orders   ports.OrdersRepository
	products ports.ProductsRepository
	users    ports.UsersRepository
	events   ports.EventManager
	log      *slog.Logger
	now      func() time.Time
}

func NewCheckout(
	orders ports.OrdersRepository,
	products ports.ProductsRepository,
	users ports.UsersRepository,
	events ports.EventManager,
	log *slog.Logger,
) *Checkout {
	return &Checkout{
		orders:   orders,
		products: products,
		users:    users,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// Execute runs the checkout flow. Items are resolved sequentially, so the
// first invalid item deterministically decides which fault the caller sees.
func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (*entity.Order, error) {
	order, err := uc.buildOrder(ctx, in)
	if err != nil {
		uc.log.ErrorContext(ctx, "checkout failed",
			"customer_id", in.CustomerID,
			"error", err,
		)
		return nil, err
	}

	if err := uc.orders.Save(ctx, order); err != nil {
		uc.log.ErrorContext(ctx, "checkout failed to persist order",
			"order_id", order.ID().String(),
			"error", err,
		)
		return nil, err
	}

	uc.events.Publish(ctx, event.KindOrderCreated, event.OrderCreated{
		Order:      order,
		OccurredAt: uc.now().UTC(),
	})

	uc.log.InfoContext(ctx, "order created",
		"order_id", order.ID().String(),
		"customer_id", order.Customer().ID.String(),
		"total", order.Total().String(),
		"items", len(order.Items()),
	)
	return order, nil
}

func (uc *Checkout) buildOrder(ctx context.Context, in CheckoutInput) (*entity.Order, error) {
	payment, err := vo.NewPaymentMethod(in.PaymentMethod, in.PaymentDetails)
	if err != nil {
		return nil, err
	}

	address, err := vo.NewAddress(in.Street, in.Number, in.Complement, in.District, in.City, in.State, in.ZipCode)
	if err != nil {
		return nil, err
	}

	customerID, err := vo.ParseID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	order := entity.NewOrder(user.AsCustomer(), payment, address, uc.now())
	for _, item := range in.Items {
		productID, err := vo.ParseID(item.ProductID)
		if err != nil {
			return nil, err
		}
		product, err := uc.products.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := order.AddItem(product, item.Quantity); err != nil {
			return nil, err
		}
	}
	return order, nil
}
