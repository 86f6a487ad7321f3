package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
)

// Customer is the buyer snapshot embedded in an order. It is copied from the
// user record at checkout time and never updated afterwards, so later profile
// edits do not rewrite order history.
type Customer struct {
	ID    vo.ID    `json:"id"`
	Name  string   `json:"name"`
	Email vo.Email `json:"email"`
}

// OrderItem is one line of an order. Price is captured from the product at
// order time and is independent of later catalog price changes.
type OrderItem struct {
	OrderID  vo.ID            `json:"order_id"`
	Product  *ShowcaseProduct `json:"product"`
	Quantity int              `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
}

// Subtotal is price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i OrderItem) clone() OrderItem {
	clone := i
	clone.Product = i.Product.Clone()
	return clone
}

func newOrderItem(orderID vo.ID, product *ShowcaseProduct, quantity, index int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, fault.Validation("invalid_order_item", "quantity must be greater than zero").
			WithDetail("item at index %d has quantity %d", index, quantity)
	}
	return OrderItem{
		OrderID:  orderID,
		Product:  product.Clone(),
		Quantity: quantity,
		Price:    product.Price,
	}, nil
}

// Order is the checkout aggregate. It owns its items exclusively: items enter
// only through AddItem and leave the aggregate only as deep copies, so no
// caller can break the "one item per product" invariant from outside.
type Order struct {
	id        vo.ID
	customer  Customer
	payment   vo.PaymentMethod
	address   vo.Address
	items     []OrderItem
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder creates an empty order with a generated id and timestamps set to
// now.
func NewOrder(customer Customer, payment vo.PaymentMethod, address vo.Address, now time.Time) *Order {
	return &Order{
		id:        vo.NewID(),
		customer:  customer,
		payment:   payment,
		address:   address,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}
}

// RestoreOrder rehydrates an order from storage. Business invariants are not
// re-checked beyond what item construction already guaranteed; storage is
// trusted to hold what AddItem accepted.
func RestoreOrder(id vo.ID, customer Customer, payment vo.PaymentMethod, address vo.Address, items []OrderItem, createdAt, updatedAt time.Time) *Order {
	restored := make([]OrderItem, len(items))
	for i, item := range items {
		restored[i] = item.clone()
		restored[i].OrderID = id
	}
	return &Order{
		id:        id,
		customer:  customer,
		payment:   payment,
		address:   address,
		items:     restored,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// RestoreOrderItem rebuilds a line item from storage, keeping only the
// construction-level quantity check.
func RestoreOrderItem(orderID vo.ID, product *ShowcaseProduct, quantity int, price decimal.Decimal) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, fault.Validation("invalid_order_item", "quantity must be greater than zero")
	}
	return OrderItem{OrderID: orderID, Product: product.Clone(), Quantity: quantity, Price: price}, nil
}

// AddItem appends a line item for the given product. It fails with a
// validation fault when quantity is not positive and with a conflict fault
// when the product is already in the order. The duplicate check compares the
// found index against -1 explicitly, so a duplicate of the very first item is
// rejected like any other.
func (o *Order) AddItem(product *ShowcaseProduct, quantity int) error {
	item, err := newOrderItem(o.id, product, quantity, len(o.items))
	if err != nil {
		return err
	}

	existing := -1
	for i, placed := range o.items {
		if placed.Product.ID == product.ID {
			existing = i
			break
		}
	}
	if existing != -1 {
		return fault.Conflict("item_already_placed", "product %q is already in the order", product.Name).
			WithDetail("product %s first appears at index %d", product.ID, existing)
	}

	o.items = append(o.items, item)
	return nil
}

// Total is derived, never stored: the sum of price times quantity over all
// items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a deep copy of the line items. Mutating the returned slice or
// the product snapshots inside it does not affect the aggregate.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	for i, item := range o.items {
		items[i] = item.clone()
	}
	return items
}

func (o *Order) ID() vo.ID { return o.id }

func (o *Order) Customer() Customer { return o.customer }

func (o *Order) Payment() vo.PaymentMethod { return o.payment }

func (o *Order) DeliveryAddress() vo.Address { return o.address }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
