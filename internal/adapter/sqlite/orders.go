package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.OrdersRepository = (*OrdersRepository)(nil)

type OrdersRepository struct {
	db *DB
}

func NewOrdersRepository(db *DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// Save writes the order row and its items in one transaction. Orders are
// immutable after creation, so Save is insert-only.
func (r *OrdersRepository) Save(ctx context.Context, order *entity.Order) error {
	payment, err := json.Marshal(order.Payment())
	if err != nil {
		return fmt.Errorf("sqlite: marshal payment: %w", err)
	}
	address, err := json.Marshal(order.DeliveryAddress())
	if err != nil {
		return fmt.Errorf("sqlite: marshal address: %w", err)
	}

	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, customer_name, customer_email, payment, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID().String(),
		order.Customer().ID.String(),
		order.Customer().Name,
		order.Customer().Email.String(),
		string(payment),
		string(address),
		formatTime(order.CreatedAt()),
		formatTime(order.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order %s: %w", order.ID(), err)
	}

	for position, item := range order.Items() {
		product, err := json.Marshal(item.Product)
		if err != nil {
			return fmt.Errorf("sqlite: marshal product snapshot: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, product, quantity, price)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID().String(),
			position,
			string(product),
			item.Quantity,
			item.Price.String(),
		)
		if err != nil {
			return fmt.Errorf("sqlite: insert item %d of order %s: %w", position, order.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit order %s: %w", order.ID(), err)
	}
	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id vo.ID) (*entity.Order, error) {
	row := r.db.conn.QueryRowContext(ctx, `
		SELECT id, customer_id, customer_name, customer_email, payment, address, created_at, updated_at
		FROM orders WHERE id = ?`, id.String())

	order, err := r.scanOrder(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.NotFound("order_not_found", "order %s not found", id)
	}
	return order, err
}

func (r *OrdersRepository) List(ctx context.Context, query ports.ListOrdersQuery) (ports.Page[*entity.Order], error) {
	var zero ports.Page[*entity.Order]
	req := query.PageRequest.Normalize()

	var total int64
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE (? = '' OR customer_id = ?)`,
		query.CustomerID.String(), query.CustomerID.String(),
	).Scan(&total)
	if err != nil {
		return zero, fmt.Errorf("sqlite: count orders: %w", err)
	}

	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT id, customer_id, customer_name, customer_email, payment, address, created_at, updated_at
		FROM orders
		WHERE (? = '' OR customer_id = ?)
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`,
		query.CustomerID.String(), query.CustomerID.String(),
		req.PageSize, req.Offset(),
	)
	if err != nil {
		return zero, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0, req.PageSize)
	for rows.Next() {
		order, err := r.scanOrder(ctx, rows)
		if err != nil {
			return zero, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("sqlite: list orders rows: %w", err)
	}
	return ports.NewPage(orders, total, req), nil
}

// rowScanner lets scanOrder work for both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrdersRepository) scanOrder(ctx context.Context, row rowScanner) (*entity.Order, error) {
	var (
		rawID, customerID, customerName, customerEmail string
		paymentJSON, addressJSON                       string
		createdAt, updatedAt                           string
	)
	if err := row.Scan(&rawID, &customerID, &customerName, &customerEmail,
		&paymentJSON, &addressJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("sqlite: scan order: %w", err)
	}

	var payment vo.PaymentMethod
	if err := json.Unmarshal([]byte(paymentJSON), &payment); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal payment of order %s: %w", rawID, err)
	}
	var address vo.Address
	if err := json.Unmarshal([]byte(addressJSON), &address); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal address of order %s: %w", rawID, err)
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	orderID := vo.ID(rawID)
	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	customer := entity.Customer{
		ID:    vo.ID(customerID),
		Name:  customerName,
		Email: vo.Email(customerEmail),
	}
	return entity.RestoreOrder(orderID, customer, payment, address, items, created, updated), nil
}

func (r *OrdersRepository) loadItems(ctx context.Context, orderID vo.ID) ([]entity.OrderItem, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT product, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY position`, orderID.String())
	if err != nil {
		return nil, fmt.Errorf("sqlite: load items of order %s: %w", orderID, err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var (
			productJSON string
			quantity    int
			rawPrice    string
		)
		if err := rows.Scan(&productJSON, &quantity, &rawPrice); err != nil {
			return nil, fmt.Errorf("sqlite: scan item of order %s: %w", orderID, err)
		}
		var product entity.ShowcaseProduct
		if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
			return nil, fmt.Errorf("sqlite: unmarshal product snapshot: %w", err)
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse price %q: %w", rawPrice, err)
		}
		item, err := entity.RestoreOrderItem(orderID, &product, quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
