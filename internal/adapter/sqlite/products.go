package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.ProductsRepository = (*ProductsRepository)(nil)

type ProductsRepository struct {
	db *DB
}

func NewProductsRepository(db *DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

func (r *ProductsRepository) Save(ctx context.Context, product *entity.ShowcaseProduct) error {
	var category any
	if product.Category != nil {
		data, err := json.Marshal(product.Category)
		if err != nil {
			return fmt.Errorf("sqlite: marshal category: %w", err)
		}
		category = string(data)
	}

	_, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO products (id, name, price, description, image_url, category)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			description = excluded.description,
			image_url = excluded.image_url,
			category = excluded.category`,
		product.ID.String(),
		product.Name,
		product.Price.String(),
		product.Description,
		product.ImageURL,
		category,
	)
	if err != nil {
		return fmt.Errorf("sqlite: save product %s: %w", product.ID, err)
	}
	return nil
}

func (r *ProductsRepository) FindByID(ctx context.Context, id vo.ID) (*entity.ShowcaseProduct, error) {
	row := r.db.conn.QueryRowContext(ctx, `
		SELECT id, name, price, description, image_url, category
		FROM products WHERE id = ?`, id.String())

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.NotFound("product_not_found", "product %s not found", id)
	}
	return product, err
}

func (r *ProductsRepository) Exists(ctx context.Context, id vo.ID) (bool, error) {
	var one int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT 1 FROM products WHERE id = ?`, id.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: product exists %s: %w", id, err)
	}
	return true, nil
}

func (r *ProductsRepository) FindByIDs(ctx context.Context, ids []vo.ID) ([]*entity.ShowcaseProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	rows, err := r.db.conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, price, description, image_url, category
		FROM products WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find products by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[vo.ID]*entity.ShowcaseProduct, len(ids))
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		byID[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: find products rows: %w", err)
	}

	// Preserve the requested order; skip ids the catalog no longer has.
	found := make([]*entity.ShowcaseProduct, 0, len(byID))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

func (r *ProductsRepository) List(ctx context.Context, req ports.PageRequest) (ports.Page[*entity.ShowcaseProduct], error) {
	var zero ports.Page[*entity.ShowcaseProduct]
	req = req.Normalize()

	var total int64
	if err := r.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return zero, fmt.Errorf("sqlite: count products: %w", err)
	}

	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT id, name, price, description, image_url, category
		FROM products ORDER BY name LIMIT ? OFFSET ?`,
		req.PageSize, req.Offset())
	if err != nil {
		return zero, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	products := make([]*entity.ShowcaseProduct, 0, req.PageSize)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return zero, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("sqlite: list products rows: %w", err)
	}
	return ports.NewPage(products, total, req), nil
}

func scanProduct(row rowScanner) (*entity.ShowcaseProduct, error) {
	var (
		rawID, name, rawPrice, description, imageURL string
		category                                     sql.NullString
	)
	if err := row.Scan(&rawID, &name, &rawPrice, &description, &imageURL, &category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("sqlite: scan product: %w", err)
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse price %q: %w", rawPrice, err)
	}

	product := &entity.ShowcaseProduct{
		ID:          vo.ID(rawID),
		Name:        name,
		Price:       price,
		Description: description,
		ImageURL:    imageURL,
	}
	if category.Valid && category.String != "" {
		var c entity.Category
		if err := json.Unmarshal([]byte(category.String), &c); err != nil {
			return nil, fmt.Errorf("sqlite: unmarshal category of product %s: %w", rawID, err)
		}
		product.Category = &c
	}
	return product, nil
}
