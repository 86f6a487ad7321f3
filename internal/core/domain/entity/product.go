package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
)

// Category classifies a showcase product. A category may sit under a single
// root category; deeper nesting is not modelled.
type Category struct {
	ID     vo.ID     `json:"id"`
	Name   string    `json:"name"`
	Parent *Category `json:"parent,omitempty"`
}

// Clone returns a deep copy so aggregate snapshots never share category
// pointers with callers.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Parent = c.Parent.Clone()
	return &clone
}

// ShowcaseProduct is the read-oriented catalog projection referenced by
// order items. Price is the list price at the moment the projection was read.
type ShowcaseProduct struct {
	ID          vo.ID           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Category    *Category       `json:"category,omitempty"`
}

// NewShowcaseProduct validates the catalog invariants: a name and a
// non-negative price.
func NewShowcaseProduct(name string, price decimal.Decimal, description, imageURL string, category *Category) (*ShowcaseProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.Validation("invalid_product", "product name is required")
	}
	if price.IsNegative() {
		return nil, fault.Validation("invalid_product", "product price must not be negative")
	}
	return &ShowcaseProduct{
		ID:          vo.NewID(),
		Name:        name,
		Price:       price,
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		Category:    category.Clone(),
	}, nil
}

// Clone returns a deep copy of the product snapshot.
func (p *ShowcaseProduct) Clone() *ShowcaseProduct {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Category = p.Category.Clone()
	return &clone
}
