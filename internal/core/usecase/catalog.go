package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// CreateProductInput describes a new catalog entry.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	Category    *entity.Category
}

// Catalog manages showcase products. Reads go through an optional cache;
// cache may be nil, in which case every read hits the repository.
type Catalog struct {
	products ports.ProductsRepository
	cache    ports.ProductCache
	log      *slog.Logger
}

func NewCatalog(products ports.ProductsRepository, cache ports.ProductCache, log *slog.Logger) *Catalog {
	return &Catalog{products: products, cache: cache, log: log}
}

func (uc *Catalog) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.ShowcaseProduct, error) {
	product, err := entity.NewShowcaseProduct(in.Name, in.Price, in.Description, in.ImageURL, in.Category)
	if err != nil {
		return nil, err
	}
	if err := uc.products.Save(ctx, product); err != nil {
		uc.log.ErrorContext(ctx, "failed to persist product", "name", in.Name, "error", err)
		return nil, err
	}
	uc.log.InfoContext(ctx, "product created", "product_id", product.ID.String())
	return product, nil
}

// GetShowcaseProduct reads one product, preferring the cache. A cache write
// failure is logged and ignored: the read already succeeded.
func (uc *Catalog) GetShowcaseProduct(ctx context.Context, rawID string) (*entity.ShowcaseProduct, error) {
	id, err := vo.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if product, ok := uc.cache.Get(ctx, id); ok {
			return product, nil
		}
	}

	product, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, product); err != nil {
			uc.log.WarnContext(ctx, "showcase cache write failed", "product_id", id.String(), "error", err)
		}
	}
	return product, nil
}

func (uc *Catalog) ListProducts(ctx context.Context, req ports.PageRequest) (ports.Page[*entity.ShowcaseProduct], error) {
	return uc.products.List(ctx, req.Normalize())
}
