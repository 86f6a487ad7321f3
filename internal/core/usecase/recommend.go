package usecase

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// Recommend asks the similarity model for related products and resolves the
// returned ids against the catalog. Ids the model knows but the catalog no
// longer carries are silently dropped.
type Recommend struct {
	similarity ports.SimilarityGateway
	products   ports.ProductsRepository
	log        *slog.Logger
}

func NewRecommend(similarity ports.SimilarityGateway, products ports.ProductsRepository, log *slog.Logger) *Recommend {
	return &Recommend{similarity: similarity, products: products, log: log}
}

func (uc *Recommend) Execute(ctx context.Context, rawProductID string) ([]*entity.ShowcaseProduct, error) {
	productID, err := vo.ParseID(rawProductID)
	if err != nil {
		return nil, err
	}

	ids, err := uc.similarity.Predict(ctx, productID)
	if err != nil {
		uc.log.ErrorContext(ctx, "similarity prediction failed", "product_id", productID.String(), "error", err)
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return uc.products.FindByIDs(ctx, ids)
}
