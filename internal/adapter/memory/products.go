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

var _ ports.ProductsRepository = (*ProductsRepository)(nil)

type ProductsRepository struct {
	mu       sync.RWMutex
	products map[vo.ID]*entity.ShowcaseProduct
}

func NewProductsRepository() *ProductsRepository {
	return &ProductsRepository{products: make(map[vo.ID]*entity.ShowcaseProduct)}
}

func (r *ProductsRepository) Save(_ context.Context, product *entity.ShowcaseProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product.Clone()
	return nil
}

func (r *ProductsRepository) FindByID(_ context.Context, id vo.ID) (*entity.ShowcaseProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, fault.NotFound("product_not_found", "product %s not found", id)
	}
	return product.Clone(), nil
}

func (r *ProductsRepository) Exists(_ context.Context, id vo.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.products[id]
	return ok, nil
}

func (r *ProductsRepository) FindByIDs(_ context.Context, ids []vo.ID) ([]*entity.ShowcaseProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]*entity.ShowcaseProduct, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, product.Clone())
		}
	}
	return found, nil
}

func (r *ProductsRepository) List(_ context.Context, req ports.PageRequest) (ports.Page[*entity.ShowcaseProduct], error) {
	r.mu.RLock()
	all := make([]*entity.ShowcaseProduct, 0, len(r.products))
	for _, product := range r.products {
		all = append(all, product.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	req = req.Normalize()
	total := int64(len(all))
	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.PageSize
	if end > len(all) {
		end = len(all)
	}
	return ports.NewPage(all[start:end], total, req), nil
}
