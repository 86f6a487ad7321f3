package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/adapter/memory"
	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
	"github.com/jcmexdev/storefront/internal/core/usecase"
)

func paymentFixture(t *testing.T) vo.PaymentMethod {
	t.Helper()
	payment, err := vo.NewPaymentMethod(vo.PaymentPIX, vo.PIXDetails{Key: "buyer@example.com"})
	require.NoError(t, err)
	return payment
}

func addressFixture(t *testing.T) vo.Address {
	t.Helper()
	addr, err := vo.NewAddress("Rua das Flores", "100", "", "Centro", "Curitiba", "PR", "80000-000")
	require.NoError(t, err)
	return addr
}

func savedOrder(t *testing.T, repo *memory.OrdersRepository, customer entity.Customer, createdAt time.Time) *entity.Order {
	t.Helper()
	order := entity.NewOrder(customer, paymentFixture(t), addressFixture(t), createdAt)
	product, err := entity.NewShowcaseProduct("keyboard", decimal.NewFromInt(100), "", "", nil)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(product, 1))
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

func TestOrderQueries_Get(t *testing.T) {
	repo := memory.NewOrdersRepository()
	queries := usecase.NewOrderQueries(repo)
	customer := entity.Customer{ID: vo.NewID(), Name: "Ana", Email: vo.Email("ana@example.com")}
	order := savedOrder(t, repo, customer, time.Now())

	found, err := queries.Get(context.Background(), order.ID().String())
	require.NoError(t, err)
	assert.Equal(t, order.ID(), found.ID())

	_, err = queries.Get(context.Background(), vo.NewID().String())
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))

	_, err = queries.Get(context.Background(), "not-a-uuid")
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}

func TestOrderQueries_ListForCustomer(t *testing.T) {
	repo := memory.NewOrdersRepository()
	queries := usecase.NewOrderQueries(repo)

	ana := entity.Customer{ID: vo.NewID(), Name: "Ana", Email: vo.Email("ana@example.com")}
	bob := entity.Customer{ID: vo.NewID(), Name: "Bob", Email: vo.Email("bob@example.com")}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		savedOrder(t, repo, ana, base.Add(time.Duration(i)*time.Minute))
	}
	savedOrder(t, repo, bob, base)

	first, err := queries.ListForCustomer(context.Background(), ana.ID.String(), ports.PageRequest{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, first.Items, 5)
	assert.Equal(t, int64(10), first.Total)
	assert.Equal(t, 2, first.TotalPages)

	second, err := queries.ListForCustomer(context.Background(), ana.ID.String(), ports.PageRequest{Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)

	// Newest first, and the two pages never overlap.
	assert.True(t, first.Items[0].CreatedAt().After(first.Items[4].CreatedAt()))
	seen := map[vo.ID]bool{}
	for _, order := range append(first.Items, second.Items...) {
		assert.Equal(t, ana.ID, order.Customer().ID)
		assert.False(t, seen[order.ID()], "order %s appeared on both pages", order.ID())
		seen[order.ID()] = true
	}

	empty, err := queries.ListForCustomer(context.Background(), ana.ID.String(), ports.PageRequest{Page: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, int64(10), empty.Total)
}

func TestOrderQueries_ListForCustomer_NormalizesPageRequest(t *testing.T) {
	repo := memory.NewOrdersRepository()
	queries := usecase.NewOrderQueries(repo)
	ana := entity.Customer{ID: vo.NewID(), Name: "Ana", Email: vo.Email("ana@example.com")}
	savedOrder(t, repo, ana, time.Now())

	page, err := queries.ListForCustomer(context.Background(), ana.ID.String(), ports.PageRequest{Page: -3, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 1)
}
