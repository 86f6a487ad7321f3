package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
)

func testPayment(t *testing.T) vo.PaymentMethod {
	t.Helper()
	payment, err := vo.NewPaymentMethod(vo.PaymentPIX, vo.PIXDetails{Key: "buyer@example.com"})
	require.NoError(t, err)
	return payment
}

func testAddress(t *testing.T) vo.Address {
	t.Helper()
	addr, err := vo.NewAddress("Rua das Flores", "100", "", "Centro", "Curitiba", "PR", "80000-000")
	require.NoError(t, err)
	return addr
}

func testProduct(t *testing.T, name string, price int64) *entity.ShowcaseProduct {
	t.Helper()
	product, err := entity.NewShowcaseProduct(name, decimal.NewFromInt(price), "", "", nil)
	require.NoError(t, err)
	return product
}

func testCustomer() entity.Customer {
	return entity.Customer{ID: vo.NewID(), Name: "Ana", Email: vo.Email("ana@example.com")}
}

func newTestOrder(t *testing.T) *entity.Order {
	t.Helper()
	return entity.NewOrder(testCustomer(), testPayment(t), testAddress(t), time.Now())
}

func TestOrder_AddItem(t *testing.T) {
	order := newTestOrder(t)

	err := order.AddItem(testProduct(t, "keyboard", 100), 1)
	require.NoError(t, err)
	err = order.AddItem(testProduct(t, "monitor", 200), 2)
	require.NoError(t, err)

	assert.Len(t, order.Items(), 2)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(500)), "total = %s", order.Total())
}

func TestOrder_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		order := newTestOrder(t)
		err := order.AddItem(testProduct(t, "keyboard", 100), quantity)

		require.Error(t, err)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		assert.ErrorContains(t, err, "index 0")
		assert.Empty(t, order.Items())
	}
}

func TestOrder_AddItem_ValidationFaultCarriesIndex(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.AddItem(testProduct(t, "keyboard", 100), 1))

	err := order.AddItem(testProduct(t, "monitor", 200), 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "index 1")
}

func TestOrder_AddItem_RejectsDuplicateProduct(t *testing.T) {
	order := newTestOrder(t)
	keyboard := testProduct(t, "keyboard", 100)

	require.NoError(t, order.AddItem(keyboard, 1))
	require.NoError(t, order.AddItem(testProduct(t, "monitor", 200), 1))

	err := order.AddItem(keyboard, 3)
	require.Error(t, err)
	assert.Equal(t, fault.KindConflict, fault.KindOf(err))
	assert.ErrorContains(t, err, "keyboard")
	assert.ErrorContains(t, err, "index 0")
	assert.Len(t, order.Items(), 2)
}

// A duplicate of the very first item must be rejected too; the index of the
// original occurrence must not be confused with "not found".
func TestOrder_AddItem_DetectsDuplicateAtFirstPosition(t *testing.T) {
	order := newTestOrder(t)
	keyboard := testProduct(t, "keyboard", 100)

	require.NoError(t, order.AddItem(keyboard, 1))

	err := order.AddItem(keyboard, 1)
	require.Error(t, err)
	assert.Equal(t, fault.KindConflict, fault.KindOf(err))
}

func TestOrder_Items_ReturnsDefensiveCopy(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.AddItem(testProduct(t, "keyboard", 100), 1))

	items := order.Items()
	items[0].Quantity = 99
	items[0].Product.Name = "hacked"

	fresh := order.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "keyboard", fresh[0].Product.Name)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(100)))
}

func TestOrder_Total_IsDerivedFromCapturedPrices(t *testing.T) {
	order := newTestOrder(t)
	keyboard := testProduct(t, "keyboard", 100)
	require.NoError(t, order.AddItem(keyboard, 2))

	// A later catalog price change must not affect the order.
	keyboard.Price = decimal.NewFromInt(999)

	assert.True(t, order.Total().Equal(decimal.NewFromInt(200)))
}

func TestRestoreOrder(t *testing.T) {
	original := newTestOrder(t)
	require.NoError(t, original.AddItem(testProduct(t, "keyboard", 100), 2))

	created := original.CreatedAt()
	restored := entity.RestoreOrder(
		original.ID(),
		original.Customer(),
		original.Payment(),
		original.DeliveryAddress(),
		original.Items(),
		created,
		created,
	)

	assert.Equal(t, original.ID(), restored.ID())
	assert.True(t, original.Total().Equal(restored.Total()))
	require.Len(t, restored.Items(), 1)
	assert.Equal(t, original.ID(), restored.Items()[0].OrderID)
}

func TestRestoreOrderItem_StillValidatesQuantity(t *testing.T) {
	_, err := entity.RestoreOrderItem(vo.NewID(), testProduct(t, "keyboard", 100), 0, decimal.NewFromInt(100))
	require.Error(t, err)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}
