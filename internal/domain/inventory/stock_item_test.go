package inventory

import (
	"testing"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStockItem(t *testing.T) *StockItem {
	t.Helper()
	item, err := NewStockItem("FEED-3MM", "Fish Feed 3mm", uuid.New(), uuid.New(), "kg")
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestNewStockItem(t *testing.T) {
	tests := []struct {
		name       string
		sku        string
		itemName   string
		categoryID uuid.UUID
		storeID    uuid.UUID
		unit       string
		wantErr    bool
	}{
		{
			name:       "valid item",
			sku:        "FEED-3MM",
			itemName:   "Fish Feed 3mm",
			categoryID: uuid.New(),
			storeID:    uuid.New(),
			unit:       "kg",
		},
		{
			name:       "empty sku",
			sku:        "",
			itemName:   "Fish Feed 3mm",
			categoryID: uuid.New(),
			storeID:    uuid.New(),
			unit:       "kg",
			wantErr:    true,
		},
		{
			name:       "empty name",
			sku:        "FEED-3MM",
			itemName:   "  ",
			categoryID: uuid.New(),
			storeID:    uuid.New(),
			unit:       "kg",
			wantErr:    true,
		},
		{
			name:       "nil category",
			sku:        "FEED-3MM",
			itemName:   "Fish Feed 3mm",
			categoryID: uuid.Nil,
			storeID:    uuid.New(),
			unit:       "kg",
			wantErr:    true,
		},
		{
			name:       "nil store",
			sku:        "FEED-3MM",
			itemName:   "Fish Feed 3mm",
			categoryID: uuid.New(),
			storeID:    uuid.Nil,
			unit:       "kg",
			wantErr:    true,
		},
		{
			name:       "empty unit",
			sku:        "FEED-3MM",
			itemName:   "Fish Feed 3mm",
			categoryID: uuid.New(),
			storeID:    uuid.New(),
			unit:       "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewStockItem(tt.sku, tt.itemName, tt.categoryID, tt.storeID, tt.unit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, item.Quantity.IsZero())
			assert.Len(t, item.GetDomainEvents(), 1)
		})
	}
}

func TestStockItem_Restock(t *testing.T) {
	item := newTestStockItem(t)

	require.NoError(t, item.Restock(decimal.NewFromInt(50)))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(50)))

	require.NoError(t, item.Restock(decimal.NewFromInt(25)))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(75)))

	assert.Error(t, item.Restock(decimal.Zero))
	assert.Error(t, item.Restock(decimal.NewFromInt(-5)))
}

func TestStockItem_Deduct(t *testing.T) {
	item := newTestStockItem(t)
	require.NoError(t, item.Restock(decimal.NewFromInt(30)))
	item.ClearDomainEvents()

	t.Run("deducts within on-hand quantity", func(t *testing.T) {
		require.NoError(t, item.Deduct(decimal.NewFromInt(10)))
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		err := item.Deduct(decimal.NewFromInt(100))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		assert.Error(t, item.Deduct(decimal.Zero))
	})
}

func TestStockItem_BelowMinimum(t *testing.T) {
	item := newTestStockItem(t)
	require.NoError(t, item.Restock(decimal.NewFromInt(20)))
	require.NoError(t, item.SetMinQuantity(decimal.NewFromInt(10)))
	item.ClearDomainEvents()

	require.NoError(t, item.Deduct(decimal.NewFromInt(5)))
	assert.False(t, item.IsBelowMinimum())

	require.NoError(t, item.Deduct(decimal.NewFromInt(8)))
	assert.True(t, item.IsBelowMinimum())

	var sawThreshold bool
	for _, event := range item.GetDomainEvents() {
		if event.EventType() == EventTypeStockBelowMinimum {
			sawThreshold = true
		}
	}
	assert.True(t, sawThreshold)
}

func TestStockItem_Update(t *testing.T) {
	item := newTestStockItem(t)
	newCategory := uuid.New()

	require.NoError(t, item.Update("Fish Feed 5mm", newCategory, "bag", "coarse pellets"))
	assert.Equal(t, "Fish Feed 5mm", item.Name)
	assert.Equal(t, newCategory, item.CategoryID)
	assert.Equal(t, "bag", item.Unit)

	assert.Error(t, item.Update("", newCategory, "bag", ""))
	assert.Error(t, item.Update("Fish Feed 5mm", uuid.Nil, "bag", ""))
}

func TestStockItem_HasStock(t *testing.T) {
	item := newTestStockItem(t)
	require.NoError(t, item.Restock(decimal.NewFromInt(10)))

	assert.True(t, item.HasStock(decimal.NewFromInt(10)))
	assert.True(t, item.HasStock(decimal.NewFromInt(3)))
	assert.False(t, item.HasStock(decimal.NewFromInt(11)))
}
