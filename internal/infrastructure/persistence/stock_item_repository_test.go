package persistence

import (
	"context"
	"testing"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStockItem(t *testing.T, sku string) *inventory.StockItem {
	t.Helper()
	item, err := inventory.NewStockItem(sku, "Fish Feed 3mm", uuid.New(), uuid.New(), "kg")
	require.NoError(t, err)
	return item
}

func TestGormStockItemRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	item := newTestStockItem(t, "FEED-3MM")
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "FEED-3MM", found.SKU)
	assert.True(t, found.Quantity.IsZero())

	bySKU, err := repo.FindBySKU(ctx, "FEED-3MM")
	require.NoError(t, err)
	assert.Equal(t, item.ID, bySKU.ID)

	_, err = repo.FindBySKU(ctx, "NO-SUCH-SKU")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	exists, err := repo.ExistsBySKU(ctx, "FEED-3MM")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormStockItemRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	first := newTestStockItem(t, "FEED-3MM")
	second := newTestStockItem(t, "MED-FORM")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	items, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGormStockItemRepository_FindBelowMinimum(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	low := newTestStockItem(t, "FEED-3MM")
	require.NoError(t, low.Restock(decimal.NewFromInt(5)))
	require.NoError(t, low.SetMinQuantity(decimal.NewFromInt(10)))
	require.NoError(t, repo.Save(ctx, low))

	healthy := newTestStockItem(t, "FEED-5MM")
	require.NoError(t, healthy.Restock(decimal.NewFromInt(50)))
	require.NoError(t, healthy.SetMinQuantity(decimal.NewFromInt(10)))
	require.NoError(t, repo.Save(ctx, healthy))

	// Zero threshold never alerts even at zero quantity
	noThreshold := newTestStockItem(t, "MED-FORM")
	require.NoError(t, repo.Save(ctx, noThreshold))

	items, err := repo.FindBelowMinimum(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "FEED-3MM", items[0].SKU)
}

func TestGormStockItemRepository_SaveWithLock_VersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	item := newTestStockItem(t, "FEED-3MM")
	require.NoError(t, repo.Save(ctx, item))

	stale, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)

	require.NoError(t, item.Restock(decimal.NewFromInt(25)))
	require.NoError(t, repo.SaveWithLock(ctx, item))
	assert.Equal(t, 2, item.Version)

	require.NoError(t, stale.Restock(decimal.NewFromInt(10)))
	err = repo.SaveWithLock(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, found.Quantity.Equal(decimal.NewFromInt(25)))
}

func TestGormStockItemRepository_ExistsByCategoryAndStore(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	item := newTestStockItem(t, "FEED-3MM")
	require.NoError(t, repo.Save(ctx, item))

	exists, err := repo.ExistsByCategory(ctx, item.CategoryID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCategory(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByStore(ctx, item.StoreID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormStockItemRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	item := newTestStockItem(t, "FEED-3MM")
	require.NoError(t, repo.Save(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err := repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormStockItemRepository_FilterByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockItemRepository(newTestDB(t))

	item := newTestStockItem(t, "FEED-3MM")
	require.NoError(t, repo.Save(ctx, item))

	filter := shared.DefaultFilter()
	filter.Filters = map[string]interface{}{"category_id": item.CategoryID}
	items, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	filter.Filters = map[string]interface{}{"category_id": uuid.New()}
	items, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, items)
}
