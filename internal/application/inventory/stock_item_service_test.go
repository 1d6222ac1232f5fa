package inventory

import (
	"context"
	"testing"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockItemRepository is a mock implementation of StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.StockItem, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.StockItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLockAndEvents(ctx context.Context, item *inventory.StockItem, events []shared.DomainEvent) error {
	args := m.Called(ctx, item, events)
	return args.Error(0)
}

func (m *MockStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockItemRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockItemRepository) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockItemRepository) ExistsByStore(ctx context.Context, storeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, storeID)
	return args.Bool(0), args.Error(1)
}

// requestRefChecker stubs the request repository; only ExistsByStockItem is
// used by the stock item service
type requestRefChecker struct {
	referenced bool
	err        error
}

func (r *requestRefChecker) FindByID(context.Context, uuid.UUID) (*requisition.StockRequest, error) {
	return nil, shared.ErrNotFound
}

func (r *requestRefChecker) FindByRequestNumber(context.Context, string) (*requisition.StockRequest, error) {
	return nil, shared.ErrNotFound
}

func (r *requestRefChecker) FindAll(context.Context, shared.Filter) ([]requisition.StockRequest, error) {
	return nil, nil
}

func (r *requestRefChecker) FindBySite(context.Context, uuid.UUID, shared.Filter) ([]requisition.StockRequest, error) {
	return nil, nil
}

func (r *requestRefChecker) FindByRequester(context.Context, uuid.UUID, shared.Filter) ([]requisition.StockRequest, error) {
	return nil, nil
}

func (r *requestRefChecker) FindByStatus(context.Context, requisition.RequestStatus, shared.Filter) ([]requisition.StockRequest, error) {
	return nil, nil
}

func (r *requestRefChecker) Save(context.Context, *requisition.StockRequest) error { return nil }

func (r *requestRefChecker) SaveWithLock(context.Context, *requisition.StockRequest) error {
	return nil
}

func (r *requestRefChecker) SaveWithLockAndEvents(context.Context, *requisition.StockRequest, []shared.DomainEvent) error {
	return nil
}

func (r *requestRefChecker) Delete(context.Context, uuid.UUID) error { return nil }

func (r *requestRefChecker) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }

func (r *requestRefChecker) CountByStatus(context.Context, requisition.RequestStatus) (int64, error) {
	return 0, nil
}

func (r *requestRefChecker) ExistsByStockItem(context.Context, uuid.UUID) (bool, error) {
	return r.referenced, r.err
}

func (r *requestRefChecker) GenerateRequestNumber(context.Context) (string, error) {
	return "REQ-2026-00001", nil
}

func TestStockItemService_CreateStockItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with initial quantity", func(t *testing.T) {
		repo := new(MockStockItemRepository)
		service := NewStockItemService(repo, &requestRefChecker{})

		repo.On("ExistsBySKU", ctx, "FEED-001").Return(false, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		initial := decimal.NewFromInt(40)
		minQty := decimal.NewFromInt(10)
		response, err := service.CreateStockItem(ctx, CreateStockItemRequest{
			SKU:         "FEED-001",
			Name:        "Starter Feed",
			CategoryID:  uuid.New(),
			StoreID:     uuid.New(),
			Unit:        "kg",
			Quantity:    &initial,
			MinQuantity: &minQty,
		})

		require.NoError(t, err)
		assert.True(t, initial.Equal(response.Quantity))
		assert.True(t, minQty.Equal(response.MinQuantity))
		assert.False(t, response.BelowMinimum)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		repo := new(MockStockItemRepository)
		service := NewStockItemService(repo, &requestRefChecker{})

		repo.On("ExistsBySKU", ctx, "FEED-001").Return(true, nil)

		_, err := service.CreateStockItem(ctx, CreateStockItemRequest{
			SKU:        "FEED-001",
			Name:       "Starter Feed",
			CategoryID: uuid.New(),
			StoreID:    uuid.New(),
			Unit:       "kg",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_SKU", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStockItemService_Restock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStockItemRepository)
	service := NewStockItemService(repo, &requestRefChecker{})

	item, err := inventory.NewStockItem("FEED-001", "Starter Feed", uuid.New(), uuid.New(), "kg")
	require.NoError(t, err)
	item.ClearDomainEvents()

	repo.On("FindByID", ctx, item.ID).Return(item, nil)
	repo.On("SaveWithLockAndEvents", ctx, item, mock.Anything).Return(nil)

	response, err := service.Restock(ctx, item.ID, RestockRequest{Quantity: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(response.Quantity))
}

func TestStockItemService_DeleteStockItem(t *testing.T) {
	ctx := context.Background()

	newItem := func(t *testing.T) *inventory.StockItem {
		item, err := inventory.NewStockItem("FEED-001", "Starter Feed", uuid.New(), uuid.New(), "kg")
		require.NoError(t, err)
		item.ClearDomainEvents()
		return item
	}

	t.Run("deletes unreferenced item", func(t *testing.T) {
		repo := new(MockStockItemRepository)
		service := NewStockItemService(repo, &requestRefChecker{referenced: false})

		item := newItem(t)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("Delete", ctx, item.ID).Return(nil)

		require.NoError(t, service.DeleteStockItem(ctx, item.ID))
		repo.AssertExpectations(t)
	})

	t.Run("refuses to delete referenced item", func(t *testing.T) {
		repo := new(MockStockItemRepository)
		service := NewStockItemService(repo, &requestRefChecker{referenced: true})

		item := newItem(t)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)

		err := service.DeleteStockItem(ctx, item.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STOCK_ITEM_IN_USE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestStockItemService_ListStockItems(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStockItemRepository)
	service := NewStockItemService(repo, &requestRefChecker{})

	repo.On("FindBelowMinimum", ctx, mock.Anything).Return([]inventory.StockItem{}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

	result, err := service.ListStockItems(ctx, StockItemListFilter{BelowMinimum: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}
