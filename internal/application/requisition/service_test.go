package requisition

import (
	"context"
	"errors"
	"testing"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockRequestRepository is a mock implementation of StockRequestRepository
type MockStockRequestRepository struct {
	mock.Mock
}

func (m *MockStockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*requisition.StockRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requisition.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindByRequestNumber(ctx context.Context, requestNumber string) (*requisition.StockRequest, error) {
	args := m.Called(ctx, requestNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requisition.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]requisition.StockRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]requisition.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]requisition.StockRequest, error) {
	args := m.Called(ctx, siteID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]requisition.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID, filter shared.Filter) ([]requisition.StockRequest, error) {
	args := m.Called(ctx, requesterID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]requisition.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindByStatus(ctx context.Context, status requisition.RequestStatus, filter shared.Filter) ([]requisition.StockRequest, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]requisition.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) Save(ctx context.Context, request *requisition.StockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockStockRequestRepository) SaveWithLock(ctx context.Context, request *requisition.StockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockStockRequestRepository) SaveWithLockAndEvents(ctx context.Context, request *requisition.StockRequest, events []shared.DomainEvent) error {
	args := m.Called(ctx, request, events)
	return args.Error(0)
}

func (m *MockStockRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRequestRepository) CountByStatus(ctx context.Context, status requisition.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRequestRepository) ExistsByStockItem(ctx context.Context, stockItemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, stockItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRequestRepository) GenerateRequestNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

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

func newTestStockItem(t *testing.T, sku, name string, quantity decimal.Decimal) *inventory.StockItem {
	t.Helper()
	item, err := inventory.NewStockItem(sku, name, uuid.New(), uuid.New(), "kg")
	require.NoError(t, err)
	if quantity.GreaterThan(decimal.Zero) {
		require.NoError(t, item.Restock(quantity))
	}
	item.ClearDomainEvents()
	return item
}

func newTestService(t *testing.T) (*StockRequestService, *MockStockRequestRepository, *MockStockItemRepository) {
	t.Helper()
	requestRepo := new(MockStockRequestRepository)
	stockItemRepo := new(MockStockItemRepository)
	txScope := NewNoOpTransactionScope(requestRepo, stockItemRepo)
	return NewStockRequestService(requestRepo, stockItemRepo, txScope), requestRepo, stockItemRepo
}

func newApprovedRequest(t *testing.T, stockItem *inventory.StockItem, quantity decimal.Decimal) *requisition.StockRequest {
	t.Helper()
	requester, err := valueobject.NewEmployeeActor(uuid.New())
	require.NoError(t, err)

	request, err := requisition.NewStockRequest("REQ-2026-00001", uuid.New(), requester, "")
	require.NoError(t, err)
	_, err = request.AddItem(stockItem.ID, stockItem.Name, stockItem.SKU, stockItem.Unit, quantity)
	require.NoError(t, err)
	require.NoError(t, request.Submit())
	require.NoError(t, request.Approve(nil, nil, nil, ""))
	request.ClearDomainEvents()
	return request
}

func TestStockRequestService_CreateRequest(t *testing.T) {
	ctx := context.Background()
	requester, _ := valueobject.NewEmployeeActor(uuid.New())

	t.Run("creates and submits request", func(t *testing.T) {
		service, requestRepo, stockItemRepo := newTestService(t)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		stockItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]inventory.StockItem{*stockItem}, nil)
		requestRepo.On("GenerateRequestNumber", ctx).Return("REQ-2026-00042", nil)
		requestRepo.On("Save", ctx, mock.Anything).Return(nil)

		response, err := service.CreateRequest(ctx, requester, CreateStockRequestRequest{
			SiteID: uuid.New(),
			Notes:  "weekly feed run",
			Items: []CreateRequestItem{
				{StockItemID: stockItem.ID, Quantity: decimal.NewFromInt(25)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "REQ-2026-00042", response.RequestNumber)
		assert.Equal(t, "PENDING", response.Status)
		assert.Len(t, response.Items, 1)
		assert.True(t, decimal.NewFromInt(25).Equal(response.Items[0].RequestedQuantity))
		requestRepo.AssertExpectations(t)
	})

	t.Run("fails when a stock item does not exist", func(t *testing.T) {
		service, _, stockItemRepo := newTestService(t)

		stockItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]inventory.StockItem{}, nil)

		_, err := service.CreateRequest(ctx, requester, CreateStockRequestRequest{
			SiteID: uuid.New(),
			Items: []CreateRequestItem{
				{StockItemID: uuid.New(), Quantity: decimal.NewFromInt(5)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STOCK_ITEM_NOT_FOUND", domainErr.Code)
	})

	t.Run("fails on duplicate stock item lines", func(t *testing.T) {
		service, _, _ := newTestService(t)

		itemID := uuid.New()
		_, err := service.CreateRequest(ctx, requester, CreateStockRequestRequest{
			SiteID: uuid.New(),
			Items: []CreateRequestItem{
				{StockItemID: itemID, Quantity: decimal.NewFromInt(5)},
				{StockItemID: itemID, Quantity: decimal.NewFromInt(3)},
			},
		})

		assert.ErrorIs(t, err, shared.ErrDuplicateStockItem)
	})
}

func TestStockRequestService_ApproveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("approves with quantity override", func(t *testing.T) {
		service, requestRepo, _ := newTestService(t)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		requester, _ := valueobject.NewEmployeeActor(uuid.New())
		request, err := requisition.NewStockRequest("REQ-2026-00001", uuid.New(), requester, "")
		require.NoError(t, err)
		item, err := request.AddItem(stockItem.ID, stockItem.Name, stockItem.SKU, stockItem.Unit, decimal.NewFromInt(50))
		require.NoError(t, err)
		require.NoError(t, request.Submit())
		request.ClearDomainEvents()

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

		granted := decimal.NewFromInt(30)
		response, err := service.ApproveRequest(ctx, request.ID, ApproveStockRequestRequest{
			Modifications: []ApproveItemModification{
				{ItemID: item.ID, ApprovedQuantity: &granted},
			},
			Comment: "cut to available budget",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", response.Status)
		assert.True(t, granted.Equal(response.Items[0].ApprovedQuantity))
		requestRepo.AssertExpectations(t)
	})

	t.Run("propagates invalid state from the domain", func(t *testing.T) {
		service, requestRepo, _ := newTestService(t)

		requester, _ := valueobject.NewEmployeeActor(uuid.New())
		request, err := requisition.NewStockRequest("REQ-2026-00002", uuid.New(), requester, "")
		require.NoError(t, err)
		_, err = request.AddItem(uuid.New(), "Starter Feed", "FEED-001", "kg", decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, request.Submit())
		require.NoError(t, request.Reject("budget freeze"))
		request.ClearDomainEvents()

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		_, err = service.ApproveRequest(ctx, request.ID, ApproveStockRequestRequest{})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestStockRequestService_IssueMaterials(t *testing.T) {
	ctx := context.Background()

	t.Run("issues materials and deducts stock", func(t *testing.T) {
		service, requestRepo, stockItemRepo := newTestService(t)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		request := newApprovedRequest(t, stockItem, decimal.NewFromInt(25))

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		stockItemRepo.On("FindByIDForUpdate", ctx, stockItem.ID).Return(stockItem, nil)
		stockItemRepo.On("SaveWithLock", ctx, stockItem).Return(nil)
		requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

		result, err := service.IssueMaterials(ctx, IssueMaterialsRequest{
			RequestID: request.ID,
			Items: []IssueMaterialsItem{
				{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(25)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "ISSUED", result.Request.Status)
		assert.Len(t, result.IssuedItems, 1)
		assert.True(t, decimal.NewFromInt(75).Equal(stockItem.Quantity))
		requestRepo.AssertExpectations(t)
		stockItemRepo.AssertExpectations(t)
	})

	t.Run("fails on insufficient stock", func(t *testing.T) {
		service, requestRepo, stockItemRepo := newTestService(t)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(5))
		request := newApprovedRequest(t, stockItem, decimal.NewFromInt(25))

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		stockItemRepo.On("FindByIDForUpdate", ctx, stockItem.ID).Return(stockItem, nil)

		_, err := service.IssueMaterials(ctx, IssueMaterialsRequest{
			RequestID: request.ID,
			Items: []IssueMaterialsItem{
				{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(25)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		stockItemRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		requestRepo.AssertNotCalled(t, "SaveWithLockAndEvents", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails on over-issue without touching stock", func(t *testing.T) {
		service, requestRepo, stockItemRepo := newTestService(t)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		request := newApprovedRequest(t, stockItem, decimal.NewFromInt(25))

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		_, err := service.IssueMaterials(ctx, IssueMaterialsRequest{
			RequestID: request.ID,
			Items: []IssueMaterialsItem{
				{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(30)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
		stockItemRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("publishes events after the transaction commits", func(t *testing.T) {
		service, requestRepo, stockItemRepo := newTestService(t)
		publisher := &capturingPublisher{}
		service.SetEventPublisher(publisher)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		request := newApprovedRequest(t, stockItem, decimal.NewFromInt(25))

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		stockItemRepo.On("FindByIDForUpdate", ctx, stockItem.ID).Return(stockItem, nil)
		stockItemRepo.On("SaveWithLock", ctx, stockItem).Return(nil)
		requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

		_, err := service.IssueMaterials(ctx, IssueMaterialsRequest{
			RequestID: request.ID,
			Items: []IssueMaterialsItem{
				{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(25)},
			},
		})

		require.NoError(t, err)
		types := make([]string, len(publisher.events))
		for i, evt := range publisher.events {
			types[i] = evt.EventType()
		}
		assert.Contains(t, types, requisition.EventTypeMaterialsIssued)
		assert.Contains(t, types, inventory.EventTypeStockDeducted)
	})

	t.Run("publishes nothing when the commit fails", func(t *testing.T) {
		requestRepo := new(MockStockRequestRepository)
		stockItemRepo := new(MockStockItemRepository)
		scope := &commitFailScope{repos: NewNoOpTransactionScope(requestRepo, stockItemRepo)}
		service := NewStockRequestService(requestRepo, stockItemRepo, scope)
		publisher := &capturingPublisher{}
		service.SetEventPublisher(publisher)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		request := newApprovedRequest(t, stockItem, decimal.NewFromInt(25))

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		stockItemRepo.On("FindByIDForUpdate", ctx, stockItem.ID).Return(stockItem, nil)
		stockItemRepo.On("SaveWithLock", ctx, stockItem).Return(nil)
		requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

		_, err := service.IssueMaterials(ctx, IssueMaterialsRequest{
			RequestID: request.ID,
			Items: []IssueMaterialsItem{
				{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(25)},
			},
		})

		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

// commitFailScope runs the callback like NoOpTransactionScope and then
// reports a failed commit.
type commitFailScope struct {
	repos *NoOpTransactionScope
}

func (s *commitFailScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	if err := fn(s.repos); err != nil {
		return err
	}
	return errors.New("commit failed")
}

func TestStockRequestService_ReceiveMaterials(t *testing.T) {
	ctx := context.Background()
	service, requestRepo, stockItemRepo := newTestService(t)

	stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
	request := newApprovedRequest(t, stockItem, decimal.NewFromInt(25))
	_, err := request.IssueMaterials([]requisition.IssueLine{{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(10)}})
	require.NoError(t, err)
	request.ClearDomainEvents()

	requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
	requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

	response, err := service.ReceiveMaterials(ctx, ReceiveMaterialsRequest{
		RequestID: request.ID,
		Items: []ReceiveMaterialsItem{
			{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(10)},
		},
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(response.Items[0].ReceivedQuantity))
	stockItemRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	requestRepo.AssertExpectations(t)
}

func TestStockRequestService_RejectRequest(t *testing.T) {
	ctx := context.Background()
	service, requestRepo, _ := newTestService(t)

	requester, _ := valueobject.NewEmployeeActor(uuid.New())
	request, err := requisition.NewStockRequest("REQ-2026-00001", uuid.New(), requester, "")
	require.NoError(t, err)
	_, err = request.AddItem(uuid.New(), "Starter Feed", "FEED-001", "kg", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, request.Submit())
	request.ClearDomainEvents()

	requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
	requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

	response, err := service.RejectRequest(ctx, request.ID, RejectStockRequestRequest{Reason: "budget freeze"})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", response.Status)
	assert.Equal(t, "budget freeze", response.RejectReason)
}

func TestStockRequestService_CloseRequest(t *testing.T) {
	ctx := context.Background()
	service, requestRepo, _ := newTestService(t)

	stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
	request := newApprovedRequest(t, stockItem, decimal.NewFromInt(10))
	_, err := request.IssueMaterials([]requisition.IssueLine{{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(10)}})
	require.NoError(t, err)
	_, err = request.ReceiveMaterials([]requisition.ReceiveLine{{ItemID: request.Items[0].ID, Quantity: decimal.NewFromInt(10)}})
	require.NoError(t, err)
	request.ClearDomainEvents()

	requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
	requestRepo.On("SaveWithLockAndEvents", ctx, request, mock.Anything).Return(nil)

	response, err := service.CloseRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", response.Status)
}

func TestStockRequestService_DeleteRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a pending request", func(t *testing.T) {
		service, requestRepo, _ := newTestService(t)

		requester, _ := valueobject.NewEmployeeActor(uuid.New())
		request, err := requisition.NewStockRequest("REQ-2026-00001", uuid.New(), requester, "")
		require.NoError(t, err)

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		requestRepo.On("Delete", ctx, request.ID).Return(nil)

		require.NoError(t, service.DeleteRequest(ctx, request.ID))
		requestRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete an approved request", func(t *testing.T) {
		service, requestRepo, _ := newTestService(t)

		stockItem := newTestStockItem(t, "FEED-001", "Starter Feed", decimal.NewFromInt(100))
		request := newApprovedRequest(t, stockItem, decimal.NewFromInt(10))

		requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		err := service.DeleteRequest(ctx, request.ID)
		require.Error(t, err)
		requestRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestStockRequestService_ListRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and filters", func(t *testing.T) {
		service, requestRepo, _ := newTestService(t)

		requestRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20 && f.Filters["status"] == "PENDING"
		})).Return([]requisition.StockRequest{}, nil)
		requestRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		status := "PENDING"
		result, err := service.ListRequests(ctx, StockRequestListFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Total)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		service, _, _ := newTestService(t)

		status := "SHIPPED"
		_, err := service.ListRequests(ctx, StockRequestListFilter{Status: &status})
		require.Error(t, err)
	})
}
