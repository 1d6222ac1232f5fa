package requisition

import (
	"testing"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *StockRequest {
	t.Helper()
	requester, err := valueobject.NewEmployeeActor(uuid.New())
	require.NoError(t, err)
	request, err := NewStockRequest("REQ-2026-00001", uuid.New(), requester, "weekly feed run")
	require.NoError(t, err)
	return request
}

func addTestItem(t *testing.T, request *StockRequest, qty int64) *RequestItem {
	t.Helper()
	item, err := request.AddItem(uuid.New(), "Fish Feed 3mm", "FEED-3MM", "kg", decimal.NewFromInt(qty))
	require.NoError(t, err)
	return item
}

func approveAll(t *testing.T, request *StockRequest) {
	t.Helper()
	require.NoError(t, request.Approve(nil, nil, nil, ""))
}

func TestNewStockRequest(t *testing.T) {
	requester, err := valueobject.NewEmployeeActor(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name          string
		requestNumber string
		siteID        uuid.UUID
		requester     valueobject.Actor
		wantErr       bool
	}{
		{
			name:          "valid request",
			requestNumber: "REQ-2026-00001",
			siteID:        uuid.New(),
			requester:     requester,
		},
		{
			name:          "empty request number",
			requestNumber: "",
			siteID:        uuid.New(),
			requester:     requester,
			wantErr:       true,
		},
		{
			name:          "nil site",
			requestNumber: "REQ-2026-00001",
			siteID:        uuid.Nil,
			requester:     requester,
			wantErr:       true,
		},
		{
			name:          "zero requester",
			requestNumber: "REQ-2026-00001",
			siteID:        uuid.New(),
			requester:     valueobject.Actor{},
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := NewStockRequest(tt.requestNumber, tt.siteID, tt.requester, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, RequestStatusPending, request.Status)
			assert.Equal(t, 1, request.Version)
			assert.True(t, requester.Equals(request.Requester()))
		})
	}
}

func TestStockRequest_AddItem(t *testing.T) {
	request := newTestRequest(t)
	stockItemID := uuid.New()

	_, err := request.AddItem(stockItemID, "Oxygen Tablets", "OXY-01", "box", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, 1, request.ItemCount())

	t.Run("duplicate stock item rejected", func(t *testing.T) {
		_, err := request.AddItem(stockItemID, "Oxygen Tablets", "OXY-01", "box", decimal.NewFromInt(2))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_STOCK_ITEM", domainErr.Code)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		_, err := request.AddItem(uuid.New(), "Lime", "LIME-01", "kg", decimal.Zero)
		assert.Error(t, err)
	})
}

func TestStockRequest_Submit(t *testing.T) {
	request := newTestRequest(t)

	err := request.Submit()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)

	addTestItem(t, request, 10)
	require.NoError(t, request.Submit())

	events := request.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeStockRequestCreated, events[0].EventType())
}

func TestStockRequest_Approve(t *testing.T) {
	t.Run("defaults approved quantity to requested", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)

		approveAll(t, request)

		assert.Equal(t, RequestStatusApproved, request.Status)
		got := request.GetItem(item.ID)
		assert.True(t, got.ApprovedQuantity.Equal(decimal.NewFromInt(10)))
		assert.NotNil(t, request.ApprovedAt)
	})

	t.Run("modification overrides approved quantity", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)
		approved := decimal.NewFromInt(6)

		err := request.Approve([]ItemModification{
			{ItemID: item.ID, ApprovedQuantity: &approved},
		}, nil, nil, "cut to available budget")
		require.NoError(t, err)

		got := request.GetItem(item.ID)
		assert.True(t, got.ApprovedQuantity.Equal(approved))
		assert.Equal(t, "cut to available budget", request.ReviewComment)
	})

	t.Run("adds and removes items", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)

		err := request.Approve(nil,
			[]ItemToAdd{{StockItemID: uuid.New(), StockItemName: "Salt", StockItemSKU: "SALT-01", Unit: "kg", RequestedQuantity: decimal.NewFromInt(4)}},
			[]uuid.UUID{item.ID}, "")
		require.NoError(t, err)

		assert.Equal(t, 1, request.ItemCount())
		assert.Nil(t, request.GetItem(item.ID))
	})

	t.Run("re-approval allowed in APPROVED", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)
		approveAll(t, request)

		revised := decimal.NewFromInt(8)
		err := request.Approve([]ItemModification{
			{ItemID: item.ID, ApprovedQuantity: &revised},
		}, nil, nil, "revised")
		require.NoError(t, err)
		assert.Equal(t, RequestStatusApproved, request.Status)
		assert.True(t, request.GetItem(item.ID).ApprovedQuantity.Equal(revised))
	})

	t.Run("removing the last item fails", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)

		err := request.Approve(nil, nil, []uuid.UUID{item.ID}, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ITEMS", domainErr.Code)
	})

	t.Run("duplicate stock item across modification and add fails", func(t *testing.T) {
		request := newTestRequest(t)
		addTestItem(t, request, 10)
		dup := uuid.New()

		err := request.Approve(nil, []ItemToAdd{
			{StockItemID: dup, StockItemName: "Salt", StockItemSKU: "SALT-01", Unit: "kg", RequestedQuantity: decimal.NewFromInt(4)},
			{StockItemID: dup, StockItemName: "Salt", StockItemSKU: "SALT-01", Unit: "kg", RequestedQuantity: decimal.NewFromInt(2)},
		}, nil, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_STOCK_ITEM", domainErr.Code)
	})

	t.Run("not allowed in rejected status", func(t *testing.T) {
		request := newTestRequest(t)
		addTestItem(t, request, 10)
		require.NoError(t, request.Reject("out of season"))

		err := request.Approve(nil, nil, nil, "")
		assert.Error(t, err)
	})
}

func TestStockRequest_IssueMaterials(t *testing.T) {
	t.Run("partial issue derives PARTIALLY_ISSUED", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)
		approveAll(t, request)

		issued, err := request.IssueMaterials([]IssueLine{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(4)},
		})
		require.NoError(t, err)
		require.Len(t, issued, 1)
		assert.Equal(t, RequestStatusPartiallyIssued, request.Status)
		assert.True(t, request.GetItem(item.ID).RemainingQuantity().Equal(decimal.NewFromInt(6)))
	})

	t.Run("full issue derives ISSUED", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)
		approveAll(t, request)

		_, err := request.IssueMaterials([]IssueLine{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(10)},
		})
		require.NoError(t, err)
		assert.Equal(t, RequestStatusIssued, request.Status)
	})

	t.Run("over-issue fails with no partial effect", func(t *testing.T) {
		request := newTestRequest(t)
		itemA := addTestItem(t, request, 10)
		itemB, err := request.AddItem(uuid.New(), "Salt", "SALT-01", "kg", decimal.NewFromInt(5))
		require.NoError(t, err)
		approveAll(t, request)

		_, err = request.IssueMaterials([]IssueLine{
			{ItemID: itemA.ID, Quantity: decimal.NewFromInt(3)},
			{ItemID: itemB.ID, Quantity: decimal.NewFromInt(6)},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
		// The repository never persists the failed aggregate; status stays APPROVED
		assert.Equal(t, RequestStatusApproved, request.Status)
	})

	t.Run("not allowed in PENDING", func(t *testing.T) {
		request := newTestRequest(t)
		item := addTestItem(t, request, 10)

		_, err := request.IssueMaterials([]IssueLine{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(1)},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("unknown item fails", func(t *testing.T) {
		request := newTestRequest(t)
		addTestItem(t, request, 10)
		approveAll(t, request)

		_, err := request.IssueMaterials([]IssueLine{
			{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		})
		assert.Error(t, err)
	})
}

func TestStockRequest_ReceiveMaterials(t *testing.T) {
	request := newTestRequest(t)
	item := addTestItem(t, request, 10)
	approveAll(t, request)

	_, err := request.IssueMaterials([]IssueLine{
		{ItemID: item.ID, Quantity: decimal.NewFromInt(6)},
	})
	require.NoError(t, err)

	t.Run("receive within issued quantity", func(t *testing.T) {
		_, err := request.ReceiveMaterials([]ReceiveLine{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(4)},
		})
		require.NoError(t, err)
		assert.True(t, request.GetItem(item.ID).OutstandingQuantity().Equal(decimal.NewFromInt(2)))
		// Receiving never changes the lifecycle status
		assert.Equal(t, RequestStatusPartiallyIssued, request.Status)
	})

	t.Run("over-receive fails", func(t *testing.T) {
		_, err := request.ReceiveMaterials([]ReceiveLine{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(3)},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
	})
}

func TestStockRequest_Reject(t *testing.T) {
	t.Run("rejects pending request", func(t *testing.T) {
		request := newTestRequest(t)
		addTestItem(t, request, 10)

		require.NoError(t, request.Reject("budget freeze"))
		assert.Equal(t, RequestStatusRejected, request.Status)
		assert.Equal(t, "budget freeze", request.RejectReason)
		assert.NotNil(t, request.RejectedAt)
		assert.True(t, request.IsTerminal())
	})

	t.Run("cannot reject approved request", func(t *testing.T) {
		request := newTestRequest(t)
		addTestItem(t, request, 10)
		approveAll(t, request)

		err := request.Reject("too late")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("requires a reason", func(t *testing.T) {
		request := newTestRequest(t)
		addTestItem(t, request, 10)
		assert.Error(t, request.Reject(""))
	})
}

func TestStockRequest_Close(t *testing.T) {
	request := newTestRequest(t)
	item := addTestItem(t, request, 10)
	approveAll(t, request)

	_, err := request.IssueMaterials([]IssueLine{
		{ItemID: item.ID, Quantity: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	require.Equal(t, RequestStatusIssued, request.Status)

	t.Run("cannot close before full receipt", func(t *testing.T) {
		err := request.Close()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("closes once everything is received", func(t *testing.T) {
		_, err := request.ReceiveMaterials([]ReceiveLine{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(10)},
		})
		require.NoError(t, err)

		require.NoError(t, request.Close())
		assert.Equal(t, RequestStatusClosed, request.Status)
		assert.NotNil(t, request.ClosedAt)
		assert.True(t, request.IsTerminal())
	})
}

func TestStockRequest_CanDelete(t *testing.T) {
	request := newTestRequest(t)
	addTestItem(t, request, 10)
	assert.True(t, request.CanDelete())

	approveAll(t, request)
	assert.False(t, request.CanDelete())

	rejected := newTestRequest(t)
	addTestItem(t, rejected, 5)
	require.NoError(t, rejected.Reject("duplicate of an earlier request"))
	assert.True(t, rejected.CanDelete())
}

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from   RequestStatus
		to     RequestStatus
		expect bool
	}{
		{RequestStatusPending, RequestStatusApproved, true},
		{RequestStatusPending, RequestStatusRejected, true},
		{RequestStatusPending, RequestStatusIssued, false},
		{RequestStatusApproved, RequestStatusApproved, true},
		{RequestStatusApproved, RequestStatusPartiallyIssued, true},
		{RequestStatusApproved, RequestStatusIssued, true},
		{RequestStatusApproved, RequestStatusRejected, false},
		{RequestStatusPartiallyIssued, RequestStatusIssued, true},
		{RequestStatusPartiallyIssued, RequestStatusClosed, false},
		{RequestStatusIssued, RequestStatusClosed, true},
		{RequestStatusRejected, RequestStatusApproved, false},
		{RequestStatusClosed, RequestStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestItem_QuantityInvariant(t *testing.T) {
	item, err := NewRequestItem(uuid.New(), uuid.New(), "Fish Feed 3mm", "FEED-3MM", "kg", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, item.SetApprovedQuantity(decimal.NewFromInt(8)))
	require.NoError(t, item.AddIssuedQuantity(decimal.NewFromInt(5), ""))
	require.NoError(t, item.AddReceivedQuantity(decimal.NewFromInt(3)))

	// received <= issued <= approved holds after every mutation
	assert.True(t, item.ReceivedQuantity.LessThanOrEqual(item.IssuedQuantity))
	assert.True(t, item.IssuedQuantity.LessThanOrEqual(item.ApprovedQuantity))

	// approved cannot drop below issued
	err = item.SetApprovedQuantity(decimal.NewFromInt(4))
	assert.Error(t, err)

	assert.True(t, item.RemainingQuantity().Equal(decimal.NewFromInt(3)))
	assert.True(t, item.OutstandingQuantity().Equal(decimal.NewFromInt(2)))
}
