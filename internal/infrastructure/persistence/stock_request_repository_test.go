package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func testRequester(t *testing.T) valueobject.Actor {
	t.Helper()
	actor, err := valueobject.NewActor(valueobject.ActorKindEmployee, uuid.New())
	require.NoError(t, err)
	return actor
}

func newTestRequest(t *testing.T, requestNumber string) *requisition.StockRequest {
	t.Helper()
	request, err := requisition.NewStockRequest(requestNumber, uuid.New(), testRequester(t), "weekly feed run")
	require.NoError(t, err)
	_, err = request.AddItem(uuid.New(), "Fish Feed 3mm", "FEED-3MM", "kg", decimal.NewFromInt(40))
	require.NoError(t, err)
	return request
}

func TestGormStockRequestRepository_SaveAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	require.NoError(t, repo.Save(ctx, request))

	found, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "REQ-2026-00001", found.RequestNumber)
	assert.Equal(t, requisition.RequestStatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "FEED-3MM", found.Items[0].StockItemSKU)
	assert.True(t, found.Items[0].RequestedQuantity.Equal(decimal.NewFromInt(40)))
}

func TestGormStockRequestRepository_FindByRequestNumber_NotFound(t *testing.T) {
	repo := NewGormStockRequestRepository(newTestDB(t))

	_, err := repo.FindByRequestNumber(context.Background(), "REQ-2026-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStockRequestRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	require.NoError(t, repo.Save(ctx, request))

	request.Notes = "urgent"
	require.NoError(t, repo.SaveWithLock(ctx, request))
	assert.Equal(t, 2, request.Version)

	found, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "urgent", found.Notes)
	assert.Equal(t, 2, found.Version)
}

func TestGormStockRequestRepository_SaveWithLock_VersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	require.NoError(t, repo.Save(ctx, request))

	stale, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)

	// First writer wins
	request.Notes = "first writer"
	require.NoError(t, repo.SaveWithLock(ctx, request))

	stale.Notes = "second writer"
	err = repo.SaveWithLock(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestGormStockRequestRepository_SaveWithLock_MissingRequest(t *testing.T) {
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	err := repo.SaveWithLock(context.Background(), request)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStockRequestRepository_SaveWithLock_RemovesDroppedItems(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	_, err := request.AddItem(uuid.New(), "Formalin 37%", "MED-FORM", "L", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, request))

	request.Items = request.Items[:1]
	require.NoError(t, repo.SaveWithLock(ctx, request))

	found, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "FEED-3MM", found.Items[0].StockItemSKU)
}

func TestGormStockRequestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	require.NoError(t, repo.Save(ctx, request))
	stockItemID := request.Items[0].StockItemID

	require.NoError(t, repo.Delete(ctx, request.ID))

	_, err := repo.FindByID(ctx, request.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Items are removed with the request
	exists, err := repo.ExistsByStockItem(ctx, stockItemID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormStockRequestRepository_FindBySiteAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	first := newTestRequest(t, "REQ-2026-00001")
	second := newTestRequest(t, "REQ-2026-00002")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	bySite, err := repo.FindBySite(ctx, first.SiteID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, bySite, 1)
	assert.Equal(t, first.RequestNumber, bySite[0].RequestNumber)

	pending, err := repo.FindByStatus(ctx, requisition.RequestStatusPending, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	count, err := repo.CountByStatus(ctx, requisition.RequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByStatus(ctx, requisition.RequestStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGormStockRequestRepository_FilterByRequester(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	require.NoError(t, repo.Save(ctx, request))

	mine, err := repo.FindByRequester(ctx, request.RequesterID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := repo.FindByRequester(ctx, uuid.New(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestGormStockRequestRepository_FilterByDateRange(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	request := newTestRequest(t, "REQ-2026-00001")
	require.NoError(t, repo.Save(ctx, request))

	filter := shared.DefaultFilter()
	filter.Filters = map[string]interface{}{
		"start_date": time.Now().Add(-time.Hour),
		"end_date":   time.Now().Add(time.Hour),
	}
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	filter.Filters = map[string]interface{}{
		"end_date": time.Now().Add(-time.Hour),
	}
	found, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormStockRequestRepository_GenerateRequestNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewGormStockRequestRepository(newTestDB(t))

	year := time.Now().Year()
	first, err := repo.GenerateRequestNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("REQ-%d-00001", year), first)

	request := newTestRequest(t, first)
	require.NoError(t, repo.Save(ctx, request))

	second, err := repo.GenerateRequestNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("REQ-%d-00002", year), second)
}
