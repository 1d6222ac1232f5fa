package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The sqlite-backed tests cannot observe dialect-specific SQL, so the
// locking behavior is checked against a mocked postgres connection.
func newMockStockItemRepository(t *testing.T) (*GormStockItemRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockItemRepository(gormDB), mock, mockDB
}

func TestGormStockItemRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	repo, mock, mockDB := newMockStockItemRepository(t)
	defer mockDB.Close()

	itemID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "version", "sku", "name", "unit", "quantity", "min_quantity"}).
		AddRow(itemID, 1, "FEED-3MM", "Fish Feed 3mm", "kg", decimal.NewFromInt(100), decimal.NewFromInt(10))

	mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(itemID, 1).
		WillReturnRows(rows)

	item, err := repo.FindByIDForUpdate(context.Background(), itemID)

	require.NoError(t, err)
	assert.Equal(t, itemID, item.ID)
	assert.Equal(t, "FEED-3MM", item.SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockItemRepository_FindByIDForUpdate_NotFound(t *testing.T) {
	repo, mock, mockDB := newMockStockItemRepository(t)
	defer mockDB.Close()

	itemID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(itemID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.FindByIDForUpdate(context.Background(), itemID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockItemRepository_SaveWithLock_VersionConflictMock(t *testing.T) {
	repo, mock, mockDB := newMockStockItemRepository(t)
	defer mockDB.Close()

	item, err := inventory.NewStockItem("FEED-3MM", "Fish Feed 3mm", uuid.New(), uuid.New(), "kg")
	require.NoError(t, err)
	item.Version = 1

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "version" FROM "stock_items" WHERE id = \$1`).
		WithArgs(item.ID).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
	mock.ExpectRollback()

	err = repo.SaveWithLock(context.Background(), item)

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockItemRepository_SaveWithLock_MissingRow(t *testing.T) {
	repo, mock, mockDB := newMockStockItemRepository(t)
	defer mockDB.Close()

	item, err := inventory.NewStockItem("FEED-3MM", "Fish Feed 3mm", uuid.New(), uuid.New(), "kg")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "version" FROM "stock_items" WHERE id = \$1`).
		WithArgs(item.ID).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectRollback()

	err = repo.SaveWithLock(context.Background(), item)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
