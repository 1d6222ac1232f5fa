package medication

import (
	"context"
	"testing"
	"time"

	"github.com/farmstock/backend/internal/domain/medication"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMedicationRecordRepository is a mock implementation of MedicationRecordRepository
type MockMedicationRecordRepository struct {
	mock.Mock
}

func (m *MockMedicationRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*medication.MedicationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medication.MedicationRecord), args.Error(1)
}

func (m *MockMedicationRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]medication.MedicationRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]medication.MedicationRecord), args.Error(1)
}

func (m *MockMedicationRecordRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]medication.MedicationRecord, error) {
	args := m.Called(ctx, siteID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]medication.MedicationRecord), args.Error(1)
}

func (m *MockMedicationRecordRepository) Save(ctx context.Context, record *medication.MedicationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMedicationRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMedicationRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func testActor(t *testing.T) valueobject.Actor {
	t.Helper()
	actor, err := valueobject.NewActor(valueobject.ActorKindEmployee, uuid.New())
	require.NoError(t, err)
	return actor
}

func newTestRecord(t *testing.T) *medication.MedicationRecord {
	t.Helper()
	record, err := medication.NewMedicationRecord(
		uuid.New(),
		"B-2026-03",
		medication.StageFish,
		"Oxytetracycline",
		decimal.NewFromFloat(2.5),
		"mg/L",
		time.Now(),
		testActor(t),
		"",
	)
	require.NoError(t, err)
	record.ClearDomainEvents()
	return record
}

func TestRecordService_CreateRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a record", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*medication.MedicationRecord")).Return(nil)

		result, err := service.CreateRecord(ctx, testActor(t), CreateRecordRequest{
			SiteID:         uuid.New(),
			BatchLabel:     "B-2026-03",
			Stage:          "EGG",
			MedicationName: "Formalin",
			Dosage:         decimal.NewFromInt(100),
			Unit:           "ppm",
			AdministeredAt: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, "EGG", result.Stage)
		assert.Equal(t, "Formalin", result.MedicationName)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown stage", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)

		_, err := service.CreateRecord(ctx, testActor(t), CreateRecordRequest{
			SiteID:         uuid.New(),
			BatchLabel:     "B-2026-03",
			Stage:          "LARVA",
			MedicationName: "Formalin",
			Dosage:         decimal.NewFromInt(100),
			Unit:           "ppm",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STAGE", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-positive dosage", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)

		_, err := service.CreateRecord(ctx, testActor(t), CreateRecordRequest{
			SiteID:         uuid.New(),
			BatchLabel:     "B-2026-03",
			Stage:          "FISH",
			MedicationName: "Formalin",
			Dosage:         decimal.Zero,
			Unit:           "ppm",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DOSAGE", domainErr.Code)
	})
}

func TestRecordService_UpdateRecord(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMedicationRecordRepository)
	service := NewRecordService(repo)
	record := newTestRecord(t)

	repo.On("FindByID", ctx, record.ID).Return(record, nil)
	repo.On("Save", ctx, record).Return(nil)

	result, err := service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{
		BatchLabel:     "B-2026-04",
		Stage:          "FISH",
		MedicationName: "Oxytetracycline",
		Dosage:         decimal.NewFromInt(3),
		Unit:           "mg/L",
		AdministeredAt: time.Now(),
		Notes:          "second round",
	})
	require.NoError(t, err)
	assert.Equal(t, "B-2026-04", result.BatchLabel)
	assert.Equal(t, "second round", result.Notes)
	repo.AssertExpectations(t)
}

func TestRecordService_DeleteRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing record", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)
		record := newTestRecord(t)

		repo.On("FindByID", ctx, record.ID).Return(record, nil)
		repo.On("Delete", ctx, record.ID).Return(nil)

		require.NoError(t, service.DeleteRecord(ctx, record.ID))
		repo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := service.DeleteRecord(ctx, id)
		require.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestRecordService_ListRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by site and stage", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)
		record := newTestRecord(t)
		siteID := record.SiteID
		stage := "FISH"

		expected := shared.DefaultFilter()
		expected.Filters["site_id"] = siteID
		expected.Filters["stage"] = "FISH"

		repo.On("FindAll", ctx, expected).Return([]medication.MedicationRecord{*record}, nil)
		repo.On("Count", ctx, expected).Return(int64(1), nil)

		result, err := service.ListRecords(ctx, RecordListFilter{SiteID: &siteID, Stage: &stage})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, record.ID, result.Items[0].ID)
	})

	t.Run("rejects an unknown stage filter", func(t *testing.T) {
		repo := new(MockMedicationRecordRepository)
		service := NewRecordService(repo)
		stage := "TADPOLE"

		_, err := service.ListRecords(ctx, RecordListFilter{Stage: &stage})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STAGE", domainErr.Code)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}
