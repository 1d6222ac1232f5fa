package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/farmstock/backend/internal/domain/medication"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMedicationRecordRepository implements MedicationRecordRepository using GORM
type GormMedicationRecordRepository struct {
	db *gorm.DB
}

// NewGormMedicationRecordRepository creates a new GormMedicationRecordRepository
func NewGormMedicationRecordRepository(db *gorm.DB) *GormMedicationRecordRepository {
	return &GormMedicationRecordRepository{db: db}
}

// FindByID finds a record by ID
func (r *GormMedicationRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*medication.MedicationRecord, error) {
	var record medication.MedicationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds records with filtering
func (r *GormMedicationRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]medication.MedicationRecord, error) {
	query := r.db.WithContext(ctx).Model(&medication.MedicationRecord{})
	query = r.applyFilter(query, filter)

	var records []medication.MedicationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBySite finds records for a site
func (r *GormMedicationRecordRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]medication.MedicationRecord, error) {
	query := r.db.WithContext(ctx).Model(&medication.MedicationRecord{}).
		Where("site_id = ?", siteID)
	query = r.applyFilter(query, filter)

	var records []medication.MedicationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a record
func (r *GormMedicationRecordRepository) Save(ctx context.Context, record *medication.MedicationRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete hard-deletes a record
func (r *GormMedicationRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&medication.MedicationRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts records matching the filter
func (r *GormMedicationRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&medication.MedicationRecord{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormMedicationRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, MedicationRecordSortFields, "")
	if sortField != "" {
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("administered_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMedicationRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("batch_label ILIKE ? OR medication_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "stage":
			query = query.Where("stage = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("administered_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("administered_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormMedicationRecordRepository implements MedicationRecordRepository
var _ medication.MedicationRecordRepository = (*GormMedicationRecordRepository)(nil)
