package medication

import (
	"context"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MedicationRecordRepository defines persistence operations for medication records
type MedicationRecordRepository interface {
	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MedicationRecord, error)

	// FindAll finds records with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]MedicationRecord, error)

	// FindBySite finds records for a site
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]MedicationRecord, error)

	// Save creates or updates a record
	Save(ctx context.Context, record *MedicationRecord) error

	// Delete hard-deletes a record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
