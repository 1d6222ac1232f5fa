package medication

import (
	"strings"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stage identifies which production stage a medication was applied to
type Stage string

const (
	StageEgg  Stage = "EGG"
	StageFish Stage = "FISH"
)

// IsValid checks if the stage is valid
func (s Stage) IsValid() bool {
	return s == StageEgg || s == StageFish
}

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// MedicationRecord represents a medication applied to an egg or fish batch at a site
type MedicationRecord struct {
	shared.BaseAggregateRoot
	SiteID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchLabel         string          `gorm:"type:varchar(100);not null"`
	Stage              Stage           `gorm:"type:varchar(10);not null"`
	MedicationName     string          `gorm:"type:varchar(200);not null"`
	Dosage             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit               string          `gorm:"type:varchar(20);not null"`
	AdministeredAt     time.Time       `gorm:"not null;index"`
	AdministeredByKind string          `gorm:"type:varchar(20);not null"`
	AdministeredByID   uuid.UUID       `gorm:"type:uuid;not null"`
	Notes              string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MedicationRecord) TableName() string {
	return "medication_records"
}

// NewMedicationRecord creates a new medication record
func NewMedicationRecord(siteID uuid.UUID, batchLabel string, stage Stage, medicationName string, dosage decimal.Decimal, unit string, administeredAt time.Time, administeredBy valueobject.Actor, notes string) (*MedicationRecord, error) {
	batchLabel = strings.TrimSpace(batchLabel)
	medicationName = strings.TrimSpace(medicationName)
	unit = strings.TrimSpace(unit)

	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if batchLabel == "" {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch label cannot be empty")
	}
	if !stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Stage must be EGG or FISH")
	}
	if medicationName == "" {
		return nil, shared.NewDomainError("INVALID_MEDICATION", "Medication name cannot be empty")
	}
	if dosage.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_DOSAGE", "Dosage must be positive")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if administeredBy.IsZero() {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Administering actor cannot be empty")
	}
	if administeredAt.IsZero() {
		administeredAt = time.Now()
	}

	record := &MedicationRecord{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		SiteID:             siteID,
		BatchLabel:         batchLabel,
		Stage:              stage,
		MedicationName:     medicationName,
		Dosage:             dosage,
		Unit:               unit,
		AdministeredAt:     administeredAt,
		AdministeredByKind: string(administeredBy.Kind()),
		AdministeredByID:   administeredBy.UserID(),
		Notes:              notes,
	}

	record.AddDomainEvent(NewMedicationRecordCreatedEvent(record))

	return record, nil
}

// Update updates the record's details
func (r *MedicationRecord) Update(batchLabel string, stage Stage, medicationName string, dosage decimal.Decimal, unit string, administeredAt time.Time, notes string) error {
	batchLabel = strings.TrimSpace(batchLabel)
	medicationName = strings.TrimSpace(medicationName)
	unit = strings.TrimSpace(unit)

	if batchLabel == "" {
		return shared.NewDomainError("INVALID_BATCH", "Batch label cannot be empty")
	}
	if !stage.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Stage must be EGG or FISH")
	}
	if medicationName == "" {
		return shared.NewDomainError("INVALID_MEDICATION", "Medication name cannot be empty")
	}
	if dosage.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_DOSAGE", "Dosage must be positive")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	r.BatchLabel = batchLabel
	r.Stage = stage
	r.MedicationName = medicationName
	r.Dosage = dosage
	r.Unit = unit
	if !administeredAt.IsZero() {
		r.AdministeredAt = administeredAt
	}
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewMedicationRecordUpdatedEvent(r))

	return nil
}

// AdministeredBy returns the actor who administered the medication
func (r *MedicationRecord) AdministeredBy() valueobject.Actor {
	actor, _ := valueobject.NewActor(valueobject.ActorKind(r.AdministeredByKind), r.AdministeredByID)
	return actor
}
