package medication

import (
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeMedicationRecord = "MedicationRecord"

// Event type constants
const (
	EventTypeMedicationRecordCreated = "MedicationRecordCreated"
	EventTypeMedicationRecordUpdated = "MedicationRecordUpdated"
	EventTypeMedicationRecordDeleted = "MedicationRecordDeleted"
)

// MedicationRecordEvent is the shared payload for medication record events
type MedicationRecordEvent struct {
	shared.BaseDomainEvent
	RecordID       uuid.UUID `json:"record_id"`
	SiteID         uuid.UUID `json:"site_id"`
	BatchLabel     string    `json:"batch_label"`
	Stage          Stage     `json:"stage"`
	MedicationName string    `json:"medication_name"`
}

func newRecordEvent(eventType string, record *MedicationRecord) *MedicationRecordEvent {
	return &MedicationRecordEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeMedicationRecord, record.ID),
		RecordID:        record.ID,
		SiteID:          record.SiteID,
		BatchLabel:      record.BatchLabel,
		Stage:           record.Stage,
		MedicationName:  record.MedicationName,
	}
}

// NewMedicationRecordCreatedEvent creates a record created event
func NewMedicationRecordCreatedEvent(record *MedicationRecord) *MedicationRecordEvent {
	return newRecordEvent(EventTypeMedicationRecordCreated, record)
}

// NewMedicationRecordUpdatedEvent creates a record updated event
func NewMedicationRecordUpdatedEvent(record *MedicationRecord) *MedicationRecordEvent {
	return newRecordEvent(EventTypeMedicationRecordUpdated, record)
}

// NewMedicationRecordDeletedEvent creates a record deleted event
func NewMedicationRecordDeletedEvent(record *MedicationRecord) *MedicationRecordEvent {
	return newRecordEvent(EventTypeMedicationRecordDeleted, record)
}
