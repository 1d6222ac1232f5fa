package medication

import (
	"time"

	"github.com/farmstock/backend/internal/domain/medication"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRecordRequest is the payload for creating a medication record
type CreateRecordRequest struct {
	SiteID         uuid.UUID       `json:"site_id" binding:"required"`
	BatchLabel     string          `json:"batch_label" binding:"required,max=100"`
	Stage          string          `json:"stage" binding:"required,oneof=EGG FISH"`
	MedicationName string          `json:"medication_name" binding:"required,max=200"`
	Dosage         decimal.Decimal `json:"dosage" binding:"required"`
	Unit           string          `json:"unit" binding:"required,max=20"`
	AdministeredAt time.Time       `json:"administered_at"`
	Notes          string          `json:"notes" binding:"max=500"`
}

// UpdateRecordRequest is the payload for updating a medication record
type UpdateRecordRequest struct {
	BatchLabel     string          `json:"batch_label" binding:"required,max=100"`
	Stage          string          `json:"stage" binding:"required,oneof=EGG FISH"`
	MedicationName string          `json:"medication_name" binding:"required,max=200"`
	Dosage         decimal.Decimal `json:"dosage" binding:"required"`
	Unit           string          `json:"unit" binding:"required,max=20"`
	AdministeredAt time.Time       `json:"administered_at"`
	Notes          string          `json:"notes" binding:"max=500"`
}

// RecordListFilter is the query filter for listing medication records
type RecordListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
	Search   string     `form:"search"`
	SiteID   *uuid.UUID `form:"site_id"`
	Stage    *string    `form:"stage"`
}

// RecordResponse is the representation of a medication record
type RecordResponse struct {
	ID                 uuid.UUID       `json:"id"`
	SiteID             uuid.UUID       `json:"site_id"`
	BatchLabel         string          `json:"batch_label"`
	Stage              string          `json:"stage"`
	MedicationName     string          `json:"medication_name"`
	Dosage             decimal.Decimal `json:"dosage"`
	Unit               string          `json:"unit"`
	AdministeredAt     time.Time       `json:"administered_at"`
	AdministeredByKind string          `json:"administered_by_kind"`
	AdministeredByID   uuid.UUID       `json:"administered_by_id"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToRecordResponse maps a domain record to its response DTO
func ToRecordResponse(record *medication.MedicationRecord) RecordResponse {
	return RecordResponse{
		ID:                 record.ID,
		SiteID:             record.SiteID,
		BatchLabel:         record.BatchLabel,
		Stage:              record.Stage.String(),
		MedicationName:     record.MedicationName,
		Dosage:             record.Dosage,
		Unit:               record.Unit,
		AdministeredAt:     record.AdministeredAt,
		AdministeredByKind: record.AdministeredByKind,
		AdministeredByID:   record.AdministeredByID,
		Notes:              record.Notes,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}

// ToRecordResponses maps domain records to response DTOs
func ToRecordResponses(records []medication.MedicationRecord) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}
