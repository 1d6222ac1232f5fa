package medication

import (
	"context"

	"github.com/farmstock/backend/internal/domain/medication"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RecordService handles medication record operations
type RecordService struct {
	recordRepo     medication.MedicationRecordRepository
	eventPublisher shared.EventPublisher
}

// NewRecordService creates a new medication record service
func NewRecordService(recordRepo medication.MedicationRecordRepository) *RecordService {
	return &RecordService{recordRepo: recordRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *RecordService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRecord creates a new medication record
func (s *RecordService) CreateRecord(ctx context.Context, administeredBy valueobject.Actor, req CreateRecordRequest) (*RecordResponse, error) {
	record, err := medication.NewMedicationRecord(
		req.SiteID,
		req.BatchLabel,
		medication.Stage(req.Stage),
		req.MedicationName,
		req.Dosage,
		req.Unit,
		req.AdministeredAt,
		administeredBy,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	events := record.GetDomainEvents()
	record.ClearDomainEvents()

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToRecordResponse(record)
	return &response, nil
}

// GetRecord retrieves a medication record by ID
func (s *RecordService) GetRecord(ctx context.Context, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// ListRecords lists medication records with pagination and filtering
func (s *RecordService) ListRecords(ctx context.Context, filter RecordListFilter) (*shared.Paginated[RecordResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.SiteID != nil {
		domainFilter.Filters["site_id"] = *filter.SiteID
	}
	if filter.Stage != nil {
		stage := medication.Stage(*filter.Stage)
		if !stage.IsValid() {
			return nil, shared.NewDomainError("INVALID_STAGE", "Stage must be EGG or FISH")
		}
		domainFilter.Filters["stage"] = stage.String()
	}

	records, err := s.recordRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.recordRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToRecordResponses(records), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateRecord updates a medication record
func (s *RecordService) UpdateRecord(ctx context.Context, id uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := record.Update(
		req.BatchLabel,
		medication.Stage(req.Stage),
		req.MedicationName,
		req.Dosage,
		req.Unit,
		req.AdministeredAt,
		req.Notes,
	); err != nil {
		return nil, err
	}

	events := record.GetDomainEvents()
	record.ClearDomainEvents()

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToRecordResponse(record)
	return &response, nil
}

// DeleteRecord hard-deletes a medication record
func (s *RecordService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, []shared.DomainEvent{medication.NewMedicationRecordDeletedEvent(record)})
	return nil
}

func (s *RecordService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
