package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockRequestRepository implements StockRequestRepository using GORM
type GormStockRequestRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormStockRequestRepository creates a new GormStockRequestRepository
func NewGormStockRequestRepository(db *gorm.DB) *GormStockRequestRepository {
	return &GormStockRequestRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormStockRequestRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a stock request by its ID
func (r *GormStockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*requisition.StockRequest, error) {
	var request requisition.StockRequest
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByRequestNumber finds a stock request by its request number
func (r *GormStockRequestRepository) FindByRequestNumber(ctx context.Context, requestNumber string) (*requisition.StockRequest, error) {
	var request requisition.StockRequest
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("request_number = ?", requestNumber).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll finds stock requests with filtering
func (r *GormStockRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]requisition.StockRequest, error) {
	query := r.db.WithContext(ctx).Model(&requisition.StockRequest{})
	query = r.applyFilter(query, filter)

	var requests []requisition.StockRequest
	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindBySite finds stock requests for a site
func (r *GormStockRequestRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]requisition.StockRequest, error) {
	query := r.db.WithContext(ctx).Model(&requisition.StockRequest{}).
		Where("site_id = ?", siteID)
	query = r.applyFilter(query, filter)

	var requests []requisition.StockRequest
	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByRequester finds stock requests submitted by a specific actor
func (r *GormStockRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID, filter shared.Filter) ([]requisition.StockRequest, error) {
	query := r.db.WithContext(ctx).Model(&requisition.StockRequest{}).
		Where("requester_id = ?", requesterID)
	query = r.applyFilter(query, filter)

	var requests []requisition.StockRequest
	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByStatus finds stock requests by status
func (r *GormStockRequestRepository) FindByStatus(ctx context.Context, status requisition.RequestStatus, filter shared.Filter) ([]requisition.StockRequest, error) {
	query := r.db.WithContext(ctx).Model(&requisition.StockRequest{}).
		Where("status = ?", status)
	query = r.applyFilter(query, filter)

	var requests []requisition.StockRequest
	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a stock request and reconciles its items
func (r *GormStockRequestRepository) Save(ctx context.Context, request *requisition.StockRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(request).Error; err != nil {
			return err
		}
		return r.saveItems(tx, request)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormStockRequestRepository) SaveWithLock(ctx context.Context, request *requisition.StockRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithLockTx(tx, request)
	})
}

// SaveWithLockAndEvents saves with optimistic locking and persists domain events
// to the outbox in the same transaction, guaranteeing event delivery
func (r *GormStockRequestRepository) SaveWithLockAndEvents(ctx context.Context, request *requisition.StockRequest, events []shared.DomainEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveWithLockTx(tx, request); err != nil {
			return err
		}
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}
		return nil
	})
}

// saveWithLockTx performs the version-checked update within an open transaction
func (r *GormStockRequestRepository) saveWithLockTx(tx *gorm.DB, request *requisition.StockRequest) error {
	var currentVersion int
	if err := tx.Model(&requisition.StockRequest{}).
		Where("id = ?", request.ID).
		Select("version").
		Scan(&currentVersion).Error; err != nil {
		return err
	}
	if currentVersion == 0 {
		return shared.ErrNotFound
	}
	if currentVersion != request.Version {
		return shared.ErrConcurrencyConflict
	}

	request.Version++
	request.UpdatedAt = time.Now()

	result := tx.Model(&requisition.StockRequest{}).
		Where("id = ? AND version = ?", request.ID, currentVersion).
		Updates(map[string]interface{}{
			"site_id":        request.SiteID,
			"requester_kind": request.RequesterKind,
			"requester_id":   request.RequesterID,
			"status":         request.Status,
			"notes":          request.Notes,
			"review_comment": request.ReviewComment,
			"reject_reason":  request.RejectReason,
			"approved_at":    request.ApprovedAt,
			"rejected_at":    request.RejectedAt,
			"closed_at":      request.ClosedAt,
			"version":        request.Version,
			"updated_at":     request.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	return r.saveItems(tx, request)
}

// saveItems deletes removed items and saves or updates the remaining ones
func (r *GormStockRequestRepository) saveItems(tx *gorm.DB, request *requisition.StockRequest) error {
	currentItemIDs := make([]uuid.UUID, len(request.Items))
	for i, item := range request.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("request_id = ? AND id NOT IN ?", request.ID, currentItemIDs).
			Delete(&requisition.RequestItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("request_id = ?", request.ID).
			Delete(&requisition.RequestItem{}).Error; err != nil {
			return err
		}
	}

	for i := range request.Items {
		request.Items[i].RequestID = request.ID
		if err := tx.Save(&request.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete hard-deletes a stock request and its items
func (r *GormStockRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&requisition.RequestItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&requisition.StockRequest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts stock requests matching the filter
func (r *GormStockRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&requisition.StockRequest{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts stock requests in the given status
func (r *GormStockRequestRepository) CountByStatus(ctx context.Context, status requisition.RequestStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&requisition.StockRequest{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByStockItem checks if any request item references a stock item
func (r *GormStockRequestRepository) ExistsByStockItem(ctx context.Context, stockItemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&requisition.RequestItem{}).
		Where("stock_item_id = ?", stockItemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateRequestNumber generates a unique request number.
// Format: REQ-YYYY-NNNNN (e.g., REQ-2026-00001)
func (r *GormStockRequestRepository) GenerateRequestNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("REQ-%d-", year)

	var lastRequest requisition.StockRequest
	err := r.db.WithContext(ctx).
		Where("request_number LIKE ?", prefix+"%").
		Order("request_number DESC").
		First(&lastRequest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastRequest.RequestNumber != "" {
		parts := strings.Split(lastRequest.RequestNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	requestNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness; step forward on collision
	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&requisition.StockRequest{}).
			Where("request_number = ?", requestNumber).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			break
		}
		nextNum++
		requestNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
	}

	return requestNumber, nil
}

// applyFilter applies filter options to the query
func (r *GormStockRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Whitelist validation prevents SQL injection through sort parameters
	sortField := ValidateSortField(filter.OrderBy, StockRequestSortFields, "")
	if sortField != "" {
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("request_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "requester_id":
			query = query.Where("requester_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormStockRequestRepository implements StockRequestRepository
var _ requisition.StockRequestRepository = (*GormStockRequestRepository)(nil)
