package event

import (
	"github.com/farmstock/backend/internal/domain/catalog"
	"github.com/farmstock/backend/internal/domain/identity"
	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/medication"
	"github.com/farmstock/backend/internal/domain/partner"
	"github.com/farmstock/backend/internal/domain/requisition"
)

// RegisterAllEvents registers every domain event type with the serializer.
// The outbox processor needs this to deserialize events from the outbox table.
func RegisterAllEvents(serializer *EventSerializer) {
	// Requisition events
	serializer.Register(requisition.EventTypeStockRequestCreated, &requisition.StockRequestCreatedEvent{})
	serializer.Register(requisition.EventTypeStockRequestApproved, &requisition.StockRequestApprovedEvent{})
	serializer.Register(requisition.EventTypeStockRequestRejected, &requisition.StockRequestRejectedEvent{})
	serializer.Register(requisition.EventTypeStockRequestClosed, &requisition.StockRequestClosedEvent{})
	serializer.Register(requisition.EventTypeMaterialsIssued, &requisition.MaterialsIssuedEvent{})
	serializer.Register(requisition.EventTypeMaterialsReceived, &requisition.MaterialsReceivedEvent{})

	// Inventory events
	serializer.Register(inventory.EventTypeStockItemCreated, &inventory.StockItemCreatedEvent{})
	serializer.Register(inventory.EventTypeStockItemUpdated, &inventory.StockItemUpdatedEvent{})
	serializer.Register(inventory.EventTypeStockItemDeleted, &inventory.StockItemDeletedEvent{})
	serializer.Register(inventory.EventTypeStockRestocked, &inventory.StockRestockedEvent{})
	serializer.Register(inventory.EventTypeStockDeducted, &inventory.StockDeductedEvent{})
	serializer.Register(inventory.EventTypeStockBelowMinimum, &inventory.StockBelowMinimumEvent{})

	// Catalog events
	serializer.Register(catalog.EventTypeStockCategoryCreated, &catalog.StockCategoryCreatedEvent{})
	serializer.Register(catalog.EventTypeStockCategoryUpdated, &catalog.StockCategoryUpdatedEvent{})
	serializer.Register(catalog.EventTypeStockCategoryDeleted, &catalog.StockCategoryDeletedEvent{})

	// Partner events
	serializer.Register(partner.EventTypeStoreCreated, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeStoreUpdated, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeStoreDeleted, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeSiteCreated, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeSiteUpdated, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeSiteDeleted, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeClientCreated, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeClientUpdated, &partner.PartnerEvent{})
	serializer.Register(partner.EventTypeClientDeleted, &partner.PartnerEvent{})

	// Medication events
	serializer.Register(medication.EventTypeMedicationRecordCreated, &medication.MedicationRecordEvent{})
	serializer.Register(medication.EventTypeMedicationRecordUpdated, &medication.MedicationRecordEvent{})
	serializer.Register(medication.EventTypeMedicationRecordDeleted, &medication.MedicationRecordEvent{})

	// Identity events
	serializer.Register(identity.EventTypeUserCreated, &identity.UserCreatedEvent{})
	serializer.Register(identity.EventTypeUserDeactivated, &identity.UserDeactivatedEvent{})
	serializer.Register(identity.EventTypeUserPasswordChanged, &identity.UserPasswordChangedEvent{})
}
