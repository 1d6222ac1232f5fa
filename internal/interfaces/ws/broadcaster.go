package ws

import (
	"context"

	"github.com/farmstock/backend/internal/domain/catalog"
	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/medication"
	"github.com/farmstock/backend/internal/domain/partner"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// route pairs the topic a domain event belongs to with its client-facing name
type route struct {
	Topic string
	Event string
}

// eventRoutes maps domain event types to websocket topics and event names
var eventRoutes = map[string]route{
	requisition.EventTypeStockRequestCreated:  {TopicStockRequests, "requestCreated"},
	requisition.EventTypeStockRequestApproved: {TopicStockRequests, "requestApproved"},
	requisition.EventTypeStockRequestRejected: {TopicStockRequests, "requestRejected"},
	requisition.EventTypeStockRequestClosed:   {TopicStockRequests, "requestClosed"},
	requisition.EventTypeMaterialsIssued:      {TopicStockRequests, "materialsIssued"},
	requisition.EventTypeMaterialsReceived:    {TopicStockRequests, "materialsReceived"},

	inventory.EventTypeStockItemCreated:  {TopicStockItems, "stockItemCreated"},
	inventory.EventTypeStockItemUpdated:  {TopicStockItems, "stockItemUpdated"},
	inventory.EventTypeStockItemDeleted:  {TopicStockItems, "stockItemDeleted"},
	inventory.EventTypeStockRestocked:    {TopicStockItems, "stockRestocked"},
	inventory.EventTypeStockDeducted:     {TopicStockItems, "stockDeducted"},
	inventory.EventTypeStockBelowMinimum: {TopicStockItems, "stockBelowMinimum"},

	catalog.EventTypeStockCategoryCreated: {TopicCategories, "categoryCreated"},
	catalog.EventTypeStockCategoryUpdated: {TopicCategories, "categoryUpdated"},
	catalog.EventTypeStockCategoryDeleted: {TopicCategories, "categoryDeleted"},

	partner.EventTypeStoreCreated:  {TopicStores, "storeCreated"},
	partner.EventTypeStoreUpdated:  {TopicStores, "storeUpdated"},
	partner.EventTypeStoreDeleted:  {TopicStores, "storeDeleted"},
	partner.EventTypeSiteCreated:   {TopicSites, "siteCreated"},
	partner.EventTypeSiteUpdated:   {TopicSites, "siteUpdated"},
	partner.EventTypeSiteDeleted:   {TopicSites, "siteDeleted"},
	partner.EventTypeClientCreated: {TopicClients, "clientCreated"},
	partner.EventTypeClientUpdated: {TopicClients, "clientUpdated"},
	partner.EventTypeClientDeleted: {TopicClients, "clientDeleted"},

	medication.EventTypeMedicationRecordCreated: {TopicMedicationRecords, "medicationRecordCreated"},
	medication.EventTypeMedicationRecordUpdated: {TopicMedicationRecords, "medicationRecordUpdated"},
	medication.EventTypeMedicationRecordDeleted: {TopicMedicationRecords, "medicationRecordDeleted"},
}

// Broadcaster forwards domain events from the event bus to the hub
type Broadcaster struct {
	hub    *Hub
	logger *zap.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(hub *Hub, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, logger: logger}
}

// EventTypes returns every event type the broadcaster forwards
func (b *Broadcaster) EventTypes() []string {
	types := make([]string, 0, len(eventRoutes))
	for eventType := range eventRoutes {
		types = append(types, eventType)
	}
	return types
}

// Handle forwards a domain event to subscribed websocket clients
func (b *Broadcaster) Handle(_ context.Context, event shared.DomainEvent) error {
	r, ok := eventRoutes[event.EventType()]
	if !ok {
		return nil
	}

	b.hub.Broadcast(r.Topic, r.Event, event)
	return nil
}

var _ shared.EventHandler = (*Broadcaster)(nil)
