package services

import (
	"context"
	"time"
)

// Event names carried on the bus. The worker consumes these to
// recalculate derived balances and to export reports.
const (
	EventPaymentCompleted = "payment.completed"
	EventMissionApproved  = "mission.approved"
	EventReportExport     = "report.export"
)

// Event is a domain notification. TenantID travels with every event so
// the consumer can stay tenant-scoped without extra lookups.
type Event struct {
	Name       string    `json:"name"`
	TenantID   string    `json:"tenant_id"`
	EntityID   string    `json:"entity_id,omitempty"`
	ProviderID string    `json:"provider_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher pushes events onto the bus. Publishing is best-effort for
// the write path: a bus outage must not fail the user's mutation.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher drops events; used when the bus is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
