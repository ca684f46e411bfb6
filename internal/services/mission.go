package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

// MissionService wraps mission mutations that have side effects beyond
// the row itself.
type MissionService struct {
	store store.Store
	bus   Publisher
}

func NewMissionService(s store.Store, bus Publisher) *MissionService {
	if bus == nil {
		bus = NopPublisher{}
	}
	return &MissionService{store: s, bus: bus}
}

// Approve marks a mission approved and announces it. Approval is what
// makes the mission's provider shares count toward provider balances,
// so the worker recalculates them on this event.
func (s *MissionService) Approve(ctx context.Context, tenantID, id string) (*core.Mission, error) {
	m, err := s.store.GetMission(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if m.IsApproved {
		return m, nil // idempotent
	}

	if err := s.store.ApproveMission(ctx, tenantID, id); err != nil {
		return nil, err
	}
	m.IsApproved = true

	ev := Event{
		Name:       EventMissionApproved,
		TenantID:   tenantID,
		EntityID:   id,
		OccurredAt: time.Now(),
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish mission approval",
			"mission_id", id, "error", err)
	}
	return m, nil
}
