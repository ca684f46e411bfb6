package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

// ProviderService keeps the stored provider balances in line with the
// derived truth (approved mission shares minus completed payments).
type ProviderService struct {
	store store.Store
	agg   *Aggregator
}

func NewProviderService(s store.Store) *ProviderService {
	return &ProviderService{store: s, agg: NewAggregator(s)}
}

// Recalculate recomputes one provider's balance from missions and
// payments and persists it. Returns the new balance.
func (s *ProviderService) Recalculate(ctx context.Context, tenantID, providerID string) (*core.ServiceProvider, error) {
	p, err := s.store.GetProvider(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}

	balance, err := s.agg.ProviderBalance(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateProviderBalance(ctx, tenantID, providerID, balance); err != nil {
		return nil, err
	}
	p.CurrentBalance = balance

	slog.InfoContext(ctx, "Provider balance recalculated",
		"provider_id", providerID, "tenant_id", tenantID, "balance", balance.String())
	return p, nil
}

// RecalculateAll refreshes every provider in the tenant. The worker
// runs this after payment.completed and mission.approved events.
func (s *ProviderService) RecalculateAll(ctx context.Context, tenantID string) error {
	providers, err := s.store.ListProviders(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("recalculate providers: %w", err)
	}
	for _, p := range providers {
		if _, err := s.Recalculate(ctx, tenantID, p.ID); err != nil {
			return fmt.Errorf("recalculate provider %s: %w", p.ID, err)
		}
	}
	return nil
}
