// Package worker consumes domain events and keeps derived state
// current: provider balances after payment/mission changes, and the
// exported monthly report.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/export"
	"github.com/mhzindev/sunsetflow/internal/services"
	"github.com/mhzindev/sunsetflow/internal/store"
)

// ReportExporter appends a report row; nil disables export.
type ReportExporter interface {
	Append(ctx context.Context, r export.Report) error
}

type EventWorker struct {
	store     store.Store
	providers *services.ProviderService
	agg       *services.Aggregator
	exporter  ReportExporter

	mu    sync.Mutex
	dirty map[string]struct{} // tenants needing a periodic recalc sweep
}

func NewEventWorker(s store.Store, exporter ReportExporter) *EventWorker {
	return &EventWorker{
		store:     s,
		providers: services.NewProviderService(s),
		agg:       services.NewAggregator(s),
		exporter:  exporter,
		dirty:     make(map[string]struct{}),
	}
}

// HandleEvent dispatches one event. A returned error means the
// delivery should be requeued; permanent failures are logged and
// swallowed so a poison message cannot wedge the queue.
func (w *EventWorker) HandleEvent(ctx context.Context, ev services.Event) error {
	switch ev.Name {
	case services.EventPaymentCompleted, services.EventMissionApproved:
		return w.handleRecalc(ctx, ev)
	case services.EventReportExport:
		return w.handleReportExport(ctx, ev)
	default:
		slog.WarnContext(ctx, "Dropping unknown event", "event", ev.Name)
		return nil
	}
}

func (w *EventWorker) handleRecalc(ctx context.Context, ev services.Event) error {
	if ev.TenantID == "" {
		slog.WarnContext(ctx, "Dropping event without tenant", "event", ev.Name)
		return nil
	}

	var err error
	if ev.ProviderID != "" {
		_, err = w.providers.Recalculate(ctx, ev.TenantID, ev.ProviderID)
	} else {
		err = w.providers.RecalculateAll(ctx, ev.TenantID)
	}
	if err != nil {
		if core.IsRetryable(err) {
			w.markDirty(ev.TenantID)
			return fmt.Errorf("recalculate after %s: %w", ev.Name, err)
		}
		slog.ErrorContext(ctx, "Dropping unprocessable recalc event",
			"event", ev.Name, "tenant_id", ev.TenantID, "error", err)
		return nil
	}
	return nil
}

// handleReportExport builds the previous month's cash-flow report for
// the tenant and appends it to the spreadsheet.
func (w *EventWorker) handleReportExport(ctx context.Context, ev services.Event) error {
	if w.exporter == nil {
		slog.WarnContext(ctx, "Report export requested but exporter not configured",
			"tenant_id", ev.TenantID)
		return nil
	}
	if ev.TenantID == "" {
		slog.WarnContext(ctx, "Dropping report export without tenant")
		return nil
	}

	now := ev.OccurredAt
	if now.IsZero() {
		now = time.Now()
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	flow, err := w.agg.Flow(ctx, ev.TenantID, monthStart, monthEnd)
	if err != nil {
		return fmt.Errorf("build report flow: %w", err)
	}
	pending, err := w.agg.PendingPayments(ctx, ev.TenantID)
	if err != nil {
		return fmt.Errorf("build report pending: %w", err)
	}

	report := export.Report{
		TenantID:        ev.TenantID,
		Month:           monthStart.Month(),
		Year:            monthStart.Year(),
		Income:          flow.Income,
		Expenses:        flow.Expenses,
		Net:             flow.Net,
		PendingPayments: len(pending),
		GeneratedAt:     time.Now(),
	}
	if err := w.exporter.Append(ctx, report); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return nil
}

func (w *EventWorker) markDirty(tenantID string) {
	w.mu.Lock()
	w.dirty[tenantID] = struct{}{}
	w.mu.Unlock()
}

// RunPeriodic sweeps tenants whose recalculation previously failed on
// a transient error. Blocks until the context is cancelled.
func (w *EventWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *EventWorker) sweep(ctx context.Context) {
	w.mu.Lock()
	tenants := make([]string, 0, len(w.dirty))
	for t := range w.dirty {
		tenants = append(tenants, t)
	}
	w.dirty = make(map[string]struct{})
	w.mu.Unlock()

	for _, tenantID := range tenants {
		if err := w.providers.RecalculateAll(ctx, tenantID); err != nil {
			slog.ErrorContext(ctx, "Periodic recalculation failed",
				"tenant_id", tenantID, "error", err)
			if core.IsRetryable(err) {
				w.markDirty(tenantID)
			}
		}
	}
}

// DirtyTenants reports how many tenants are queued for the next sweep.
func (w *EventWorker) DirtyTenants() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.dirty)
}
