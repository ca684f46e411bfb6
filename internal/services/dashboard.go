package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
)

// flowSeriesMonths is how far back the dashboard chart reaches,
// including the current month.
const flowSeriesMonths = 6

// MonthFlow is one point on the dashboard cash-flow chart.
type MonthFlow struct {
	Month time.Time // first day of the month
	Flow  CashFlow
}

// Dashboard is the composed home view for a tenant. Sections load in
// parallel and fail independently: a broken section is listed in
// Unavailable while the rest of the dashboard still renders.
type Dashboard struct {
	BankBalance      decimal.Decimal
	Credit           CreditSummary
	MonthFlow        CashFlow
	FlowSeries       []MonthFlow
	PendingPayments  []core.Payment
	OverduePayments  []core.Payment
	PendingTotal     decimal.Decimal
	OverdueTotal     decimal.Decimal
	ConfirmedRevenue decimal.Decimal
	Unavailable      []string
}

type DashboardService struct {
	agg *Aggregator
}

func NewDashboardService(agg *Aggregator) *DashboardService {
	return &DashboardService{agg: agg}
}

// Load assembles the dashboard for the current month. Each section
// runs in its own goroutine; errors are degraded to an entry in
// Unavailable instead of failing the whole view.
func (s *DashboardService) Load(ctx context.Context, tenantID string, now time.Time) (*Dashboard, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	d := &Dashboard{
		BankBalance:      decimal.Zero,
		PendingTotal:     decimal.Zero,
		OverdueTotal:     decimal.Zero,
		ConfirmedRevenue: decimal.Zero,
	}

	var mu sync.Mutex
	degrade := func(section string, err error) {
		slog.WarnContext(ctx, "Dashboard section unavailable",
			"section", section, "tenant_id", tenantID, "error", err)
		mu.Lock()
		d.Unavailable = append(d.Unavailable, section)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := s.agg.BankBalance(gctx, tenantID)
		if err != nil {
			degrade("bank_balance", err)
			return nil
		}
		d.BankBalance = balance
		return nil
	})
	g.Go(func() error {
		summary, err := s.agg.CreditSummary(gctx, tenantID)
		if err != nil {
			degrade("credit", err)
			return nil
		}
		d.Credit = summary
		return nil
	})
	g.Go(func() error {
		flow, err := s.agg.Flow(gctx, tenantID, monthStart, monthEnd)
		if err != nil {
			degrade("month_flow", err)
			return nil
		}
		d.MonthFlow = flow
		return nil
	})
	g.Go(func() error {
		pending, err := s.agg.PendingPayments(gctx, tenantID)
		if err != nil {
			degrade("pending_payments", err)
			return nil
		}
		overdue, err := s.agg.OverduePayments(gctx, tenantID)
		if err != nil {
			degrade("overdue_payments", err)
			return nil
		}
		mu.Lock()
		d.PendingPayments = pending
		d.OverduePayments = overdue
		d.PendingTotal = SumPayments(pending)
		d.OverdueTotal = SumPayments(overdue)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		series, err := s.flowSeries(gctx, tenantID, monthStart)
		if err != nil {
			degrade("flow_series", err)
			return nil
		}
		d.FlowSeries = series
		return nil
	})
	g.Go(func() error {
		revenue, err := s.agg.ConfirmedRevenueTotal(gctx, tenantID)
		if err != nil {
			degrade("confirmed_revenue", err)
			return nil
		}
		d.ConfirmedRevenue = revenue
		return nil
	})

	// goroutines never return errors, so Wait only joins them
	_ = g.Wait()
	return d, nil
}

// flowSeries builds the per-month cash flow for the chart, oldest
// month first, ending with the current month.
func (s *DashboardService) flowSeries(ctx context.Context, tenantID string, currentMonth time.Time) ([]MonthFlow, error) {
	series := make([]MonthFlow, 0, flowSeriesMonths)
	for i := flowSeriesMonths - 1; i >= 0; i-- {
		start := currentMonth.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		flow, err := s.agg.Flow(ctx, tenantID, start, end)
		if err != nil {
			return nil, err
		}
		series = append(series, MonthFlow{Month: start, Flow: flow})
	}
	return series, nil
}
