// Package services holds the business operations built on the store
// ports: cross-entity aggregation, the payment lifecycle, provider
// balance recalculation and the dashboard composition.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

var hundred = decimal.NewFromInt(100)

// Aggregator computes tenant-wide financial summaries. All reads go
// through the tenant-scoped store ports; an empty tenant yields empty
// aggregates, never another tenant's numbers.
type Aggregator struct {
	store store.Store
}

func NewAggregator(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// CreditSummary is the aggregate over all of a tenant's credit cards.
// Utilization is a percentage of the total limit; it stays zero when
// no card carries a limit.
type CreditSummary struct {
	TotalLimit     decimal.Decimal
	TotalUsed      decimal.Decimal
	TotalAvailable decimal.Decimal
	Utilization    decimal.Decimal
	Cards          int
}

// CashFlow sums completed transactions in a date range.
type CashFlow struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// BankBalance sums the balances of active bank accounts. Inactive
// accounts are excluded so closed accounts stop counting toward the
// company position without losing their history.
func (a *Aggregator) BankBalance(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	accounts, err := a.store.ListBankAccounts(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregate bank balance: %w", err)
	}

	total := decimal.Zero
	for _, acc := range accounts {
		if acc.IsActive {
			total = total.Add(acc.Balance)
		}
	}
	return total, nil
}

func (a *Aggregator) CreditSummary(ctx context.Context, tenantID string) (CreditSummary, error) {
	cards, err := a.store.ListCreditCards(ctx, tenantID)
	if err != nil {
		return CreditSummary{}, fmt.Errorf("aggregate credit summary: %w", err)
	}

	s := CreditSummary{
		TotalLimit:     decimal.Zero,
		TotalUsed:      decimal.Zero,
		TotalAvailable: decimal.Zero,
		Utilization:    decimal.Zero,
		Cards:          len(cards),
	}
	for _, c := range cards {
		s.TotalLimit = s.TotalLimit.Add(c.Limit)
		s.TotalUsed = s.TotalUsed.Add(c.UsedLimit)
		s.TotalAvailable = s.TotalAvailable.Add(c.AvailableLimit)
	}
	if s.TotalLimit.IsPositive() {
		s.Utilization = s.TotalUsed.Mul(hundred).Div(s.TotalLimit).Round(2)
	}
	return s, nil
}

// Flow aggregates completed transactions between from and to,
// inclusive. Pending and cancelled transactions never move the cash
// flow.
func (a *Aggregator) Flow(ctx context.Context, tenantID string, from, to time.Time) (CashFlow, error) {
	txs, err := a.store.ListTransactions(ctx, tenantID, store.TransactionFilter{
		From:   from,
		To:     to,
		Status: core.TransactionCompleted,
	})
	if err != nil {
		return CashFlow{}, fmt.Errorf("aggregate cash flow: %w", err)
	}

	f := CashFlow{Income: decimal.Zero, Expenses: decimal.Zero, Net: decimal.Zero}
	for _, t := range txs {
		switch t.Type {
		case core.TransactionIncome:
			f.Income = f.Income.Add(t.Amount)
		case core.TransactionExpense:
			f.Expenses = f.Expenses.Add(t.Amount)
		}
		// transfers move money between own accounts; net zero
	}
	f.Net = f.Income.Sub(f.Expenses)
	return f, nil
}

// PendingPayments lists payments still awaiting settlement: pending
// and partial only. Payments flagged overdue belong exclusively to
// OverduePayments, so no payment is counted twice.
func (a *Aggregator) PendingPayments(ctx context.Context, tenantID string) ([]core.Payment, error) {
	payments, err := a.store.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}

	var out []core.Payment
	for _, p := range payments {
		switch p.Status {
		case core.PaymentPending, core.PaymentPartial:
			out = append(out, p)
		}
	}
	return out, nil
}

// OverduePayments lists payments in the overdue state. Moving a
// past-due payment into that state is a lifecycle transition, not a
// reporting decision.
func (a *Aggregator) OverduePayments(ctx context.Context, tenantID string) ([]core.Payment, error) {
	payments, err := a.store.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list overdue payments: %w", err)
	}

	var out []core.Payment
	for _, p := range payments {
		if p.Status == core.PaymentOverdue {
			out = append(out, p)
		}
	}
	return out, nil
}

// SumPayments totals the amounts of a payment set.
func SumPayments(payments []core.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// ProviderBalance derives what a provider is owed: the provider's
// share of every approved mission they are assigned to, minus every
// completed payment already made to them. The per-mission share is the
// mission's provider value split evenly across its assigned providers.
func (a *Aggregator) ProviderBalance(ctx context.Context, tenantID, providerID string) (decimal.Decimal, error) {
	missions, err := a.store.ListMissions(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("derive provider balance: %w", err)
	}

	earned := decimal.Zero
	for _, m := range missions {
		if !m.IsApproved || len(m.ProviderIDs) == 0 {
			continue
		}
		assigned := false
		for _, id := range m.ProviderIDs {
			if id == providerID {
				assigned = true
				break
			}
		}
		if !assigned {
			continue
		}
		share := m.ProviderValue().Div(decimal.NewFromInt(int64(len(m.ProviderIDs)))).Round(2)
		earned = earned.Add(share)
	}

	payments, err := a.store.ListPayments(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("derive provider balance: %w", err)
	}
	paid := decimal.Zero
	for _, p := range payments {
		if p.ProviderID == providerID && p.Status == core.PaymentCompleted {
			paid = paid.Add(p.Amount)
		}
	}

	return earned.Sub(paid), nil
}

// ConfirmedRevenueTotal sums the tenant's confirmed revenues.
func (a *Aggregator) ConfirmedRevenueTotal(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	revenues, err := a.store.ListConfirmedRevenues(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregate confirmed revenue: %w", err)
	}

	total := decimal.Zero
	for _, rev := range revenues {
		total = total.Add(rev.Amount)
	}
	return total, nil
}
