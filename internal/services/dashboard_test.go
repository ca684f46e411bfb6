package services

import (
	"context"
	"testing"
	"time"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/storage/memory"
	"github.com/mhzindev/sunsetflow/internal/store"
)

// brokenCards wraps a store and fails the credit card listing, to
// exercise section degradation.
type brokenCards struct {
	store.Store
}

func (b brokenCards) ListCreditCards(context.Context, string) ([]core.CreditCard, error) {
	return nil, core.TransientErr("credit cards unavailable", nil)
}

func TestDashboardLoad(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	if _, err := repo.CreateBankAccount(ctx, core.BankAccount{
		TenantID: "t", Name: "Operating", AccountType: core.AccountChecking,
		Balance: dec(t, "1200.00"), IsActive: true,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, core.Transaction{
		TenantID: "t", Type: core.TransactionIncome, Amount: dec(t, "400.00"),
		Date: now.AddDate(0, 0, -1), Status: core.TransactionCompleted,
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	if _, err := repo.CreatePayment(ctx, core.Payment{
		TenantID: "t", ProviderID: "p", Amount: dec(t, "75.00"),
		DueDate: now.AddDate(0, 0, 5), Status: core.PaymentPending, Type: core.PaymentFull,
	}); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	if _, err := repo.CreatePayment(ctx, core.Payment{
		TenantID: "t", ProviderID: "p", Amount: dec(t, "25.00"),
		DueDate: now.AddDate(0, 0, -2), Status: core.PaymentOverdue, Type: core.PaymentFull,
	}); err != nil {
		t.Fatalf("seed overdue payment: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, core.Transaction{
		TenantID: "t", Type: core.TransactionExpense, Amount: dec(t, "150.00"),
		Date: now.AddDate(0, -1, 0), Status: core.TransactionCompleted,
	}); err != nil {
		t.Fatalf("seed prior month: %v", err)
	}
	repo.SeedRevenue(core.ConfirmedRevenue{
		TenantID: "t", Amount: dec(t, "900.00"), ConfirmedAt: now.AddDate(0, -1, 0),
	})

	d, err := NewDashboardService(NewAggregator(repo)).Load(ctx, "t", now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !d.BankBalance.Equal(dec(t, "1200.00")) {
		t.Errorf("bank balance = %s, want 1200.00", d.BankBalance)
	}
	if !d.MonthFlow.Income.Equal(dec(t, "400.00")) {
		t.Errorf("month income = %s, want 400.00", d.MonthFlow.Income)
	}
	if len(d.PendingPayments) != 1 {
		t.Errorf("pending payments = %d, want 1", len(d.PendingPayments))
	}
	if len(d.OverduePayments) != 1 {
		t.Errorf("overdue payments = %d, want 1", len(d.OverduePayments))
	}
	if !d.PendingTotal.Equal(dec(t, "75.00")) {
		t.Errorf("pending total = %s, want 75.00", d.PendingTotal)
	}
	if !d.OverdueTotal.Equal(dec(t, "25.00")) {
		t.Errorf("overdue total = %s, want 25.00", d.OverdueTotal)
	}
	if !d.ConfirmedRevenue.Equal(dec(t, "900.00")) {
		t.Errorf("confirmed revenue = %s, want 900.00", d.ConfirmedRevenue)
	}
	if len(d.Unavailable) != 0 {
		t.Errorf("unexpected degraded sections: %v", d.Unavailable)
	}

	if len(d.FlowSeries) != flowSeriesMonths {
		t.Fatalf("flow series = %d points, want %d", len(d.FlowSeries), flowSeriesMonths)
	}
	last := d.FlowSeries[len(d.FlowSeries)-1]
	if last.Month.Month() != time.July || !last.Flow.Income.Equal(dec(t, "400.00")) {
		t.Errorf("last point = %s income %s, want July income 400.00", last.Month, last.Flow.Income)
	}
	prior := d.FlowSeries[len(d.FlowSeries)-2]
	if !prior.Flow.Expenses.Equal(dec(t, "150.00")) {
		t.Errorf("prior month expenses = %s, want 150.00", prior.Flow.Expenses)
	}
}

func TestDashboardDegradesFailedSection(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	if _, err := repo.CreateBankAccount(ctx, core.BankAccount{
		TenantID: "t", Name: "Operating", AccountType: core.AccountChecking,
		Balance: dec(t, "100.00"), IsActive: true,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	d, err := NewDashboardService(NewAggregator(brokenCards{repo})).Load(ctx, "t", now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(d.Unavailable) != 1 || d.Unavailable[0] != "credit" {
		t.Errorf("unavailable = %v, want [credit]", d.Unavailable)
	}
	if !d.BankBalance.Equal(dec(t, "100.00")) {
		t.Errorf("healthy section lost: bank balance = %s, want 100.00", d.BankBalance)
	}
}
