package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/storage/memory"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestBankBalanceSkipsInactiveAccounts(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	accounts := []core.BankAccount{
		{TenantID: "t", Name: "Checking", AccountType: core.AccountChecking, Balance: dec(t, "1000.00"), IsActive: true},
		{TenantID: "t", Name: "Savings", AccountType: core.AccountSavings, Balance: dec(t, "-250.50"), IsActive: true},
		{TenantID: "t", Name: "Closed", AccountType: core.AccountChecking, Balance: dec(t, "500.00"), IsActive: false},
	}
	for _, a := range accounts {
		if _, err := repo.CreateBankAccount(ctx, a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := NewAggregator(repo).BankBalance(ctx, "t")
	if err != nil {
		t.Fatalf("bank balance: %v", err)
	}
	if !got.Equal(dec(t, "749.50")) {
		t.Errorf("bank balance = %s, want 749.50", got)
	}
}

func TestCreditSummaryUtilization(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	cards := []core.CreditCard{
		{TenantID: "t", Name: "Gold", Limit: dec(t, "8000.00"), UsedLimit: dec(t, "2000.00")},
		{TenantID: "t", Name: "Platinum", Limit: dec(t, "2000.00"), UsedLimit: dec(t, "1000.00")},
	}
	for _, c := range cards {
		if _, err := repo.CreateCreditCard(ctx, c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := NewAggregator(repo).CreditSummary(ctx, "t")
	if err != nil {
		t.Fatalf("credit summary: %v", err)
	}
	if !got.TotalLimit.Equal(dec(t, "10000.00")) {
		t.Errorf("total limit = %s, want 10000.00", got.TotalLimit)
	}
	if !got.TotalUsed.Equal(dec(t, "3000.00")) {
		t.Errorf("total used = %s, want 3000.00", got.TotalUsed)
	}
	if !got.TotalAvailable.Equal(dec(t, "7000.00")) {
		t.Errorf("total available = %s, want 7000.00", got.TotalAvailable)
	}
	if !got.Utilization.Equal(dec(t, "30")) {
		t.Errorf("utilization = %s, want 30", got.Utilization)
	}
}

func TestCreditSummaryEmptyIsZeroSafe(t *testing.T) {
	repo := memory.NewRepository()

	got, err := NewAggregator(repo).CreditSummary(context.Background(), "t")
	if err != nil {
		t.Fatalf("credit summary: %v", err)
	}
	if got.Cards != 0 {
		t.Errorf("cards = %d, want 0", got.Cards)
	}
	if !got.Utilization.IsZero() {
		t.Errorf("utilization on empty tenant = %s, want 0", got.Utilization)
	}
}

func TestFlowCountsOnlyCompleted(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	txs := []core.Transaction{
		{TenantID: "t", Type: core.TransactionIncome, Amount: dec(t, "1000.00"), Date: base, Status: core.TransactionCompleted},
		{TenantID: "t", Type: core.TransactionExpense, Amount: dec(t, "300.25"), Date: base.AddDate(0, 0, 3), Status: core.TransactionCompleted},
		{TenantID: "t", Type: core.TransactionIncome, Amount: dec(t, "999.00"), Date: base.AddDate(0, 0, 4), Status: core.TransactionPending},
		{TenantID: "t", Type: core.TransactionTransfer, Amount: dec(t, "50.00"), Date: base.AddDate(0, 0, 5), Status: core.TransactionCompleted},
	}
	for _, tx := range txs {
		if _, err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := NewAggregator(repo).Flow(ctx, "t", base, base.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("flow: %v", err)
	}
	if !got.Income.Equal(dec(t, "1000.00")) {
		t.Errorf("income = %s, want 1000.00", got.Income)
	}
	if !got.Expenses.Equal(dec(t, "300.25")) {
		t.Errorf("expenses = %s, want 300.25", got.Expenses)
	}
	if !got.Net.Equal(dec(t, "699.75")) {
		t.Errorf("net = %s, want 699.75", got.Net)
	}
}

func TestProviderBalanceEvenSplit(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	p1, err := repo.CreateProvider(ctx, core.ServiceProvider{TenantID: "t", Name: "Alfa"})
	if err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	p2, err := repo.CreateProvider(ctx, core.ServiceProvider{TenantID: "t", Name: "Beta"})
	if err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	// 1500 * 60% = 900 provider value, split across two providers
	missionID, err := repo.CreateMission(ctx, core.Mission{
		TenantID: "t", Title: "Site survey", Status: core.MissionInProgress,
		ServiceValue:       dec(t, "1500.00"),
		CompanyPercentage:  dec(t, "40"),
		ProviderPercentage: dec(t, "60"),
		ProviderIDs:        []string{p1, p2},
	})
	if err != nil {
		t.Fatalf("seed mission: %v", err)
	}

	agg := NewAggregator(repo)

	// unapproved missions contribute nothing
	got, err := agg.ProviderBalance(ctx, "t", p1)
	if err != nil {
		t.Fatalf("provider balance: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("balance before approval = %s, want 0", got)
	}

	if err := repo.ApproveMission(ctx, "t", missionID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got, err = agg.ProviderBalance(ctx, "t", p1)
	if err != nil {
		t.Fatalf("provider balance: %v", err)
	}
	if !got.Equal(dec(t, "450.00")) {
		t.Errorf("balance after approval = %s, want 450.00", got)
	}

	// completed payments reduce the balance; pending ones do not
	payments := []core.Payment{
		{TenantID: "t", ProviderID: p1, Amount: dec(t, "150.00"), DueDate: time.Now(),
			Status: core.PaymentCompleted, Type: core.PaymentAdvance,
			AccountID: "acc", AccountType: core.FundingBankAccount},
		{TenantID: "t", ProviderID: p1, Amount: dec(t, "100.00"), DueDate: time.Now(),
			Status: core.PaymentPending, Type: core.PaymentFull},
	}
	for _, p := range payments {
		if _, err := repo.CreatePayment(ctx, p); err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	got, err = agg.ProviderBalance(ctx, "t", p1)
	if err != nil {
		t.Fatalf("provider balance: %v", err)
	}
	if !got.Equal(dec(t, "300.00")) {
		t.Errorf("balance after payment = %s, want 300.00", got)
	}
}

// Pending and overdue are disjoint status sets: a payment sits in
// exactly one of them, never both.
func TestPendingAndOverdueAreDisjoint(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	payments := []core.Payment{
		{TenantID: "t", ProviderID: "p", Amount: dec(t, "10.00"), DueDate: now.AddDate(0, 0, -3),
			Status: core.PaymentPending, Type: core.PaymentFull},
		{TenantID: "t", ProviderID: "p", Amount: dec(t, "20.00"), DueDate: now.AddDate(0, 0, 3),
			Status: core.PaymentPartial, Type: core.PaymentFull},
		{TenantID: "t", ProviderID: "p", Amount: dec(t, "30.00"), DueDate: now.AddDate(0, 0, -10),
			Status: core.PaymentOverdue, Type: core.PaymentFull},
		{TenantID: "t", ProviderID: "p", Amount: dec(t, "40.00"), DueDate: now.AddDate(0, 0, -10),
			Status: core.PaymentCancelled, Type: core.PaymentFull},
	}
	for _, p := range payments {
		if _, err := repo.CreatePayment(ctx, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	agg := NewAggregator(repo)

	pending, err := agg.PendingPayments(ctx, "t")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending count = %d, want 2", len(pending))
	}
	for _, p := range pending {
		if p.Status == core.PaymentOverdue {
			t.Errorf("overdue payment %s leaked into pending", p.ID)
		}
	}
	if !SumPayments(pending).Equal(dec(t, "30.00")) {
		t.Errorf("pending total = %s, want 30.00", SumPayments(pending))
	}

	overdue, err := agg.OverduePayments(ctx, "t")
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(overdue) != 1 {
		t.Fatalf("overdue count = %d, want 1", len(overdue))
	}
	if !SumPayments(overdue).Equal(dec(t, "30.00")) {
		t.Errorf("overdue total = %s, want 30.00", SumPayments(overdue))
	}
}
