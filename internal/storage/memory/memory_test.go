package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestTenantIsolation(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.CreateBankAccount(ctx, core.BankAccount{
		TenantID:    "company-a",
		Name:        "Operating",
		AccountType: core.AccountChecking,
		Balance:     dec(t, "100.00"),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListBankAccounts(ctx, "company-b")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("company-b sees %d accounts from company-a", len(got))
	}

	got, err = repo.ListBankAccounts(ctx, "")
	if err != nil {
		t.Fatalf("list empty tenant: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty tenant sees %d accounts", len(got))
	}
}

func TestGetAcrossTenantIsNotFound(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	id, err := repo.CreateProvider(ctx, core.ServiceProvider{TenantID: "company-a", Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = repo.GetProvider(ctx, "company-b", id)
	if core.KindOf(err) != core.KindNotFound {
		t.Errorf("cross-tenant get: kind = %v, want not_found", core.KindOf(err))
	}
}

func TestCreditCardAvailableLimitRecomputed(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	id, err := repo.CreateCreditCard(ctx, core.CreditCard{
		TenantID:       "company-a",
		Name:           "Corporate",
		Limit:          dec(t, "5000.00"),
		UsedLimit:      dec(t, "1500.00"),
		AvailableLimit: dec(t, "9999.99"), // must not be trusted
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, err := repo.GetCreditCard(ctx, "company-a", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !c.AvailableLimit.Equal(dec(t, "3500.00")) {
		t.Errorf("available limit = %s, want 3500.00", c.AvailableLimit)
	}
}

func TestCreateRejectsInvalidEntities(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"account without tenant", func() error {
			_, err := repo.CreateBankAccount(ctx, core.BankAccount{Name: "x", AccountType: core.AccountChecking})
			return err
		}},
		{"card over limit", func() error {
			_, err := repo.CreateCreditCard(ctx, core.CreditCard{
				TenantID: "t", Name: "x",
				Limit: dec(t, "100"), UsedLimit: dec(t, "200"),
			})
			return err
		}},
		{"mission with bad split", func() error {
			_, err := repo.CreateMission(ctx, core.Mission{
				TenantID: "t", Title: "x", Status: core.MissionPlanning,
				ServiceValue:       dec(t, "1000"),
				CompanyPercentage:  dec(t, "50"),
				ProviderPercentage: dec(t, "40"),
			})
			return err
		}},
		{"payment without provider", func() error {
			_, err := repo.CreatePayment(ctx, core.Payment{
				TenantID: "t", Amount: dec(t, "10"),
				DueDate: time.Now(), Status: core.PaymentPending, Type: core.PaymentFull,
			})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if core.KindOf(err) != core.KindValidation {
				t.Errorf("kind = %v, want validation (err: %v)", core.KindOf(err), err)
			}
		})
	}
}

func TestTransactionFilter(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	seed := []core.Transaction{
		{TenantID: "t", Type: core.TransactionIncome, Amount: dec(t, "100"), Date: base, Status: core.TransactionCompleted},
		{TenantID: "t", Type: core.TransactionExpense, Amount: dec(t, "40"), Date: base.AddDate(0, 0, 5), Status: core.TransactionCompleted},
		{TenantID: "t", Type: core.TransactionExpense, Amount: dec(t, "60"), Date: base.AddDate(0, 1, 0), Status: core.TransactionPending},
	}
	for _, tx := range seed {
		if _, err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := repo.ListTransactions(ctx, "t", store.TransactionFilter{
		From:   base,
		To:     base.AddDate(0, 0, 10),
		Status: core.TransactionCompleted,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("filtered count = %d, want 2", len(got))
	}

	got, err = repo.ListTransactions(ctx, "t", store.TransactionFilter{Type: core.TransactionExpense})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expense count = %d, want 2", len(got))
	}
}

func TestUpdateExpenseStatus(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	id, err := repo.CreateExpense(ctx, core.Expense{
		TenantID: "t", Category: "travel",
		Amount: dec(t, "80.00"), Status: core.ExpensePending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateExpenseStatus(ctx, "t", id, core.ExpenseApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	list, err := repo.ListExpenses(ctx, "t")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Status != core.ExpenseApproved {
		t.Errorf("expense not approved: %+v", list)
	}

	err = repo.UpdateExpenseStatus(ctx, "t", id, core.ExpenseStatus("bogus"))
	var coreErr *core.Error
	if !errors.As(err, &coreErr) || coreErr.Kind != core.KindValidation {
		t.Errorf("bogus status: err = %v, want validation", err)
	}
}

func TestMissionProvidersCopied(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	providers := []string{"p1", "p2"}
	id, err := repo.CreateMission(ctx, core.Mission{
		TenantID: "t", Title: "Audit", Status: core.MissionPlanning,
		ServiceValue:       dec(t, "1000"),
		CompanyPercentage:  dec(t, "40"),
		ProviderPercentage: dec(t, "60"),
		ProviderIDs:        providers,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	providers[0] = "mutated"

	m, err := repo.GetMission(ctx, "t", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.ProviderIDs[0] != "p1" {
		t.Errorf("stored mission aliases caller slice: %v", m.ProviderIDs)
	}
}
