// Package store defines the ports for tenant-scoped persistence.
// Implementations live in internal/storage (SQLite) and
// internal/storage/memory (tests, local development).
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
)

// TransactionFilter narrows a transaction listing. Zero values mean
// "no constraint".
type TransactionFilter struct {
	From   time.Time
	To     time.Time
	Status core.TransactionStatus
	Type   core.TransactionType
}

// Ports for tenant-scoped data access. Every method takes the tenant
// id as its first data parameter; implementations must return empty
// results for an empty tenant id rather than querying unscoped.
type (
	BankAccountStore interface {
		ListBankAccounts(ctx context.Context, tenantID string) ([]core.BankAccount, error)
		GetBankAccount(ctx context.Context, tenantID, id string) (*core.BankAccount, error)
		CreateBankAccount(ctx context.Context, a core.BankAccount) (string, error)
		UpdateBankAccount(ctx context.Context, a core.BankAccount) error
		DeleteBankAccount(ctx context.Context, tenantID, id string) error
	}

	CreditCardStore interface {
		ListCreditCards(ctx context.Context, tenantID string) ([]core.CreditCard, error)
		GetCreditCard(ctx context.Context, tenantID, id string) (*core.CreditCard, error)
		CreateCreditCard(ctx context.Context, c core.CreditCard) (string, error)
		UpdateCreditCard(ctx context.Context, c core.CreditCard) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context, tenantID string, f TransactionFilter) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) (string, error)
	}

	PaymentStore interface {
		ListPayments(ctx context.Context, tenantID string) ([]core.Payment, error)
		GetPayment(ctx context.Context, tenantID, id string) (*core.Payment, error)
		CreatePayment(ctx context.Context, p core.Payment) (string, error)
		UpdatePayment(ctx context.Context, p core.Payment) error
	}

	ExpenseStore interface {
		ListExpenses(ctx context.Context, tenantID string) ([]core.Expense, error)
		CreateExpense(ctx context.Context, e core.Expense) (string, error)
		UpdateExpenseStatus(ctx context.Context, tenantID, id string, status core.ExpenseStatus) error
	}

	MissionStore interface {
		ListMissions(ctx context.Context, tenantID string) ([]core.Mission, error)
		GetMission(ctx context.Context, tenantID, id string) (*core.Mission, error)
		CreateMission(ctx context.Context, m core.Mission) (string, error)
		ApproveMission(ctx context.Context, tenantID, id string) error
	}

	ProviderStore interface {
		ListProviders(ctx context.Context, tenantID string) ([]core.ServiceProvider, error)
		GetProvider(ctx context.Context, tenantID, id string) (*core.ServiceProvider, error)
		CreateProvider(ctx context.Context, p core.ServiceProvider) (string, error)
		UpdateProviderBalance(ctx context.Context, tenantID, id string, balance decimal.Decimal) error
	}

	ProfileStore interface {
		GetProfileByUser(ctx context.Context, userID string) (*core.Profile, error)
	}

	RevenueStore interface {
		ListConfirmedRevenues(ctx context.Context, tenantID string) ([]core.ConfirmedRevenue, error)
	}
)

// Store is the full persistence surface the service wires together.
type Store interface {
	BankAccountStore
	CreditCardStore
	TransactionStore
	PaymentStore
	ExpenseStore
	MissionStore
	ProviderStore
	ProfileStore
	RevenueStore

	// Ping verifies the backend is reachable; readiness probes use it
	// instead of issuing tenant-scoped queries.
	Ping(ctx context.Context) error
	Close() error
}
