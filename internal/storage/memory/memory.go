// Package memory is an in-memory implementation of the store ports,
// used by tests and local development. It mirrors the SQLite backend's
// semantics: tenant scoping, validation on write, derived fields
// recomputed before storing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

type Repository struct {
	mu sync.RWMutex

	accounts     map[string]core.BankAccount
	cards        map[string]core.CreditCard
	transactions map[string]core.Transaction
	payments     map[string]core.Payment
	expenses     map[string]core.Expense
	missions     map[string]core.Mission
	providers    map[string]core.ServiceProvider
	profiles     map[string]core.Profile
	revenues     map[string]core.ConfirmedRevenue
}

func NewRepository() *Repository {
	return &Repository{
		accounts:     make(map[string]core.BankAccount),
		cards:        make(map[string]core.CreditCard),
		transactions: make(map[string]core.Transaction),
		payments:     make(map[string]core.Payment),
		expenses:     make(map[string]core.Expense),
		missions:     make(map[string]core.Mission),
		providers:    make(map[string]core.ServiceProvider),
		profiles:     make(map[string]core.Profile),
		revenues:     make(map[string]core.ConfirmedRevenue),
	}
}

func (r *Repository) Ping(context.Context) error { return nil }

func (r *Repository) Close() error { return nil }

func scoped(tenantID string) bool {
	return strings.TrimSpace(tenantID) != ""
}

// SeedProfile registers a user profile; tests use it to establish the
// tenant association the HTTP layer resolves from X-User-ID.
func (r *Repository) SeedProfile(p core.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// SeedRevenue registers a confirmed revenue row directly.
func (r *Repository) SeedRevenue(rev core.ConfirmedRevenue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev.ID == "" {
		rev.ID = uuid.NewString()
	}
	r.revenues[rev.ID] = rev
}

func (r *Repository) ListBankAccounts(_ context.Context, tenantID string) ([]core.BankAccount, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.BankAccount
	for _, a := range r.accounts {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetBankAccount(_ context.Context, tenantID, id string) (*core.BankAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok || !scoped(tenantID) || a.TenantID != tenantID {
		return nil, core.NotFoundErr("bank account not found")
	}
	return &a, nil
}

func (r *Repository) CreateBankAccount(_ context.Context, a core.BankAccount) (string, error) {
	if err := a.Validate(); err != nil {
		return "", core.ValidationErr("invalid bank account", err)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
	return a.ID, nil
}

func (r *Repository) UpdateBankAccount(_ context.Context, a core.BankAccount) error {
	if err := a.Validate(); err != nil {
		return core.ValidationErr("invalid bank account", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.accounts[a.ID]
	if !ok || cur.TenantID != a.TenantID {
		return core.NotFoundErr("bank account not found")
	}
	r.accounts[a.ID] = a
	return nil
}

func (r *Repository) DeleteBankAccount(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok || !scoped(tenantID) || a.TenantID != tenantID {
		return core.NotFoundErr("bank account not found")
	}
	delete(r.accounts, id)
	return nil
}

func (r *Repository) ListCreditCards(_ context.Context, tenantID string) ([]core.CreditCard, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.CreditCard
	for _, c := range r.cards {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetCreditCard(_ context.Context, tenantID, id string) (*core.CreditCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	if !ok || !scoped(tenantID) || c.TenantID != tenantID {
		return nil, core.NotFoundErr("credit card not found")
	}
	return &c, nil
}

func (r *Repository) CreateCreditCard(_ context.Context, c core.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", core.ValidationErr("invalid credit card", err)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Normalize()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[c.ID] = c
	return c.ID, nil
}

func (r *Repository) UpdateCreditCard(_ context.Context, c core.CreditCard) error {
	if err := c.Validate(); err != nil {
		return core.ValidationErr("invalid credit card", err)
	}
	c.Normalize()
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.cards[c.ID]
	if !ok || cur.TenantID != c.TenantID {
		return core.NotFoundErr("credit card not found")
	}
	r.cards[c.ID] = c
	return nil
}

func (r *Repository) ListTransactions(_ context.Context, tenantID string, f store.TransactionFilter) ([]core.Transaction, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Transaction
	for _, t := range r.transactions {
		if t.TenantID != tenantID {
			continue
		}
		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.Date.After(f.To) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *Repository) CreateTransaction(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", core.ValidationErr("invalid transaction", err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[t.ID] = t
	return t.ID, nil
}

func (r *Repository) ListPayments(_ context.Context, tenantID string) ([]core.Payment, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Payment
	for _, p := range r.payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *Repository) GetPayment(_ context.Context, tenantID, id string) (*core.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok || !scoped(tenantID) || p.TenantID != tenantID {
		return nil, core.NotFoundErr("payment not found")
	}
	return &p, nil
}

func (r *Repository) CreatePayment(_ context.Context, p core.Payment) (string, error) {
	if err := p.Validate(); err != nil {
		return "", core.ValidationErr("invalid payment", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID] = p
	return p.ID, nil
}

func (r *Repository) UpdatePayment(_ context.Context, p core.Payment) error {
	if err := p.Validate(); err != nil {
		return core.ValidationErr("invalid payment", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.payments[p.ID]
	if !ok || cur.TenantID != p.TenantID {
		return core.NotFoundErr("payment not found")
	}
	r.payments[p.ID] = p
	return nil
}

func (r *Repository) ListExpenses(_ context.Context, tenantID string) ([]core.Expense, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Expense
	for _, e := range r.expenses {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) CreateExpense(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", core.ValidationErr("invalid expense", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID] = e
	return e.ID, nil
}

func (r *Repository) UpdateExpenseStatus(_ context.Context, tenantID, id string, status core.ExpenseStatus) error {
	if !status.IsValid() {
		return core.ValidationErr("invalid expense status", core.ErrInvalidStatus)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.expenses[id]
	if !ok || !scoped(tenantID) || e.TenantID != tenantID {
		return core.NotFoundErr("expense not found")
	}
	e.Status = status
	r.expenses[id] = e
	return nil
}

func (r *Repository) ListMissions(_ context.Context, tenantID string) ([]core.Mission, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Mission
	for _, m := range r.missions {
		if m.TenantID == tenantID {
			m.ProviderIDs = append([]string(nil), m.ProviderIDs...)
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *Repository) GetMission(_ context.Context, tenantID, id string) (*core.Mission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.missions[id]
	if !ok || !scoped(tenantID) || m.TenantID != tenantID {
		return nil, core.NotFoundErr("mission not found")
	}
	m.ProviderIDs = append([]string(nil), m.ProviderIDs...)
	return &m, nil
}

func (r *Repository) CreateMission(_ context.Context, m core.Mission) (string, error) {
	if err := m.Validate(); err != nil {
		return "", core.ValidationErr("invalid mission", err)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.ProviderIDs = append([]string(nil), m.ProviderIDs...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missions[m.ID] = m
	return m.ID, nil
}

func (r *Repository) ApproveMission(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.missions[id]
	if !ok || !scoped(tenantID) || m.TenantID != tenantID {
		return core.NotFoundErr("mission not found")
	}
	m.IsApproved = true
	r.missions[id] = m
	return nil
}

func (r *Repository) ListProviders(_ context.Context, tenantID string) ([]core.ServiceProvider, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.ServiceProvider
	for _, p := range r.providers {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetProvider(_ context.Context, tenantID, id string) (*core.ServiceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok || !scoped(tenantID) || p.TenantID != tenantID {
		return nil, core.NotFoundErr("provider not found")
	}
	return &p, nil
}

func (r *Repository) CreateProvider(_ context.Context, p core.ServiceProvider) (string, error) {
	if err := p.Validate(); err != nil {
		return "", core.ValidationErr("invalid provider", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
	return p.ID, nil
}

func (r *Repository) UpdateProviderBalance(_ context.Context, tenantID, id string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok || !scoped(tenantID) || p.TenantID != tenantID {
		return core.NotFoundErr("provider not found")
	}
	p.CurrentBalance = balance
	r.providers[id] = p
	return nil
}

func (r *Repository) GetProfileByUser(_ context.Context, userID string) (*core.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, core.NotFoundErr("profile not found")
	}
	return &p, nil
}

func (r *Repository) ListConfirmedRevenues(_ context.Context, tenantID string) ([]core.ConfirmedRevenue, error) {
	if !scoped(tenantID) {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.ConfirmedRevenue
	for _, rev := range r.revenues {
		if rev.TenantID == tenantID {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConfirmedAt.After(out[j].ConfirmedAt) })
	return out, nil
}
