package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListBankAccounts(ctx context.Context, tenantID string) ([]core.BankAccount, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, name, bank, account_type, balance, is_active
		FROM bank_accounts
		WHERE company_id = ?
		ORDER BY name`, tenantID)
	if err != nil {
		return nil, storeErr("list bank accounts", err)
	}
	defer rows.Close()

	var accounts []core.BankAccount
	for rows.Next() {
		a, err := scanBankAccount(rows.Scan)
		if err != nil {
			return nil, storeErr("scan bank account", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, storeErr("list bank accounts", rows.Err())
}

func (r *SQLiteRepository) GetBankAccount(ctx context.Context, tenantID, id string) (*core.BankAccount, error) {
	if !scoped(tenantID) {
		return nil, core.NotFoundErr("bank account not found")
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, bank, account_type, balance, is_active
		FROM bank_accounts
		WHERE company_id = ? AND id = ?`, tenantID, id)

	a, err := scanBankAccount(row.Scan)
	if err != nil {
		return nil, storeErr("bank account not found", err)
	}
	return &a, nil
}

func (r *SQLiteRepository) CreateBankAccount(ctx context.Context, a core.BankAccount) (string, error) {
	if err := a.Validate(); err != nil {
		return "", core.ValidationErr("invalid bank account", err)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bank_accounts (id, company_id, name, bank, account_type, balance, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.TenantID, a.Name, a.Bank, string(a.AccountType), a.Balance.String(), a.IsActive)
	if err != nil {
		return "", storeErr("create bank account", err)
	}

	slog.InfoContext(ctx, "Bank account created",
		"id", a.ID, "tenant_id", a.TenantID, "name", a.Name)
	return a.ID, nil
}

func (r *SQLiteRepository) UpdateBankAccount(ctx context.Context, a core.BankAccount) error {
	if err := a.Validate(); err != nil {
		return core.ValidationErr("invalid bank account", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE bank_accounts
		SET name = ?, bank = ?, account_type = ?, balance = ?, is_active = ?
		WHERE company_id = ? AND id = ?`,
		a.Name, a.Bank, string(a.AccountType), a.Balance.String(), a.IsActive,
		a.TenantID, a.ID)
	if err != nil {
		return storeErr("update bank account", err)
	}
	return affectedOrNotFound(res, "bank account not found")
}

func (r *SQLiteRepository) DeleteBankAccount(ctx context.Context, tenantID, id string) error {
	if !scoped(tenantID) {
		return core.NotFoundErr("bank account not found")
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bank_accounts WHERE company_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return storeErr("delete bank account", err)
	}
	if err := affectedOrNotFound(res, "bank account not found"); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Bank account deleted", "id", id, "tenant_id", tenantID)
	return nil
}

type scanFunc func(dest ...any) error

func scanBankAccount(scan scanFunc) (core.BankAccount, error) {
	var (
		a       core.BankAccount
		balance string
		accType string
	)
	if err := scan(&a.ID, &a.TenantID, &a.Name, &a.Bank, &accType, &balance, &a.IsActive); err != nil {
		return a, err
	}
	a.AccountType = core.AccountType(accType)
	var err error
	a.Balance, err = scanDecimal(balance)
	return a, err
}
