package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

func (r *SQLiteRepository) ListTransactions(ctx context.Context, tenantID string, f store.TransactionFilter) ([]core.Transaction, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	query := `
		SELECT id, company_id, type, category, amount, date, status, account_id, account_type, description
		FROM transactions
		WHERE company_id = ?`
	args := []any{tenantID}

	if !f.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, f.To)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t               core.Transaction
			txType, status  string
			amount, accType string
			date            time.Time
		)
		if err := rows.Scan(&t.ID, &t.TenantID, &txType, &t.Category, &amount, &date,
			&status, &t.AccountID, &accType, &t.Description); err != nil {
			return nil, storeErr("scan transaction", err)
		}
		t.Type = core.TransactionType(txType)
		t.Status = core.TransactionStatus(status)
		t.AccountType = core.FundingAccountType(accType)
		t.Date = date
		if t.Amount, err = scanDecimal(amount); err != nil {
			return nil, storeErr("scan transaction", err)
		}
		txs = append(txs, t)
	}
	return txs, storeErr("list transactions", rows.Err())
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", core.ValidationErr("invalid transaction", err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, company_id, type, category, amount, date, status, account_id, account_type, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.TenantID, string(t.Type), t.Category, t.Amount.String(), t.Date,
		string(t.Status), t.AccountID, string(t.AccountType), t.Description)
	if err != nil {
		return "", storeErr("create transaction", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", t.ID, "tenant_id", t.TenantID, "type", t.Type, "amount", t.Amount.String())
	return t.ID, nil
}
