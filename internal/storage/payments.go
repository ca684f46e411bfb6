package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListPayments(ctx context.Context, tenantID string) ([]core.Payment, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, provider_id, amount, due_date, payment_date, status, type,
		       installments, current_installment, account_id, account_type
		FROM payments
		WHERE company_id = ?
		ORDER BY due_date`, tenantID)
	if err != nil {
		return nil, storeErr("list payments", err)
	}
	defer rows.Close()

	var payments []core.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, storeErr("scan payment", err)
		}
		payments = append(payments, p)
	}
	return payments, storeErr("list payments", rows.Err())
}

func (r *SQLiteRepository) GetPayment(ctx context.Context, tenantID, id string) (*core.Payment, error) {
	if !scoped(tenantID) {
		return nil, core.NotFoundErr("payment not found")
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, provider_id, amount, due_date, payment_date, status, type,
		       installments, current_installment, account_id, account_type
		FROM payments
		WHERE company_id = ? AND id = ?`, tenantID, id)

	p, err := scanPayment(row.Scan)
	if err != nil {
		return nil, storeErr("payment not found", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) CreatePayment(ctx context.Context, p core.Payment) (string, error) {
	if err := p.Validate(); err != nil {
		return "", core.ValidationErr("invalid payment", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, company_id, provider_id, amount, due_date, payment_date, status, type,
		                      installments, current_installment, account_id, account_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.ProviderID, p.Amount.String(), p.DueDate, p.PaymentDate,
		string(p.Status), string(p.Type), p.Installments, p.CurrentInstallment,
		p.AccountID, string(p.AccountType))
	if err != nil {
		return "", storeErr("create payment", err)
	}

	slog.InfoContext(ctx, "Payment created",
		"id", p.ID, "tenant_id", p.TenantID, "provider_id", p.ProviderID,
		"amount", p.Amount.String(), "status", p.Status)
	return p.ID, nil
}

func (r *SQLiteRepository) UpdatePayment(ctx context.Context, p core.Payment) error {
	if err := p.Validate(); err != nil {
		return core.ValidationErr("invalid payment", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET provider_id = ?, amount = ?, due_date = ?, payment_date = ?, status = ?, type = ?,
		    installments = ?, current_installment = ?, account_id = ?, account_type = ?
		WHERE company_id = ? AND id = ?`,
		p.ProviderID, p.Amount.String(), p.DueDate, p.PaymentDate, string(p.Status), string(p.Type),
		p.Installments, p.CurrentInstallment, p.AccountID, string(p.AccountType),
		p.TenantID, p.ID)
	if err != nil {
		return storeErr("update payment", err)
	}
	if err := affectedOrNotFound(res, "payment not found"); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Payment updated",
		"id", p.ID, "tenant_id", p.TenantID, "status", p.Status)
	return nil
}

func scanPayment(scan scanFunc) (core.Payment, error) {
	var (
		p             core.Payment
		amount        string
		status, ptype string
		accType       string
		paymentDate   *time.Time
	)
	if err := scan(&p.ID, &p.TenantID, &p.ProviderID, &amount, &p.DueDate, &paymentDate,
		&status, &ptype, &p.Installments, &p.CurrentInstallment, &p.AccountID, &accType); err != nil {
		return p, err
	}
	p.PaymentDate = paymentDate
	p.Status = core.PaymentStatus(status)
	p.Type = core.PaymentType(ptype)
	p.AccountType = core.FundingAccountType(accType)
	var err error
	p.Amount, err = scanDecimal(amount)
	return p, err
}
