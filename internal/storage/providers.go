package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListProviders(ctx context.Context, tenantID string) ([]core.ServiceProvider, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, name, current_balance
		FROM service_providers
		WHERE company_id = ?
		ORDER BY name`, tenantID)
	if err != nil {
		return nil, storeErr("list providers", err)
	}
	defer rows.Close()

	var providers []core.ServiceProvider
	for rows.Next() {
		p, err := scanProvider(rows.Scan)
		if err != nil {
			return nil, storeErr("scan provider", err)
		}
		providers = append(providers, p)
	}
	return providers, storeErr("list providers", rows.Err())
}

func (r *SQLiteRepository) GetProvider(ctx context.Context, tenantID, id string) (*core.ServiceProvider, error) {
	if !scoped(tenantID) {
		return nil, core.NotFoundErr("provider not found")
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, current_balance
		FROM service_providers
		WHERE company_id = ? AND id = ?`, tenantID, id)

	p, err := scanProvider(row.Scan)
	if err != nil {
		return nil, storeErr("provider not found", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) CreateProvider(ctx context.Context, p core.ServiceProvider) (string, error) {
	if err := p.Validate(); err != nil {
		return "", core.ValidationErr("invalid provider", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO service_providers (id, company_id, name, current_balance)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, p.CurrentBalance.String())
	if err != nil {
		return "", storeErr("create provider", err)
	}

	slog.InfoContext(ctx, "Provider created",
		"id", p.ID, "tenant_id", p.TenantID, "name", p.Name)
	return p.ID, nil
}

func (r *SQLiteRepository) UpdateProviderBalance(ctx context.Context, tenantID, id string, balance decimal.Decimal) error {
	if !scoped(tenantID) {
		return core.NotFoundErr("provider not found")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE service_providers SET current_balance = ?
		WHERE company_id = ? AND id = ?`,
		balance.String(), tenantID, id)
	if err != nil {
		return storeErr("update provider balance", err)
	}
	if err := affectedOrNotFound(res, "provider not found"); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Provider balance updated",
		"id", id, "tenant_id", tenantID, "balance", balance.String())
	return nil
}

func scanProvider(scan scanFunc) (core.ServiceProvider, error) {
	var (
		p       core.ServiceProvider
		balance string
	)
	if err := scan(&p.ID, &p.TenantID, &p.Name, &balance); err != nil {
		return p, err
	}
	var err error
	p.CurrentBalance, err = scanDecimal(balance)
	return p, err
}
