package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListCreditCards(ctx context.Context, tenantID string) ([]core.CreditCard, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, name, brand, credit_limit, used_limit, available_limit
		FROM credit_cards
		WHERE company_id = ?
		ORDER BY name`, tenantID)
	if err != nil {
		return nil, storeErr("list credit cards", err)
	}
	defer rows.Close()

	var cards []core.CreditCard
	for rows.Next() {
		c, err := scanCreditCard(rows.Scan)
		if err != nil {
			return nil, storeErr("scan credit card", err)
		}
		cards = append(cards, c)
	}
	return cards, storeErr("list credit cards", rows.Err())
}

func (r *SQLiteRepository) GetCreditCard(ctx context.Context, tenantID, id string) (*core.CreditCard, error) {
	if !scoped(tenantID) {
		return nil, core.NotFoundErr("credit card not found")
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, brand, credit_limit, used_limit, available_limit
		FROM credit_cards
		WHERE company_id = ? AND id = ?`, tenantID, id)

	c, err := scanCreditCard(row.Scan)
	if err != nil {
		return nil, storeErr("credit card not found", err)
	}
	return &c, nil
}

func (r *SQLiteRepository) CreateCreditCard(ctx context.Context, c core.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", core.ValidationErr("invalid credit card", err)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Normalize()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credit_cards (id, company_id, name, brand, credit_limit, used_limit, available_limit)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.Name, c.Brand,
		c.Limit.String(), c.UsedLimit.String(), c.AvailableLimit.String())
	if err != nil {
		return "", storeErr("create credit card", err)
	}

	slog.InfoContext(ctx, "Credit card created",
		"id", c.ID, "tenant_id", c.TenantID, "name", c.Name)
	return c.ID, nil
}

func (r *SQLiteRepository) UpdateCreditCard(ctx context.Context, c core.CreditCard) error {
	if err := c.Validate(); err != nil {
		return core.ValidationErr("invalid credit card", err)
	}
	c.Normalize()

	res, err := r.db.ExecContext(ctx, `
		UPDATE credit_cards
		SET name = ?, brand = ?, credit_limit = ?, used_limit = ?, available_limit = ?
		WHERE company_id = ? AND id = ?`,
		c.Name, c.Brand, c.Limit.String(), c.UsedLimit.String(), c.AvailableLimit.String(),
		c.TenantID, c.ID)
	if err != nil {
		return storeErr("update credit card", err)
	}
	return affectedOrNotFound(res, "credit card not found")
}

func scanCreditCard(scan scanFunc) (core.CreditCard, error) {
	var (
		c                      core.CreditCard
		limit, used, available string
	)
	if err := scan(&c.ID, &c.TenantID, &c.Name, &c.Brand, &limit, &used, &available); err != nil {
		return c, err
	}
	var err error
	if c.Limit, err = scanDecimal(limit); err != nil {
		return c, err
	}
	if c.UsedLimit, err = scanDecimal(used); err != nil {
		return c, err
	}
	c.AvailableLimit, err = scanDecimal(available)
	return c, err
}
