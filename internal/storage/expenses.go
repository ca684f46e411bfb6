package storage

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListExpenses(ctx context.Context, tenantID string) ([]core.Expense, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, mission_id, employee_id, category, amount, is_advanced, status,
		       actual_cost, invoice_amount, net_amount, kilometers, rate_per_km, total_revenue
		FROM expenses
		WHERE company_id = ?
		ORDER BY id`, tenantID)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, storeErr("scan expense", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, storeErr("list expenses", rows.Err())
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", core.ValidationErr("invalid expense", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	var actualCost, invoiceAmount, netAmount, kilometers, ratePerKm, totalRevenue sql.NullString
	if e.Accommodation != nil {
		actualCost = nullDecimal(e.Accommodation.ActualCost)
		invoiceAmount = nullDecimal(e.Accommodation.InvoiceAmount)
		netAmount = nullDecimal(e.Accommodation.NetAmount)
	}
	if e.Travel != nil {
		kilometers = nullDecimal(e.Travel.Kilometers)
		ratePerKm = nullDecimal(e.Travel.RatePerKm)
		totalRevenue = nullDecimal(e.Travel.TotalRevenue)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, company_id, mission_id, employee_id, category, amount, is_advanced, status,
		                      actual_cost, invoice_amount, net_amount, kilometers, rate_per_km, total_revenue)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TenantID, e.MissionID, e.EmployeeID, e.Category, e.Amount.String(),
		e.IsAdvanced, string(e.Status),
		actualCost, invoiceAmount, netAmount, kilometers, ratePerKm, totalRevenue)
	if err != nil {
		return "", storeErr("create expense", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"id", e.ID, "tenant_id", e.TenantID, "category", e.Category, "amount", e.Amount.String())
	return e.ID, nil
}

func (r *SQLiteRepository) UpdateExpenseStatus(ctx context.Context, tenantID, id string, status core.ExpenseStatus) error {
	if !scoped(tenantID) {
		return core.NotFoundErr("expense not found")
	}
	if !status.IsValid() {
		return core.ValidationErr("invalid expense status", core.ErrInvalidStatus)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET status = ?
		WHERE company_id = ? AND id = ?`,
		string(status), tenantID, id)
	if err != nil {
		return storeErr("update expense status", err)
	}
	if err := affectedOrNotFound(res, "expense not found"); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expense status updated",
		"id", id, "tenant_id", tenantID, "status", status)
	return nil
}

func scanExpense(scan scanFunc) (core.Expense, error) {
	var (
		e                                    core.Expense
		amount, status                       string
		actualCost, invoiceAmount, netAmount sql.NullString
		kilometers, ratePerKm, totalRevenue  sql.NullString
	)
	if err := scan(&e.ID, &e.TenantID, &e.MissionID, &e.EmployeeID, &e.Category, &amount,
		&e.IsAdvanced, &status,
		&actualCost, &invoiceAmount, &netAmount, &kilometers, &ratePerKm, &totalRevenue); err != nil {
		return e, err
	}
	e.Status = core.ExpenseStatus(status)

	var err error
	if e.Amount, err = scanDecimal(amount); err != nil {
		return e, err
	}
	if actualCost.Valid || invoiceAmount.Valid || netAmount.Valid {
		acc := &core.AccommodationDetails{}
		if acc.ActualCost, err = scanNullDecimal(actualCost); err != nil {
			return e, err
		}
		if acc.InvoiceAmount, err = scanNullDecimal(invoiceAmount); err != nil {
			return e, err
		}
		if acc.NetAmount, err = scanNullDecimal(netAmount); err != nil {
			return e, err
		}
		e.Accommodation = acc
	}
	if kilometers.Valid || ratePerKm.Valid || totalRevenue.Valid {
		tr := &core.TravelDetails{}
		if tr.Kilometers, err = scanNullDecimal(kilometers); err != nil {
			return e, err
		}
		if tr.RatePerKm, err = scanNullDecimal(ratePerKm); err != nil {
			return e, err
		}
		if tr.TotalRevenue, err = scanNullDecimal(totalRevenue); err != nil {
			return e, err
		}
		e.Travel = tr
	}
	return e, nil
}

func nullDecimal(d decimal.Decimal) sql.NullString {
	return sql.NullString{String: d.String(), Valid: true}
}

func scanNullDecimal(s sql.NullString) (decimal.Decimal, error) {
	if !s.Valid {
		return decimal.Zero, nil
	}
	return scanDecimal(s.String)
}
