package storage

import (
	"context"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListConfirmedRevenues(ctx context.Context, tenantID string) ([]core.ConfirmedRevenue, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, mission_id, amount, confirmed_at
		FROM confirmed_revenues
		WHERE company_id = ?
		ORDER BY confirmed_at DESC`, tenantID)
	if err != nil {
		return nil, storeErr("list confirmed revenues", err)
	}
	defer rows.Close()

	var revenues []core.ConfirmedRevenue
	for rows.Next() {
		var (
			rev    core.ConfirmedRevenue
			amount string
		)
		if err := rows.Scan(&rev.ID, &rev.TenantID, &rev.MissionID, &amount, &rev.ConfirmedAt); err != nil {
			return nil, storeErr("scan confirmed revenue", err)
		}
		if rev.Amount, err = scanDecimal(amount); err != nil {
			return nil, storeErr("scan confirmed revenue", err)
		}
		revenues = append(revenues, rev)
	}
	return revenues, storeErr("list confirmed revenues", rows.Err())
}
