package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) ListMissions(ctx context.Context, tenantID string) ([]core.Mission, error) {
	if !scoped(tenantID) {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, title, client_name, status, service_value,
		       company_percentage, provider_percentage, is_approved
		FROM missions
		WHERE company_id = ?
		ORDER BY title`, tenantID)
	if err != nil {
		return nil, storeErr("list missions", err)
	}
	defer rows.Close()

	var missions []core.Mission
	for rows.Next() {
		m, err := scanMission(rows.Scan)
		if err != nil {
			return nil, storeErr("scan mission", err)
		}
		missions = append(missions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list missions", err)
	}

	for i := range missions {
		ids, err := r.missionProviders(ctx, missions[i].ID)
		if err != nil {
			return nil, err
		}
		missions[i].ProviderIDs = ids
	}
	return missions, nil
}

func (r *SQLiteRepository) GetMission(ctx context.Context, tenantID, id string) (*core.Mission, error) {
	if !scoped(tenantID) {
		return nil, core.NotFoundErr("mission not found")
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, title, client_name, status, service_value,
		       company_percentage, provider_percentage, is_approved
		FROM missions
		WHERE company_id = ? AND id = ?`, tenantID, id)

	m, err := scanMission(row.Scan)
	if err != nil {
		return nil, storeErr("mission not found", err)
	}
	if m.ProviderIDs, err = r.missionProviders(ctx, m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SQLiteRepository) CreateMission(ctx context.Context, m core.Mission) (string, error) {
	if err := m.Validate(); err != nil {
		return "", core.ValidationErr("invalid mission", err)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", storeErr("create mission", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO missions (id, company_id, title, client_name, status, service_value,
		                      company_percentage, provider_percentage, is_approved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TenantID, m.Title, m.ClientName, string(m.Status),
		m.ServiceValue.String(), m.CompanyPercentage.String(), m.ProviderPercentage.String(),
		m.IsApproved)
	if err != nil {
		return "", storeErr("create mission", err)
	}

	for _, providerID := range m.ProviderIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mission_providers (mission_id, provider_id) VALUES (?, ?)`,
			m.ID, providerID); err != nil {
			return "", storeErr("assign mission provider", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", storeErr("create mission", err)
	}

	slog.InfoContext(ctx, "Mission created",
		"id", m.ID, "tenant_id", m.TenantID, "title", m.Title,
		"providers", len(m.ProviderIDs))
	return m.ID, nil
}

func (r *SQLiteRepository) ApproveMission(ctx context.Context, tenantID, id string) error {
	if !scoped(tenantID) {
		return core.NotFoundErr("mission not found")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET is_approved = 1
		WHERE company_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return storeErr("approve mission", err)
	}
	if err := affectedOrNotFound(res, "mission not found"); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Mission approved", "id", id, "tenant_id", tenantID)
	return nil
}

func (r *SQLiteRepository) missionProviders(ctx context.Context, missionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT provider_id FROM mission_providers
		WHERE mission_id = ?
		ORDER BY provider_id`, missionID)
	if err != nil {
		return nil, storeErr("list mission providers", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan mission provider", err)
		}
		ids = append(ids, id)
	}
	return ids, storeErr("list mission providers", rows.Err())
}

func scanMission(scan scanFunc) (core.Mission, error) {
	var (
		m                              core.Mission
		status                         string
		value, companyPct, providerPct string
	)
	if err := scan(&m.ID, &m.TenantID, &m.Title, &m.ClientName, &status,
		&value, &companyPct, &providerPct, &m.IsApproved); err != nil {
		return m, err
	}
	m.Status = core.MissionStatus(status)

	var err error
	if m.ServiceValue, err = scanDecimal(value); err != nil {
		return m, err
	}
	if m.CompanyPercentage, err = scanDecimal(companyPct); err != nil {
		return m, err
	}
	m.ProviderPercentage, err = scanDecimal(providerPct)
	return m, err
}
