package storage

import (
	"context"
	"database/sql"

	"github.com/mhzindev/sunsetflow/internal/core"
)

func (r *SQLiteRepository) GetProfileByUser(ctx context.Context, userID string) (*core.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, email, access_level
		FROM profiles
		WHERE id = ?`, userID)

	var (
		p         core.Profile
		companyID sql.NullString
		level     string
	)
	if err := row.Scan(&p.ID, &companyID, &p.Name, &p.Email, &level); err != nil {
		return nil, storeErr("profile not found", err)
	}
	p.TenantID = companyID.String
	p.AccessLevel = core.AccessLevel(level)
	return &p, nil
}
