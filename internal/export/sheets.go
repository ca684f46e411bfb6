// Package export appends monthly cash-flow reports to a Google Sheets
// spreadsheet using service-account credentials.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/mhzindev/sunsetflow/internal/config"
)

// Report is one exported row: the cash-flow summary for a tenant and
// month plus the open payment position at export time.
type Report struct {
	TenantID        string
	Month           time.Month
	Year            int
	Income          decimal.Decimal
	Expenses        decimal.Decimal
	Net             decimal.Decimal
	PendingPayments int
	GeneratedAt     time.Time
}

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// New builds the exporter from configuration. Credentials come from a
// service-account file or inline JSON.
func New(ctx context.Context, cfg *config.Config) (*Exporter, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var opt goption.ClientOption
	switch {
	case cfg.GoogleCredentialsJSON != "":
		opt = goption.WithCredentialsJSON([]byte(cfg.GoogleCredentialsJSON))
	case cfg.GoogleCredentialsFile != "":
		opt = goption.WithCredentialsFile(cfg.GoogleCredentialsFile)
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx, opt, goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

// Append writes the report as a new row at the bottom of the sheet.
func (e *Exporter) Append(ctx context.Context, r Report) error {
	values := &gsheet.ValueRange{
		Values: [][]any{{
			r.TenantID,
			fmt.Sprintf("%04d-%02d", r.Year, int(r.Month)),
			r.Income.StringFixed(2),
			r.Expenses.StringFixed(2),
			r.Net.StringFixed(2),
			r.PendingPayments,
			r.GeneratedAt.Format(time.RFC3339),
		}},
	}

	rangeRef := fmt.Sprintf("%s!A:G", e.sheetName)
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rangeRef, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append report row: %w", err)
	}

	slog.InfoContext(ctx, "Monthly report exported",
		"tenant_id", r.TenantID,
		"period", fmt.Sprintf("%04d-%02d", r.Year, int(r.Month)),
		"sheets_ref", rangeRef)
	return nil
}
