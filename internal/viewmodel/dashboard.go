package viewmodel

import (
	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/services"
)

// Risk bands for credit utilization. Thresholds are inclusive upper
// bounds in percent.
const (
	BandExcellent = "Excelente"
	BandGood      = "Bom"
	BandWarning   = "Atenção"
	BandCritical  = "Crítico"
)

// UtilizationBand classifies a utilization percentage into a risk
// band: ≤30 Excelente, ≤60 Bom, ≤80 Atenção, above Crítico.
func UtilizationBand(pct decimal.Decimal) string {
	switch {
	case pct.LessThanOrEqual(decimal.NewFromInt(30)):
		return BandExcellent
	case pct.LessThanOrEqual(decimal.NewFromInt(60)):
		return BandGood
	case pct.LessThanOrEqual(decimal.NewFromInt(80)):
		return BandWarning
	default:
		return BandCritical
	}
}

// Card is one dashboard tile. Unavailable cards carry an error marker
// instead of a value so the frontend can render the rest of the page.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Detail      string `json:"detail,omitempty"`
	Band        string `json:"band,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// ChartPoint is one month on the cash-flow chart. Values are plain
// two-place decimal strings, not display-formatted, so the frontend
// can plot them.
type ChartPoint struct {
	Month    string `json:"month"` // "2026-08"
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// DashboardView is the JSON shape of GET /dashboard.
type DashboardView struct {
	Cards           []Card       `json:"cards"`
	FlowSeries      []ChartPoint `json:"flow_series"`
	PendingPayments []PaymentRow `json:"pending_payments"`
	OverduePayments []PaymentRow `json:"overdue_payments"`
}

// AssembleDashboard maps the service dashboard onto cards. Sections
// reported unavailable come back as error-marked cards.
func AssembleDashboard(d *services.Dashboard) DashboardView {
	down := make(map[string]bool, len(d.Unavailable))
	for _, section := range d.Unavailable {
		down[section] = true
	}

	cards := []Card{
		{
			ID:          "bank_balance",
			Title:       "Saldo em contas",
			Value:       FormatBRL(d.BankBalance),
			Unavailable: down["bank_balance"],
		},
		{
			ID:          "credit",
			Title:       "Cartões de crédito",
			Value:       FormatBRL(d.Credit.TotalAvailable),
			Detail:      "Utilização " + FormatPercent(d.Credit.Utilization),
			Band:        UtilizationBand(d.Credit.Utilization),
			Unavailable: down["credit"],
		},
		{
			ID:          "month_flow",
			Title:       "Fluxo do mês",
			Value:       FormatBRL(d.MonthFlow.Net),
			Detail:      "Entradas " + FormatBRL(d.MonthFlow.Income) + " · Saídas " + FormatBRL(d.MonthFlow.Expenses),
			Unavailable: down["month_flow"],
		},
		{
			ID:          "pending_payments",
			Title:       "Pagamentos pendentes",
			Value:       FormatBRL(d.PendingTotal),
			Detail:      "Vencidos " + FormatBRL(d.OverdueTotal),
			Unavailable: down["pending_payments"] || down["overdue_payments"],
		},
		{
			ID:          "confirmed_revenue",
			Title:       "Receitas confirmadas",
			Value:       FormatBRL(d.ConfirmedRevenue),
			Unavailable: down["confirmed_revenue"],
		},
	}
	for i := range cards {
		if cards[i].Unavailable {
			cards[i].Value = ""
			cards[i].Detail = ""
			cards[i].Band = ""
		}
	}

	series := make([]ChartPoint, 0, len(d.FlowSeries))
	for _, point := range d.FlowSeries {
		series = append(series, ChartPoint{
			Month:    point.Month.Format("2006-01"),
			Income:   point.Flow.Income.StringFixed(2),
			Expenses: point.Flow.Expenses.StringFixed(2),
			Net:      point.Flow.Net.StringFixed(2),
		})
	}

	return DashboardView{
		Cards:           cards,
		FlowSeries:      series,
		PendingPayments: PaymentRows(d.PendingPayments),
		OverduePayments: PaymentRows(d.OverduePayments),
	}
}
