package viewmodel

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/services"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5.5", "R$ 5,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1000000", "R$ 1.000.000,00"},
		{"-250.5", "-R$ 250,50"},
		{"749.50", "R$ 749,50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatBRL(dec(t, tt.in)); got != tt.want {
				t.Errorf("FormatBRL(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUtilizationBand(t *testing.T) {
	tests := []struct {
		pct  string
		want string
	}{
		{"0", BandExcellent},
		{"30", BandExcellent},
		{"30.01", BandGood},
		{"60", BandGood},
		{"75", BandWarning},
		{"80.5", BandCritical},
		{"100", BandCritical},
	}
	for _, tt := range tests {
		t.Run(tt.pct, func(t *testing.T) {
			if got := UtilizationBand(dec(t, tt.pct)); got != tt.want {
				t.Errorf("UtilizationBand(%s) = %q, want %q", tt.pct, got, tt.want)
			}
		})
	}
}

func TestUrgency(t *testing.T) {
	now := time.Date(2025, 7, 15, 14, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return time.Date(2025, 7, 15+offset, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"yesterday", day(-1), UrgencyOverdue},
		{"today", day(0), UrgencyUrgent},
		{"in three days", day(3), UrgencyUrgent},
		{"in four days", day(4), UrgencyScheduled},
		{"next month", day(30), UrgencyScheduled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := Urgency(tt.due, now); got != tt.want {
				t.Errorf("Urgency(%s) = %q, want %q", tt.due, got, tt.want)
			}
		})
	}
}

func TestAssembleCalendarSkipsTerminal(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	payments := []core.Payment{
		{ID: "a", Status: core.PaymentPending, Amount: dec(t, "10"), DueDate: now.AddDate(0, 0, 10)},
		{ID: "b", Status: core.PaymentCompleted, Amount: dec(t, "20"), DueDate: now.AddDate(0, 0, 1)},
		{ID: "c", Status: core.PaymentOverdue, Amount: dec(t, "30"), DueDate: now.AddDate(0, 0, -5)},
		{ID: "d", Status: core.PaymentCancelled, Amount: dec(t, "40"), DueDate: now},
	}

	entries := AssembleCalendar(payments, now)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// overdue sorts before scheduled
	if entries[0].PaymentID != "c" || entries[0].Urgency != UrgencyOverdue {
		t.Errorf("first entry = %+v, want overdue payment c", entries[0])
	}
	if entries[1].PaymentID != "a" || entries[1].Urgency != UrgencyScheduled {
		t.Errorf("second entry = %+v, want scheduled payment a", entries[1])
	}
}

func TestTransactionRowsSignAndLabels(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := TransactionRows([]core.Transaction{
		{ID: "1", Type: core.TransactionIncome, Amount: dec(t, "100"), Date: date, Status: core.TransactionCompleted},
		{ID: "2", Type: core.TransactionExpense, Amount: dec(t, "40.25"), Date: date, Status: core.TransactionPending, Category: "combustível"},
	})

	if rows[0].Amount != "R$ 100,00" || rows[0].TypeLabel != "Receita" {
		t.Errorf("income row = %+v", rows[0])
	}
	if rows[1].Amount != "-R$ 40,25" || rows[1].StatusLabel != "Pendente" {
		t.Errorf("expense row = %+v", rows[1])
	}
	if rows[1].Date != "10/03/2025" {
		t.Errorf("date = %q, want 10/03/2025", rows[1].Date)
	}
}

func TestAssembleDashboardDegradedCard(t *testing.T) {
	d := &services.Dashboard{
		BankBalance: dec(t, "1200.00"),
		Credit: services.CreditSummary{
			TotalLimit:     dec(t, "1000"),
			TotalUsed:      dec(t, "300"),
			TotalAvailable: dec(t, "700"),
			Utilization:    dec(t, "30"),
			Cards:          1,
		},
		PendingTotal:     dec(t, "175.50"),
		OverdueTotal:     dec(t, "25.00"),
		ConfirmedRevenue: dec(t, "0"),
		Unavailable:      []string{"month_flow"},
	}

	view := AssembleDashboard(d)
	byID := make(map[string]Card)
	for _, c := range view.Cards {
		byID[c.ID] = c
	}

	if c := byID["bank_balance"]; c.Value != "R$ 1.200,00" || c.Unavailable {
		t.Errorf("bank balance card = %+v", c)
	}
	if c := byID["credit"]; c.Band != BandExcellent || c.Detail != "Utilização 30,0%" {
		t.Errorf("credit card = %+v", c)
	}
	if c := byID["month_flow"]; !c.Unavailable || c.Value != "" {
		t.Errorf("degraded card = %+v", c)
	}
	if c := byID["pending_payments"]; c.Value != "R$ 175,50" || c.Detail != "Vencidos R$ 25,00" {
		t.Errorf("pending payments card = %+v", c)
	}
}

func TestAssembleDashboardFlowSeries(t *testing.T) {
	d := &services.Dashboard{
		FlowSeries: []services.MonthFlow{
			{
				Month: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				Flow: services.CashFlow{
					Income:   dec(t, "400.00"),
					Expenses: dec(t, "150.00"),
					Net:      dec(t, "250.00"),
				},
			},
		},
	}

	view := AssembleDashboard(d)
	if len(view.FlowSeries) != 1 {
		t.Fatalf("series = %d points, want 1", len(view.FlowSeries))
	}
	p := view.FlowSeries[0]
	if p.Month != "2025-06" || p.Income != "400.00" || p.Net != "250.00" {
		t.Errorf("point = %+v", p)
	}
}
