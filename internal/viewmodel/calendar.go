package viewmodel

import (
	"sort"
	"time"

	"github.com/mhzindev/sunsetflow/internal/core"
)

// Urgency classes for calendar entries.
const (
	UrgencyOverdue   = "overdue"   // due date already passed
	UrgencyUrgent    = "urgent"    // due within 3 days
	UrgencyScheduled = "scheduled" // further out
)

// CalendarEntry is one payment on the due-date calendar.
type CalendarEntry struct {
	PaymentID   string `json:"payment_id"`
	ProviderID  string `json:"provider_id"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	DaysLeft    int    `json:"days_left"`
	Urgency     string `json:"urgency"`
	StatusLabel string `json:"status_label"`
}

// Urgency classifies a due date relative to now: negative days left
// means overdue, three days or fewer means urgent.
func Urgency(due, now time.Time) (daysLeft int, class string) {
	daysLeft = int(due.Sub(startOfDay(now)).Hours() / 24)
	switch {
	case daysLeft < 0:
		return daysLeft, UrgencyOverdue
	case daysLeft <= 3:
		return daysLeft, UrgencyUrgent
	default:
		return daysLeft, UrgencyScheduled
	}
}

// AssembleCalendar builds the calendar from open payments, soonest
// first. Terminal payments never appear.
func AssembleCalendar(payments []core.Payment, now time.Time) []CalendarEntry {
	var entries []CalendarEntry
	for _, p := range payments {
		if p.Status == core.PaymentCompleted || p.Status == core.PaymentCancelled {
			continue
		}
		daysLeft, class := Urgency(p.DueDate, now)
		entries = append(entries, CalendarEntry{
			PaymentID:   p.ID,
			ProviderID:  p.ProviderID,
			Amount:      FormatBRL(p.Amount),
			DueDate:     p.DueDate.Format("02/01/2006"),
			DaysLeft:    daysLeft,
			Urgency:     class,
			StatusLabel: label(paymentStatusLabels, p.Status),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].DaysLeft < entries[j].DaysLeft })
	return entries
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
