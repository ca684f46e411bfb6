package viewmodel

import (
	"strconv"

	"github.com/mhzindev/sunsetflow/internal/core"
)

var transactionTypeLabels = map[core.TransactionType]string{
	core.TransactionIncome:   "Receita",
	core.TransactionExpense:  "Despesa",
	core.TransactionTransfer: "Transferência",
}

var transactionStatusLabels = map[core.TransactionStatus]string{
	core.TransactionPending:   "Pendente",
	core.TransactionCompleted: "Concluída",
	core.TransactionCancelled: "Cancelada",
}

var paymentStatusLabels = map[core.PaymentStatus]string{
	core.PaymentPending:   "Pendente",
	core.PaymentPartial:   "Parcial",
	core.PaymentCompleted: "Pago",
	core.PaymentOverdue:   "Vencido",
	core.PaymentCancelled: "Cancelado",
}

var expenseStatusLabels = map[core.ExpenseStatus]string{
	core.ExpensePending:    "Pendente",
	core.ExpenseApproved:   "Aprovada",
	core.ExpenseReimbursed: "Reembolsada",
}

func label[K comparable](m map[K]string, k K) string {
	if s, ok := m[k]; ok {
		return s
	}
	return "—"
}

type TransactionRow struct {
	ID          string `json:"id"`
	TypeLabel   string `json:"type_label"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	StatusLabel string `json:"status_label"`
	Description string `json:"description,omitempty"`
}

func TransactionRows(txs []core.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, t := range txs {
		amount := t.Amount
		if t.Type == core.TransactionExpense {
			amount = amount.Neg()
		}
		rows = append(rows, TransactionRow{
			ID:          t.ID,
			TypeLabel:   label(transactionTypeLabels, t.Type),
			Category:    t.Category,
			Amount:      FormatBRL(amount),
			Date:        t.Date.Format("02/01/2006"),
			StatusLabel: label(transactionStatusLabels, t.Status),
			Description: t.Description,
		})
	}
	return rows
}

type PaymentRow struct {
	ID          string `json:"id"`
	ProviderID  string `json:"provider_id"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	StatusLabel string `json:"status_label"`
	Installment string `json:"installment,omitempty"`
}

func PaymentRows(payments []core.Payment) []PaymentRow {
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			ID:          p.ID,
			ProviderID:  p.ProviderID,
			Amount:      FormatBRL(p.Amount),
			DueDate:     p.DueDate.Format("02/01/2006"),
			StatusLabel: label(paymentStatusLabels, p.Status),
			Installment: installmentLabel(p),
		})
	}
	return rows
}

func installmentLabel(p core.Payment) string {
	if p.Type != core.PaymentInstallment || p.Installments == 0 {
		return ""
	}
	return strconv.Itoa(p.CurrentInstallment) + "/" + strconv.Itoa(p.Installments)
}

type ExpenseRow struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	StatusLabel string `json:"status_label"`
	Advanced    bool   `json:"advanced"`
}

func ExpenseRows(expenses []core.Expense) []ExpenseRow {
	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExpenseRow{
			ID:          e.ID,
			Category:    e.Category,
			Amount:      FormatBRL(e.Amount),
			StatusLabel: label(expenseStatusLabels, e.Status),
			Advanced:    e.IsAdvanced,
		})
	}
	return rows
}
