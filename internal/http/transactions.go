package http

import (
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
	"github.com/mhzindev/sunsetflow/internal/viewmodel"
)

type transactionRequest struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
	Description string `json:"description"`
}

// handleListTransactions filters via query parameters: from, to
// (2006-01-02), status and type.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())

	q := r.URL.Query()
	from, err := parseOptionalDate("from", q.Get("from"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := parseOptionalDate("to", q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := store.TransactionFilter{
		From:   from,
		To:     to,
		Status: core.TransactionStatus(q.Get("status")),
		Type:   core.TransactionType(q.Get("type")),
	}
	txs, err := s.store.ListTransactions(r.Context(), scope.TenantID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewmodel.TransactionRows(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "transaction creation needs member access"))
		return
	}

	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := core.TransactionStatus(req.Status)
	if req.Status == "" {
		status = core.TransactionCompleted
	}

	id, err := s.store.CreateTransaction(r.Context(), core.Transaction{
		TenantID:    scope.TenantID,
		Type:        core.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      amount,
		Date:        date,
		Status:      status,
		AccountID:   req.AccountID,
		AccountType: core.FundingAccountType(req.AccountType),
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	created(w, id)
}
