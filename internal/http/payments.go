package http

import (
	"net/http"
	"time"

	"github.com/mhzindev/sunsetflow/internal/cache"
	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/viewmodel"
)

type paymentRequest struct {
	ProviderID         string `json:"provider_id"`
	Amount             string `json:"amount"`
	DueDate            string `json:"due_date"`
	Status             string `json:"status"`
	Type               string `json:"type"`
	Installments       int    `json:"installments"`
	CurrentInstallment int    `json:"current_installment"`
	AccountID          string `json:"account_id"`
	AccountType        string `json:"account_type"`
}

type statusRequest struct {
	Status      string `json:"status"`
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	payments, err := s.store.ListPayments(r.Context(), scope.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewmodel.PaymentRows(payments))
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "payment creation needs member access"))
		return
	}

	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	paymentType := core.PaymentType(req.Type)
	if req.Type == "" {
		paymentType = core.PaymentFull
	}

	id, err := s.payments.Create(r.Context(), core.Payment{
		TenantID:           scope.TenantID,
		ProviderID:         req.ProviderID,
		Amount:             amount,
		DueDate:            dueDate,
		Status:             core.PaymentStatus(req.Status),
		Type:               paymentType,
		Installments:       req.Installments,
		CurrentInstallment: req.CurrentInstallment,
		AccountID:          req.AccountID,
		AccountType:        core.FundingAccountType(req.AccountType),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	created(w, id)
}

// handlePaymentStatus moves a payment through its lifecycle. The
// funding account can arrive in the same call; completion requires it
// to exist in the tenant.
func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "payment status change needs member access"))
		return
	}

	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.payments.UpdateStatus(r.Context(), scope.TenantID, r.PathValue("id"),
		core.PaymentStatus(req.Status), req.AccountID, core.FundingAccountType(req.AccountType))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	writeJSON(w, http.StatusOK, viewmodel.PaymentRows([]core.Payment{*p})[0])
}

// handlePaymentCalendar serves the due-date calendar: open payments
// classified by urgency, soonest first. Responses are cached per
// tenant until a mutation invalidates them.
func (s *Server) handlePaymentCalendar(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	now := time.Now()

	key := cache.Key(scope.TenantID, "calendar", now.Format("2006-01-02"))
	entries, err := s.calendarCache.GetOrLoad(key, func() ([]viewmodel.CalendarEntry, error) {
		payments, err := s.store.ListPayments(r.Context(), scope.TenantID)
		if err != nil {
			return nil, err
		}
		return viewmodel.AssembleCalendar(payments, now), nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []viewmodel.CalendarEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
