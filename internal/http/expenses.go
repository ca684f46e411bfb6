package http

import (
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/viewmodel"
)

type accommodationRequest struct {
	ActualCost    string `json:"actual_cost"`
	InvoiceAmount string `json:"invoice_amount"`
	NetAmount     string `json:"net_amount"`
}

type travelRequest struct {
	Kilometers   string `json:"kilometers"`
	RatePerKm    string `json:"rate_per_km"`
	TotalRevenue string `json:"total_revenue"`
}

type expenseRequest struct {
	MissionID     string                `json:"mission_id"`
	EmployeeID    string                `json:"employee_id"`
	Category      string                `json:"category"`
	Amount        string                `json:"amount"`
	IsAdvanced    bool                  `json:"is_advanced"`
	Accommodation *accommodationRequest `json:"accommodation,omitempty"`
	Travel        *travelRequest        `json:"travel,omitempty"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	expenses, err := s.store.ListExpenses(r.Context(), scope.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewmodel.ExpenseRows(expenses))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "expense creation needs member access"))
		return
	}

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expense := core.Expense{
		TenantID:   scope.TenantID,
		MissionID:  req.MissionID,
		EmployeeID: req.EmployeeID,
		Category:   req.Category,
		Amount:     amount,
		IsAdvanced: req.IsAdvanced,
		Status:     core.ExpensePending,
	}

	if req.Accommodation != nil {
		details := &core.AccommodationDetails{}
		if details.ActualCost, err = parseOptionalAmount("actual_cost", req.Accommodation.ActualCost); err != nil {
			writeError(w, r, err)
			return
		}
		if details.InvoiceAmount, err = parseOptionalAmount("invoice_amount", req.Accommodation.InvoiceAmount); err != nil {
			writeError(w, r, err)
			return
		}
		if details.NetAmount, err = parseOptionalAmount("net_amount", req.Accommodation.NetAmount); err != nil {
			writeError(w, r, err)
			return
		}
		expense.Accommodation = details
	}
	if req.Travel != nil {
		details := &core.TravelDetails{}
		if details.Kilometers, err = parseOptionalAmount("kilometers", req.Travel.Kilometers); err != nil {
			writeError(w, r, err)
			return
		}
		if details.RatePerKm, err = parseOptionalAmount("rate_per_km", req.Travel.RatePerKm); err != nil {
			writeError(w, r, err)
			return
		}
		if details.TotalRevenue, err = parseOptionalAmount("total_revenue", req.Travel.TotalRevenue); err != nil {
			writeError(w, r, err)
			return
		}
		expense.Travel = details
	}

	id, err := s.store.CreateExpense(r.Context(), expense)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	created(w, id)
}

func (s *Server) handleApproveExpense(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanManage() {
		writeError(w, r, core.PermissionErr("owner access required", "expense approval needs owner access"))
		return
	}

	if err := s.store.UpdateExpenseStatus(r.Context(), scope.TenantID, r.PathValue("id"), core.ExpenseApproved); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	writeJSON(w, http.StatusOK, map[string]string{"status": string(core.ExpenseApproved)})
}
