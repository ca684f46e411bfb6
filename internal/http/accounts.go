package http

import (
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
)

type accountRequest struct {
	Name        string `json:"name"`
	Bank        string `json:"bank"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	IsActive    *bool  `json:"is_active"`
}

func (req accountRequest) toAccount(tenantID, id string) (core.BankAccount, error) {
	balance, err := parseSignedAmount("balance", req.Balance)
	if err != nil {
		return core.BankAccount{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return core.BankAccount{
		ID:          id,
		TenantID:    tenantID,
		Name:        req.Name,
		Bank:        req.Bank,
		AccountType: core.AccountType(req.AccountType),
		Balance:     balance,
		IsActive:    active,
	}, nil
}

type accountResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Bank        string `json:"bank,omitempty"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	IsActive    bool   `json:"is_active"`
}

func toAccountResponse(a core.BankAccount) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Bank:        a.Bank,
		AccountType: string(a.AccountType),
		Balance:     a.Balance.StringFixed(2),
		IsActive:    a.IsActive,
	}
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	accounts, err := s.store.ListBankAccounts(r.Context(), scope.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "account creation needs member access"))
		return
	}

	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	account, err := req.toAccount(scope.TenantID, "")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.store.CreateBankAccount(r.Context(), account)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	created(w, id)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "account update needs member access"))
		return
	}

	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	account, err := req.toAccount(scope.TenantID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.store.UpdateBankAccount(r.Context(), account); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanManage() {
		writeError(w, r, core.PermissionErr("owner access required", "account deletion needs owner access"))
		return
	}

	if err := s.store.DeleteBankAccount(r.Context(), scope.TenantID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	w.WriteHeader(http.StatusNoContent)
}
