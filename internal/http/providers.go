package http

import (
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
)

type providerRequest struct {
	Name string `json:"name"`
}

type providerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CurrentBalance string `json:"current_balance"`
}

func toProviderResponse(p core.ServiceProvider) providerResponse {
	return providerResponse{
		ID:             p.ID,
		Name:           p.Name,
		CurrentBalance: p.CurrentBalance.StringFixed(2),
	}
}

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	providers, err := s.store.ListProviders(r.Context(), scope.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]providerResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, toProviderResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProvider(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "provider creation needs member access"))
		return
	}

	var req providerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.store.CreateProvider(r.Context(), core.ServiceProvider{
		TenantID: scope.TenantID,
		Name:     req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, id)
}

// handleRecalculateProvider forces a balance recomputation outside the
// normal event flow, for reconciliation after manual data fixes.
func (s *Server) handleRecalculateProvider(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "provider recalculation needs member access"))
		return
	}

	p, err := s.providers.Recalculate(r.Context(), scope.TenantID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProviderResponse(*p))
}
