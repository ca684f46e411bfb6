package http

import (
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
)

type cardRequest struct {
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Limit     string `json:"limit"`
	UsedLimit string `json:"used_limit"`
}

// toCard never reads an available limit from the request; the store
// recomputes it from limit and used limit on every write.
func (req cardRequest) toCard(tenantID, id string) (core.CreditCard, error) {
	limit, err := parseAmount("limit", req.Limit)
	if err != nil {
		return core.CreditCard{}, err
	}
	used, err := parseOptionalAmount("used_limit", req.UsedLimit)
	if err != nil {
		return core.CreditCard{}, err
	}
	return core.CreditCard{
		ID:        id,
		TenantID:  tenantID,
		Name:      req.Name,
		Brand:     req.Brand,
		Limit:     limit,
		UsedLimit: used,
	}, nil
}

type cardResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Brand          string `json:"brand,omitempty"`
	Limit          string `json:"limit"`
	UsedLimit      string `json:"used_limit"`
	AvailableLimit string `json:"available_limit"`
}

func toCardResponse(c core.CreditCard) cardResponse {
	return cardResponse{
		ID:             c.ID,
		Name:           c.Name,
		Brand:          c.Brand,
		Limit:          c.Limit.StringFixed(2),
		UsedLimit:      c.UsedLimit.StringFixed(2),
		AvailableLimit: c.AvailableLimit.StringFixed(2),
	}
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	cards, err := s.store.ListCreditCards(r.Context(), scope.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "card creation needs member access"))
		return
	}

	var req cardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	card, err := req.toCard(scope.TenantID, "")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.store.CreateCreditCard(r.Context(), card)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	created(w, id)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "card update needs member access"))
		return
	}

	var req cardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	card, err := req.toCard(scope.TenantID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.store.UpdateCreditCard(r.Context(), card); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)

	updated, err := s.store.GetCreditCard(r.Context(), scope.TenantID, card.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(*updated))
}
