package http

import (
	"net/http"

	"github.com/mhzindev/sunsetflow/internal/core"
)

type missionRequest struct {
	Title              string   `json:"title"`
	ClientName         string   `json:"client_name"`
	Status             string   `json:"status"`
	ServiceValue       string   `json:"service_value"`
	CompanyPercentage  string   `json:"company_percentage"`
	ProviderPercentage string   `json:"provider_percentage"`
	ProviderIDs        []string `json:"provider_ids"`
}

type missionResponse struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	ClientName         string   `json:"client_name,omitempty"`
	Status             string   `json:"status"`
	ServiceValue       string   `json:"service_value"`
	CompanyPercentage  string   `json:"company_percentage"`
	ProviderPercentage string   `json:"provider_percentage"`
	IsApproved         bool     `json:"is_approved"`
	ProviderIDs        []string `json:"provider_ids"`
}

func toMissionResponse(m core.Mission) missionResponse {
	return missionResponse{
		ID:                 m.ID,
		Title:              m.Title,
		ClientName:         m.ClientName,
		Status:             string(m.Status),
		ServiceValue:       m.ServiceValue.StringFixed(2),
		CompanyPercentage:  m.CompanyPercentage.String(),
		ProviderPercentage: m.ProviderPercentage.String(),
		IsApproved:         m.IsApproved,
		ProviderIDs:        m.ProviderIDs,
	}
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	missions, err := s.store.ListMissions(r.Context(), scope.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]missionResponse, 0, len(missions))
	for _, m := range missions {
		out = append(out, toMissionResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanWrite() {
		writeError(w, r, core.PermissionErr("write access required", "mission creation needs member access"))
		return
	}

	var req missionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	serviceValue, err := parseAmount("service_value", req.ServiceValue)
	if err != nil {
		writeError(w, r, err)
		return
	}
	companyPct, err := parseOptionalAmount("company_percentage", req.CompanyPercentage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	providerPct, err := parseOptionalAmount("provider_percentage", req.ProviderPercentage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := core.MissionStatus(req.Status)
	if req.Status == "" {
		status = core.MissionPlanning
	}

	id, err := s.store.CreateMission(r.Context(), core.Mission{
		TenantID:           scope.TenantID,
		Title:              req.Title,
		ClientName:         req.ClientName,
		Status:             status,
		ServiceValue:       serviceValue,
		CompanyPercentage:  companyPct,
		ProviderPercentage: providerPct,
		ProviderIDs:        req.ProviderIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	created(w, id)
}

// handleApproveMission marks the mission approved, which makes its
// provider shares count toward balances. Owner-only.
func (s *Server) handleApproveMission(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	if !scope.AccessLevel.CanManage() {
		writeError(w, r, core.PermissionErr("owner access required", "mission approval needs owner access"))
		return
	}

	m, err := s.missions.Approve(r.Context(), scope.TenantID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidate(scope.TenantID)
	writeJSON(w, http.StatusOK, toMissionResponse(*m))
}
