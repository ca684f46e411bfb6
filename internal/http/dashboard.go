package http

import (
	"net/http"
	"time"

	"github.com/mhzindev/sunsetflow/internal/cache"
	"github.com/mhzindev/sunsetflow/internal/viewmodel"
)

// handleDashboard serves the composed home view. The assembled view is
// cached per tenant; partially degraded views are not cached so a
// recovered section shows up on the next request.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r.Context())
	now := time.Now()

	key := cache.Key(scope.TenantID, "dashboard", now.Format("2006-01-02"))
	if view, ok := s.dashboardCache.Get(key); ok {
		writeJSON(w, http.StatusOK, view)
		return
	}

	d, err := s.dashboard.Load(r.Context(), scope.TenantID, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view := viewmodel.AssembleDashboard(d)
	if len(d.Unavailable) == 0 {
		s.dashboardCache.Set(key, view)
	}
	writeJSON(w, http.StatusOK, view)
}
