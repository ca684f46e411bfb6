// Package http exposes the tenant-scoped JSON API.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mhzindev/sunsetflow/internal/cache"
	"github.com/mhzindev/sunsetflow/internal/config"
	"github.com/mhzindev/sunsetflow/internal/middleware/ratelimit"
	"github.com/mhzindev/sunsetflow/internal/middleware/security"
	"github.com/mhzindev/sunsetflow/internal/middleware/trace"
	"github.com/mhzindev/sunsetflow/internal/services"
	"github.com/mhzindev/sunsetflow/internal/store"
	"github.com/mhzindev/sunsetflow/internal/tenant"
	"github.com/mhzindev/sunsetflow/internal/viewmodel"
)

type Server struct {
	http.Server

	store     store.Store
	resolver  *tenant.Resolver
	payments  *services.PaymentService
	missions  *services.MissionService
	providers *services.ProviderService
	dashboard *services.DashboardService

	limiter *ratelimit.Limiter
	janitor *cache.Janitor

	dashboardCache *cache.TenantCache[viewmodel.DashboardView]
	calendarCache  *cache.TenantCache[[]viewmodel.CalendarEntry]

	shutdownOnce sync.Once
}

func NewServer(cfg *config.Config, st store.Store, bus services.Publisher) *Server {
	agg := services.NewAggregator(st)

	s := &Server{
		store:     st,
		resolver:  tenant.NewResolver(st),
		payments:  services.NewPaymentService(st, bus),
		missions:  services.NewMissionService(st, bus),
		providers: services.NewProviderService(st),
		dashboard: services.NewDashboardService(agg),

		limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		janitor: cache.NewJanitor(),

		dashboardCache: cache.New[viewmodel.DashboardView](cfg.CacheMaxSize, cfg.CacheTTL),
		calendarCache:  cache.New[[]viewmodel.CalendarEntry](cfg.CacheMaxSize, cfg.CacheTTL),
	}

	s.janitor.Register(s.dashboardCache)
	s.janitor.Register(s.calendarCache)
	s.janitor.Start(10 * time.Minute)

	mux := http.NewServeMux()
	s.routes(mux)

	traced := trace.NewMiddleware(clientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = s.limiter.Middleware(clientIP)(handler)
	handler = headers.Middleware(handler)
	handler = traced.Middleware(handler)

	s.Server = http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.Handle("GET /accounts", s.scoped(s.handleListAccounts))
	mux.Handle("POST /accounts", s.scoped(s.handleCreateAccount))
	mux.Handle("PUT /accounts/{id}", s.scoped(s.handleUpdateAccount))
	mux.Handle("DELETE /accounts/{id}", s.scoped(s.handleDeleteAccount))

	mux.Handle("GET /cards", s.scoped(s.handleListCards))
	mux.Handle("POST /cards", s.scoped(s.handleCreateCard))
	mux.Handle("PUT /cards/{id}", s.scoped(s.handleUpdateCard))

	mux.Handle("GET /transactions", s.scoped(s.handleListTransactions))
	mux.Handle("POST /transactions", s.scoped(s.handleCreateTransaction))

	mux.Handle("GET /payments", s.scoped(s.handleListPayments))
	mux.Handle("POST /payments", s.scoped(s.handleCreatePayment))
	mux.Handle("POST /payments/{id}/status", s.scoped(s.handlePaymentStatus))
	mux.Handle("GET /payments/calendar", s.scoped(s.handlePaymentCalendar))

	mux.Handle("GET /expenses", s.scoped(s.handleListExpenses))
	mux.Handle("POST /expenses", s.scoped(s.handleCreateExpense))
	mux.Handle("POST /expenses/{id}/approve", s.scoped(s.handleApproveExpense))

	mux.Handle("GET /missions", s.scoped(s.handleListMissions))
	mux.Handle("POST /missions", s.scoped(s.handleCreateMission))
	mux.Handle("POST /missions/{id}/approve", s.scoped(s.handleApproveMission))

	mux.Handle("GET /providers", s.scoped(s.handleListProviders))
	mux.Handle("POST /providers", s.scoped(s.handleCreateProvider))
	mux.Handle("POST /providers/{id}/recalculate", s.scoped(s.handleRecalculateProvider))

	mux.Handle("GET /dashboard", s.scoped(s.handleDashboard))
}

type contextKey string

const scopeKey contextKey = "tenant_scope"

// scoped resolves the tenant from the X-User-ID header before the
// handler runs. Unresolvable users never reach a handler.
func (s *Server) scoped(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID == "" {
			writeErrorStatus(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}

		scope, err := s.resolver.Resolve(r.Context(), userID)
		if err != nil {
			if errors.Is(err, tenant.ErrNoTenantAssociation) {
				writeErrorStatus(w, http.StatusForbidden, "user has no company association")
				return
			}
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), scopeKey, scope)
		next(w, r.WithContext(ctx))
	})
}

func scopeFrom(ctx context.Context) tenant.Scope {
	if s, ok := ctx.Value(scopeKey).(tenant.Scope); ok {
		return s
	}
	return tenant.Scope{}
}

// invalidate drops cached read views for the tenant after a mutation.
func (s *Server) invalidate(tenantID string) {
	s.dashboardCache.InvalidateTenant(tenantID)
	s.calendarCache.InvalidateTenant(tenantID)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz verifies the store answers before reporting ready.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "Readiness probe failed", "error", err)
		writeErrorStatus(w, http.StatusServiceUnavailable, "store not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Shutdown stops background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.janitor.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// clientIP extracts the caller's address, honoring X-Forwarded-For
// from the reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
