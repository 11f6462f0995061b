package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/govpulse/govpulse/pkg/domain/interfaces"
	"github.com/govpulse/govpulse/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// serviceName is reported by the health check and used as the trace operation name
const serviceName = "govpulse"

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
	report interfaces.Report
}

// NewServer creates a new HTTP server. dashboard may be nil when no
// frontend build is available.
func NewServer(
	ctx context.Context,
	addr string,
	report interfaces.Report,
	dashboard http.FileSystem,
) (*Server, error) {
	if report == nil {
		return nil, goerr.New("report use case is required")
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(CORSMiddleware)

	s := &Server{
		router: router,
		report: report,
	}

	router.Get("/", s.handleStatus)
	router.Get("/health", handleHealth)
	router.Route("/services", func(r chi.Router) {
		r.Get("/", s.handleServices)
		r.Get("/explain", s.handleExplain)
	})

	if dashboard != nil {
		dashboardHandler, err := NewDashboardHandler(dashboard)
		if err != nil {
			ctxlog.From(ctx).Warn("Dashboard not available", "error", err)
		} else {
			ctxlog.From(ctx).Info("Serving dashboard from embedded files")
			router.Get("/dashboard", http.RedirectHandler("/dashboard/", http.StatusMovedPermanently).ServeHTTP)
			router.Handle("/dashboard/*", http.StripPrefix("/dashboard", dashboardHandler))
		}
	}

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 15 * time.Second,
	}

	return s, nil
}

// handleStatus reports service status and catalog metadata
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.report.Status(r.Context()))
}

// handleServices reports the risk classification of every in-scope service
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.report.ListServices(r.Context()))
}

// handleExplain reports classification and explanation of every in-scope service
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.report.ExplainServices(r.Context()))
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		apperr.Handle(r.Context(), goerr.Wrap(err, "failed to encode response",
			goerr.V("path", r.URL.Path)))
	}
}
