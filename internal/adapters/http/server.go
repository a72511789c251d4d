// Package http exposes the planner as a small JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/strata/internal/adapters/yamlfile"
	"github.com/aretw0/strata/internal/metrics"
	"github.com/aretw0/strata/internal/validator"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/layout"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the planning pipeline onto HTTP.
type Server struct {
	store   ports.PlanStore // optional
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler creates the HTTP handler. store may be nil, in which case
// plans are computed but never persisted.
func NewHandler(store ports.PlanStore, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	s := &Server{store: store, logger: logger, metrics: m}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	r.Post("/v1/plan", s.plan)
	r.Get("/v1/plan/{fingerprint}", s.get)
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// plan computes a layout for the posted network definition.
func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reg, err := yamlfile.Load(body)
	if err != nil {
		s.metrics.PlansTotal.WithLabelValues("invalid").Inc()
		http.Error(w, fmt.Sprintf("Invalid network definition: %v", err), http.StatusBadRequest)
		return
	}
	if err := validator.ValidateNetwork(reg, s.logger); err != nil {
		s.metrics.PlansTotal.WithLabelValues("invalid").Inc()
		http.Error(w, fmt.Sprintf("Invalid wiring: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	plan, err := layout.Create(reg)
	s.metrics.PlanDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.PlansTotal.WithLabelValues("unsatisfiable").Inc()
		// Layout failures are configuration errors in the definition,
		// not server faults.
		http.Error(w, fmt.Sprintf("Layout error: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.PlansTotal.WithLabelValues("ok").Inc()
	s.metrics.HubsPerPlan.Observe(float64(len(plan.Hubs)))

	if s.store != nil {
		if err := s.store.Save(r.Context(), plan); err != nil {
			s.logger.Error("failed to persist plan", "error", err, "fingerprint", plan.Fingerprint)
		}
	}

	s.logger.Info("planned layout", "hubs", len(plan.Hubs), "fingerprint", plan.Fingerprint)
	writeJSON(w, http.StatusOK, plan)
}

// get returns a previously computed plan by fingerprint.
func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No plan store configured", http.StatusNotFound)
		return
	}
	fingerprint := chi.URLParam(r, "fingerprint")
	plan, err := s.store.Load(r.Context(), fingerprint)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			http.Error(w, "Plan not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
