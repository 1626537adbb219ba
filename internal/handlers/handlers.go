// Package handlers serves the simulator over an HTTP JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xtding233/atbat-sim/internal/config"
	"github.com/xtding233/atbat-sim/internal/roster"
	"github.com/xtding233/atbat-sim/internal/service"
)

// Simulator is the part of service.Simulator the handlers use.
type Simulator interface {
	Simulate(ctx context.Context, req service.Request) (service.Report, error)
	AtBat(ctx context.Context, req service.Request) (service.AtBatResult, error)
	Series(ctx context.Context, req service.Request) (service.SeriesReport, error)
	Players(role roster.Role, year int) ([]roster.Player, error)
	Years() []int
	Ballparks() []config.Ballpark
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	sim Simulator

	// SeriesTimeout bounds a series request; 0 means no extra limit.
	SeriesTimeout time.Duration
}

// NewHandler creates a new handler with dependencies
func NewHandler(sim Simulator) *Handler {
	return &Handler{sim: sim, SeriesTimeout: 20 * time.Second}
}

// Routes mounts the API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players", h.GetPlayers)
		r.Get("/ballparks", h.GetBallparks)
		r.Post("/simulate", h.Simulate)
		r.Post("/atbat", h.AtBat)
		r.Post("/series", h.Series)
	})
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SimulateRequest is the POST body shared by simulate, atbat and series.
// Omitted fields fall back to the server configuration.
type SimulateRequest struct {
	BatterID   string   `json:"batter_id"`
	PitcherID  string   `json:"pitcher_id"`
	SampleSize *int     `json:"sample_size,omitempty"`
	ParkFactor *float64 `json:"park_factor,omitempty"`
	Ballpark   string   `json:"ballpark,omitempty"`
	Runs       *int     `json:"runs,omitempty"`
	Seed       *uint64  `json:"seed,omitempty"`
	History    bool     `json:"history,omitempty"`
}

func (s SimulateRequest) toService() service.Request {
	return service.Request{
		BatterID:  s.BatterID,
		PitcherID: s.PitcherID,
		Overrides: config.Overrides{
			SampleSize: s.SampleSize,
			ParkFactor: s.ParkFactor,
			Ballpark:   s.Ballpark,
			Runs:       s.Runs,
		},
		Seed:    s.Seed,
		History: s.History,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "atbat-sim",
		"years":     h.sim.Years(),
	})
}

// GetPlayers lists one side of the roster.
// Query params: role (batter|pitcher, required), year
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	role, ok := roster.ParseRole(r.URL.Query().Get("role"))
	if !ok {
		respondError(w, http.StatusBadRequest, service.ErrInvalidRole.Error(), nil)
		return
	}
	year, err := parseIntParam(r, "year", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be an integer", nil)
		return
	}
	players, err := h.sim.Players(role, year)
	if err != nil {
		h.fail(w, "failed to list players", err)
		return
	}
	if players == nil {
		players = []roster.Player{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"role":    role,
		"year":    year,
		"years":   h.sim.Years(),
		"players": players,
		"count":   len(players),
	})
}

// GetBallparks lists the configured park factors.
func (h *Handler) GetBallparks(w http.ResponseWriter, r *http.Request) {
	parks := h.sim.Ballparks()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ballparks": parks,
		"count":     len(parks),
	})
}

// Simulate runs a full matchup simulation.
// POST /api/v1/simulate
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	rep, err := h.sim.Simulate(r.Context(), req.toService())
	if err != nil {
		h.fail(w, "simulation failed", err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// AtBat draws a single plate appearance.
// POST /api/v1/atbat
func (h *Handler) AtBat(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	res, err := h.sim.AtBat(r.Context(), req.toService())
	if err != nil {
		h.fail(w, "at-bat failed", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Series runs many independent simulations and reports their spread.
// POST /api/v1/series
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if h.SeriesTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.SeriesTimeout)
		defer cancel()
	}
	rep, err := h.sim.Series(ctx, req.toService())
	if err != nil {
		h.fail(w, "series failed", err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// fail maps service errors onto status codes.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	switch {
	case service.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error(), nil)
	case service.IsInvalid(err):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, message, err)
	default:
		respondError(w, http.StatusInternalServerError, message, err)
	}
}

const maxBodyBytes = 1 << 16

func decodeRequest(w http.ResponseWriter, r *http.Request) (SimulateRequest, bool) {
	var req SimulateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return req, false
	}
	return req, true
}

func parseIntParam(r *http.Request, param string, defaultValue int) (int, error) {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(valueStr)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("error: %s - %v", message, err)
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
