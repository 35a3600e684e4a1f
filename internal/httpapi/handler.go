// Package httpapi implements the HTTP handlers for the matching service.
//
// All user-scoped routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET  /matches                   → persisted matches (min_score, limit params)
//	GET  /matches/compute           → cached-or-fresh top matches
//	GET  /matches/stats             → aggregate match statistics
//	POST /matches/invalidate        → drop the user's cached matches
//	POST /internal/invalidate-all   → drop all cached matches (catalog changed)
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"jobmate/matching-service/internal/matching"
	"jobmate/matching-service/internal/store"
)

// Handler holds shared dependencies.
type Handler struct {
	svc *matching.Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all matching-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/matches", h.handleMatches)
	mux.HandleFunc("/matches/", h.handleMatchAction)
	mux.HandleFunc("/internal/invalidate-all", h.handleInvalidateAll)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

// handleMatches handles GET /matches
func (h *Handler) handleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.listMatches(w, r)
}

// handleMatchAction handles /matches/{action}
func (h *Handler) handleMatchAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	switch action := parts[1]; action {
	case "compute":
		if r.Method != http.MethodGet {
			jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.computeMatches(w, r)
	case "stats":
		if r.Method != http.MethodGet {
			jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.matchStats(w, r)
	case "invalidate":
		if r.Method != http.MethodPost {
			jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.invalidate(w, r)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

// computeMatches returns the cached top matches when fresh, otherwise runs a
// full scoring pass (persisting and re-caching along the way).
func (h *Handler) computeMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	results, err := h.svc.CachedMatches(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			jsonError(w, "user not found", http.StatusNotFound)
			return
		}
		log.Printf("[matching] computeMatches error for user %s: %v", userID, err)
		jsonError(w, "matching failed", http.StatusInternalServerError)
		return
	}

	jsonOK(w, results)
}

func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	minScore := 0.0
	if s := r.URL.Query().Get("min_score"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 100 {
			jsonError(w, "min_score must be a number between 0 and 100", http.StatusBadRequest)
			return
		}
		minScore = v
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	matches, err := h.svc.Matches(r.Context(), userID, minScore, limit)
	if err != nil {
		log.Printf("[matching] listMatches error for user %s: %v", userID, err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, matches)
}

func (h *Handler) matchStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		log.Printf("[matching] matchStats error for user %s: %v", userID, err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, stats)
}

// invalidate drops one user's cached matches. Called by other services when
// the user's skill set changes (resume reparsed, profile disconnected).
func (h *Handler) invalidate(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	deleted := h.svc.Invalidate(r.Context(), userID)
	jsonOK(w, map[string]bool{"invalidated": deleted})
}

// handleInvalidateAll drops every cached match slice. Called by the
// discovery service after ingesting new jobs.
func (h *Handler) handleInvalidateAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	deleted := h.svc.InvalidateAll(r.Context())
	log.Printf("[matching] invalidated %d cached match entries (catalog change)", deleted)
	jsonOK(w, map[string]int{"invalidated": deleted})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
