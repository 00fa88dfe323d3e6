// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListDependencies
	LeaderboardDependencies
	PacksDependencies
	EditorsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	listHandler        *ListHandler
	leaderboardHandler *LeaderboardHandler
	packsHandler       *PacksHandler
	editorsHandler     *EditorsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		listHandler:        NewListHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		packsHandler:       NewPacksHandler(deps),
		editorsHandler:     NewEditorsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("GET /list", "list", s.listHandler.HandleList)
	route("GET /list/{rank}", "level", s.listHandler.HandleLevel)
	route("GET /leaderboard", "leaderboard", s.leaderboardHandler.HandleLeaderboard)
	route("GET /leaderboard/{user}", "user", s.leaderboardHandler.HandleUser)
	route("GET /packs", "packs", s.packsHandler.HandlePacks)
	route("GET /editors", "editors", s.editorsHandler.HandleEditors)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service sentinels to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrLevelUnavailable):
		writeError(w, http.StatusBadGateway, "level_unavailable", err)
	case errors.Is(err, service.ErrListUnavailable):
		writeError(w, http.StatusServiceUnavailable, "list_unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	default:
		logger.Get().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("requestID", RequestID(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
