package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, query string) (service.BoardView, error)
	User(ctx context.Context, name string) (service.BoardEntry, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleLeaderboard handles GET /leaderboard?q=&limit=N requests. Without
// limit every matching user is returned.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request",
				fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		if h.maxLimit > 0 && n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded",
				fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, h.maxLimit))
			return
		}
		limit = n
	}

	view, err := h.deps.Leaderboard(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if limit > 0 && len(view.Users) > limit {
		view.Users = view.Users[:limit]
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleUser handles GET /leaderboard/{user} requests.
func (h *LeaderboardHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("user"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing user", ErrBadRequest))
		return
	}
	entry, err := h.deps.User(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
