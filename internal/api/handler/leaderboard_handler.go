package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"isiboard/internal/app/service"
	"isiboard/internal/common"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(ls *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.combined)
	r.Get("/challenges", h.challenges)
	r.Get("/quizzes", h.quizzes)
}

// combined fetches both boards in parallel for the side-by-side view.
func (h *LeaderboardHandler) combined(w http.ResponseWriter, r *http.Request) {
	component := h.leaderboardService.Combined(r.Context(), forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *LeaderboardHandler) challenges(w http.ResponseWriter, r *http.Request) {
	component := h.leaderboardService.Challenges(r.Context(), forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *LeaderboardHandler) quizzes(w http.ResponseWriter, r *http.Request) {
	component := h.leaderboardService.Quizzes(r.Context(), forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}
