package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"isiboard/internal/api/middleware"
	"isiboard/internal/app/service"
	"isiboard/internal/app/view"
	"isiboard/internal/common"
)

// DashboardHandler serves the resolved dashboard payload and view switching.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	controller       *view.Controller
}

func NewDashboardHandler(ds *service.DashboardService, controller *view.Controller) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds, controller: controller}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.resolve)
	r.Post("/view", h.switchView)
	r.Get("/home", h.home)
	r.Get("/analytics", h.analytics)
	r.Get("/settings", h.settings)
}

// resolve returns the component for the admin's persisted view, so a reload
// lands exactly where the admin left off.
func (h *DashboardHandler) resolve(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	payload, err := h.dashboardService.Resolve(r.Context(), adminID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, payload)
}

type switchViewRequest struct {
	View        string `json:"view"`
	ChallengeID string `json:"challenge_id,omitempty"`
	QuizID      string `json:"quiz_id,omitempty"`
	StudentID   string `json:"student_id,omitempty"`
}

func (h *DashboardHandler) switchView(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	var req switchViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	nav := view.Nav{
		ChallengeID: req.ChallengeID,
		QuizID:      req.QuizID,
		StudentID:   req.StudentID,
	}
	state, err := h.controller.Switch(r.Context(), adminID, view.View(req.View), nav)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, state)
}

func (h *DashboardHandler) home(w http.ResponseWriter, r *http.Request) {
	component := h.dashboardService.Home(r.Context(), forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *DashboardHandler) analytics(w http.ResponseWriter, r *http.Request) {
	component := h.dashboardService.Analytics(r.Context(), forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *DashboardHandler) settings(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	component, err := h.dashboardService.Settings(r.Context(), adminID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}
