package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"isiboard/internal/api/middleware"
	"isiboard/internal/app/service"
	"isiboard/internal/common"
	"isiboard/internal/domain/model"
)

// ChallengeHandler serves the challenge list, detail views and the draft
// editor. Editor state is per-admin; the list and details come from shared
// snapshots.
type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

func NewChallengeHandler(cs *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: cs}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{challengeID}", h.details)
}

// RegisterEditorRoutes mounts the draft editor. Kept separate so the router
// can hang it off /editor instead of /challenges.
func (h *ChallengeHandler) RegisterEditorRoutes(r chi.Router) {
	r.Get("/", h.editor)
	r.Put("/", h.updateEditor)
	r.Post("/load/{challengeID}", h.loadIntoEditor)
	r.Post("/test-cases", h.addTestCase)
	r.Put("/test-cases/{key}", h.updateTestCase)
	r.Delete("/test-cases/{key}", h.removeTestCase)
	r.Post("/save", h.save)
}

func (h *ChallengeHandler) list(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	query := service.ChallengeListQuery{
		Status:         status,
		Q:              r.URL.Query().Get("q"),
		OrderBy:        r.URL.Query().Get("order_by"),
		OrderDirection: r.URL.Query().Get("order_direction"),
	}
	component := h.challengeService.List(r.Context(), query, forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *ChallengeHandler) details(w http.ResponseWriter, r *http.Request) {
	challengeID := chi.URLParam(r, "challengeID")
	component, err := h.challengeService.Details(r.Context(), challengeID, forceRefresh(r))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *ChallengeHandler) editor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	component, err := h.challengeService.Editor(r.Context(), adminID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *ChallengeHandler) updateEditor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	var req service.UpdateEditorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	component, err := h.challengeService.UpdateEditor(r.Context(), adminID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *ChallengeHandler) loadIntoEditor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	challengeID := chi.URLParam(r, "challengeID")
	component, err := h.challengeService.LoadIntoEditor(r.Context(), adminID, challengeID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *ChallengeHandler) addTestCase(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	// The body is optional: an empty POST appends a blank case.
	var req service.TestCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	component, err := h.challengeService.AddTestCase(r.Context(), adminID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, component)
}

func (h *ChallengeHandler) updateTestCase(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	var req service.TestCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	key := chi.URLParam(r, "key")
	component, err := h.challengeService.UpdateTestCase(r.Context(), adminID, key, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *ChallengeHandler) removeTestCase(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	key := chi.URLParam(r, "key")
	component, err := h.challengeService.RemoveTestCase(r.Context(), adminID, key)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

type saveChallengeRequest struct {
	Action string `json:"action"`
}

func (h *ChallengeHandler) save(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Admin ID not found in token")
		return
	}

	var req saveChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	result, err := h.challengeService.Save(r.Context(), adminID, model.SaveAction(req.Action))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}
