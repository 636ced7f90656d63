package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"isiboard/internal/app/service"
	"isiboard/internal/common"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(qs *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: qs}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{quizID}", h.details)
	r.Delete("/{quizID}", h.delete)
}

func (h *QuizHandler) list(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	query := service.QuizListQuery{
		Status:         status,
		Q:              r.URL.Query().Get("q"),
		OrderBy:        r.URL.Query().Get("order_by"),
		OrderDirection: r.URL.Query().Get("order_direction"),
	}
	component := h.quizService.List(r.Context(), query, forceRefresh(r))
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *QuizHandler) details(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	component, err := h.quizService.Details(r.Context(), quizID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

// delete removes the quiz upstream and drops the row from the cached list.
// A failure leaves the list untouched; the error also lands in the list's
// delete_error field for a few seconds.
func (h *QuizHandler) delete(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	if err := h.quizService.Delete(r.Context(), quizID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted successfully"})
}
