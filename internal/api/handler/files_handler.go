package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"isiboard/internal/app/service"
	"isiboard/internal/common"
)

// FilesHandler serves the saved files of a single student.
type FilesHandler struct {
	filesService *service.FilesService
}

func NewFilesHandler(fs *service.FilesService) *FilesHandler {
	return &FilesHandler{filesService: fs}
}

func (h *FilesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{userID}/files", h.list)
	r.Delete("/{userID}/files/{fileID}", h.delete)
}

func (h *FilesHandler) list(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	component, err := h.filesService.List(r.Context(), userID, r.URL.Query().Get("q"), forceRefresh(r))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, component)
}

func (h *FilesHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	fileID := chi.URLParam(r, "fileID")
	if err := h.filesService.Delete(r.Context(), userID, fileID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
