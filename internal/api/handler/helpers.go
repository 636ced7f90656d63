package handler

import (
	"net/http"

	"isiboard/internal/common"
	"isiboard/internal/domain/model"
)

// forceRefresh reports whether the request asked for a refetch instead of the
// cached snapshot.
func forceRefresh(r *http.Request) bool {
	refresh := r.URL.Query().Get("refresh")
	return refresh == "1" || refresh == "true"
}

// statusFilter parses the optional ?status= query; empty means no filter.
func statusFilter(r *http.Request) (model.PublishStatus, error) {
	raw := r.URL.Query().Get("status")
	switch raw {
	case "":
		return "", nil
	case string(model.StatusDraft):
		return model.StatusDraft, nil
	case string(model.StatusPublished):
		return model.StatusPublished, nil
	default:
		return "", common.Errorf("unknown status %q: %w", raw, common.ErrValidation)
	}
}
