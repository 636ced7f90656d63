package service

import (
	"time"

	"isiboard/internal/app/resource"
)

// ResourceMeta is the fetch-state triplet every component carries: the
// status, error and freshness of the resource it was built from. A failed
// refresh shows up here while the stale data keeps rendering.
type ResourceMeta struct {
	Status    resource.Status `json:"status"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func metaOf[T any](snap resource.Snapshot[T]) ResourceMeta {
	return ResourceMeta{Status: snap.Status, Error: snap.Err, UpdatedAt: snap.UpdatedAt}
}

// TagBadge pairs a tag with its cycled display color.
type TagBadge struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
