package service

import (
	"context"
	"fmt"
	"time"

	"isiboard/internal/app/search"
	"isiboard/internal/common"
	"isiboard/internal/metrics"
)

type FilesService struct {
	resources *Resources
	metrics   *metrics.Metrics
}

func NewFilesService(resources *Resources, m *metrics.Metrics) *FilesService {
	return &FilesService{resources: resources, metrics: m}
}

type FileRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Deleting  bool      `json:"deleting,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FilesComponent struct {
	StudentID   string       `json:"student_id"`
	Rows        []FileRow    `json:"rows"`
	Total       int          `json:"total"`
	DeleteError string       `json:"delete_error,omitempty"`
	Meta        ResourceMeta `json:"meta"`
}

// List serves one student's saved files. The slot is keyed by student:
// switching students resets it.
func (s *FilesService) List(ctx context.Context, studentID, q string, force bool) (FilesComponent, error) {
	if studentID == "" {
		return FilesComponent{}, fmt.Errorf("%w: student id is required", common.ErrBadRequest)
	}
	s.resources.StudentFiles.Load(ctx, studentID)
	if force {
		s.resources.StudentFiles.Refresh(ctx)
	}
	snap := s.resources.StudentFiles.Snapshot()

	deleting := make(map[string]struct{}, len(snap.Deleting))
	for _, id := range snap.Deleting {
		deleting[id] = struct{}{}
	}

	files := search.Files(snap.Data, q)
	rows := make([]FileRow, 0, len(files))
	for _, file := range files {
		row := FileRow{ID: file.ID, Name: file.Name, CreatedAt: file.CreatedAt, UpdatedAt: file.UpdatedAt}
		_, row.Deleting = deleting[file.ID]
		rows = append(rows, row)
	}
	return FilesComponent{
		StudentID:   studentID,
		Rows:        rows,
		Total:       len(rows),
		DeleteError: snap.DeleteErr,
		Meta:        metaOf(snap.Snapshot),
	}, nil
}

// Delete removes a student's file with the same optimistic contract as quiz
// deletion. The owning student travels in the upstream request body.
func (s *FilesService) Delete(ctx context.Context, studentID, fileID string) error {
	if studentID == "" || fileID == "" {
		return fmt.Errorf("%w: student id and file id are required", common.ErrBadRequest)
	}
	// Point the slot at this student first so the optimistic removal hits
	// the right cached list.
	s.resources.StudentFiles.Load(ctx, studentID)
	err := s.resources.StudentFiles.Delete(ctx, fileID)
	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.metrics.IncDelete("file", outcome)
	}
	return err
}
