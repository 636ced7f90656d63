package service

import (
	"context"
	"fmt"
	"time"

	"isiboard/internal/app/search"
	"isiboard/internal/app/stats"
	"isiboard/internal/common"
	"isiboard/internal/domain/model"
	"isiboard/internal/metrics"
)

type QuizService struct {
	resources *Resources
	metrics   *metrics.Metrics
}

func NewQuizService(resources *Resources, m *metrics.Metrics) *QuizService {
	return &QuizService{resources: resources, metrics: m}
}

type QuizListQuery struct {
	Status         model.PublishStatus
	Q              string
	OrderBy        string
	OrderDirection string
}

type QuizRow struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	TimeLimitMinutes int                 `json:"time_limit_minutes"`
	TotalPoints      int                 `json:"total_points"`
	TotalQuestions   int                 `json:"total_questions"`
	Difficulty       model.Difficulty    `json:"difficulty"`
	DifficultyColor  string              `json:"difficulty_color"`
	Status           model.PublishStatus `json:"status"`
	Stats            *model.Statistics   `json:"statistics,omitempty"`
	Band             *stats.RateBand     `json:"band,omitempty"`
	Deleting         bool                `json:"deleting,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

type QuizListComponent struct {
	Rows        []QuizRow    `json:"rows"`
	Total       int          `json:"total"`
	DeleteError string       `json:"delete_error,omitempty"`
	Meta        ResourceMeta `json:"meta"`
}

// List serves the already-fetched quizzes with local filtering applied. Quiz
// difficulty is not stored upstream; it is derived from time limit, points
// and question count.
func (s *QuizService) List(ctx context.Context, q QuizListQuery, force bool) QuizListComponent {
	if force {
		s.resources.Quizzes.Refresh(ctx)
	} else {
		s.resources.Quizzes.Ensure(ctx)
	}
	snap := s.resources.Quizzes.Snapshot()

	items := snap.Data
	if q.Status != "" {
		items = search.QuizzesByStatus(items, q.Status)
	}
	items = search.Quizzes(items, q.Q)
	items = search.SortQuizzes(items, q.OrderBy, q.OrderDirection)

	deleting := make(map[string]struct{}, len(snap.Deleting))
	for _, id := range snap.Deleting {
		deleting[id] = struct{}{}
	}

	rows := make([]QuizRow, 0, len(items))
	for _, item := range items {
		row := quizRow(item)
		_, row.Deleting = deleting[item.ID]
		rows = append(rows, row)
	}
	return QuizListComponent{
		Rows:        rows,
		Total:       len(rows),
		DeleteError: snap.DeleteErr,
		Meta:        metaOf(snap.Snapshot),
	}
}

func quizRow(q model.Quiz) QuizRow {
	difficulty := stats.ClassifyQuiz(q.TimeLimitMinutes, q.TotalPoints, q.TotalQuestions)
	row := QuizRow{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		DueDate:          q.DueDate,
		TimeLimitMinutes: q.TimeLimitMinutes,
		TotalPoints:      q.TotalPoints,
		TotalQuestions:   q.TotalQuestions,
		Difficulty:       difficulty,
		DifficultyColor:  stats.DifficultyColor(difficulty),
		Status:           q.Status,
		Stats:            q.Stats,
		CreatedAt:        q.CreatedAt,
	}
	if q.Stats != nil {
		band := stats.Band(q.Stats.PassRate)
		row.Band = &band
	}
	return row
}

type QuizDetailsComponent struct {
	Quiz       model.Quiz       `json:"quiz"`
	Difficulty model.Difficulty `json:"difficulty"`
	Band       *stats.RateBand  `json:"band,omitempty"`
	Meta       ResourceMeta     `json:"meta"`
}

// Details resolves one quiz out of the fetched list; there is no upstream
// endpoint for a single quiz.
func (s *QuizService) Details(ctx context.Context, id string) (QuizDetailsComponent, error) {
	if id == "" {
		return QuizDetailsComponent{}, fmt.Errorf("%w: quiz id is required", common.ErrBadRequest)
	}
	s.resources.Quizzes.Ensure(ctx)
	snap := s.resources.Quizzes.Snapshot()

	for _, quiz := range snap.Data {
		if quiz.ID == id {
			component := QuizDetailsComponent{
				Quiz:       quiz,
				Difficulty: stats.ClassifyQuiz(quiz.TimeLimitMinutes, quiz.TotalPoints, quiz.TotalQuestions),
				Meta:       metaOf(snap.Snapshot),
			}
			if quiz.Stats != nil {
				band := stats.Band(quiz.Stats.PassRate)
				component.Band = &band
			}
			return component, nil
		}
	}
	return QuizDetailsComponent{}, fmt.Errorf("%w: quiz %q", common.ErrNotFound, id)
}

// Delete removes the quiz optimistically: on success the row disappears from
// the cached list with no confirming re-fetch, on failure the list is
// untouched and the error clears itself after a few seconds.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: quiz id is required", common.ErrBadRequest)
	}
	err := s.resources.Quizzes.Delete(ctx, id)
	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.metrics.IncDelete("quiz", outcome)
	}
	return err
}
