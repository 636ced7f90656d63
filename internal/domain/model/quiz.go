package model

import (
	"time"
)

type Quiz struct {
	ID                     string        `json:"id"`
	Title                  string        `json:"title"`
	Description            string        `json:"description"`
	DueDate                *time.Time    `json:"due_date,omitempty"`
	TimeLimitMinutes       int           `json:"time_limit_minutes"`
	TotalPoints            int           `json:"total_points"`
	TotalQuestions         int           `json:"total_questions"`
	Status                 PublishStatus `json:"status"`
	AllowMultipleAttempts  bool          `json:"allow_multiple_attempts"`
	SendNotifications      bool          `json:"send_notifications"`
	ShowResultsImmediately bool          `json:"show_results_immediately"`
	RandomizeQuestionOrder bool          `json:"randomize_question_order"`
	Instructions           []string      `json:"instructions"`
	Stats                  *Statistics   `json:"statistics,omitempty"` // Accrues only after publishing
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}
