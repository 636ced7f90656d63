package model

import (
	"time"
)

// LeaderboardEntry covers both boards: the challenges board scores by
// TotalScore, the quizzes board by AveragePercentage. Rank is assigned
// server-side and assumed dense and 1-based.
type LeaderboardEntry struct {
	Rank               int        `json:"rank"`
	UserID             string     `json:"user_id"`
	FullName           string     `json:"full_name"`
	TotalScore         float64    `json:"total_score,omitempty"`
	AveragePercentage  float64    `json:"average_percentage,omitempty"`
	CompletedCount     int        `json:"completed_count"`
	LastCompletionDate *time.Time `json:"last_completion_date,omitempty"`
}
