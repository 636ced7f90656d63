package model

import (
	"time"
)

// Statistics is the per-item performance record the upstream API attaches to
// published challenges and quizzes. Attempts counts submissions for a
// challenge and quiz attempts for a quiz.
type Statistics struct {
	PassRate       float64 `json:"pass_rate"`
	Attempts       int     `json:"attempts"`
	UsersAttempted int     `json:"users_attempted"`
	UsersCompleted int     `json:"users_completed"`
	AverageScore   float64 `json:"average_score"`
}

type DashboardStats struct {
	TotalStudents    int            `json:"total_students"`
	TotalChallenges  int            `json:"total_challenges"`
	ActiveChallenges int            `json:"active_challenges"`
	TotalQuizzes     int            `json:"total_quizzes"`
	ActiveQuizzes    int            `json:"active_quizzes"`
	TotalSubmissions int            `json:"total_submissions"`
	RecentActivity   []ActivityItem `json:"recent_activity"`
}

type ActivityItem struct {
	Type      string    `json:"type"` // "challenge" | "quiz" | "submission"
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
