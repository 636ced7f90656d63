package model

import (
	"time"
)

type Difficulty string
type PublishStatus string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"

	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
)

type Challenge struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	ShortDescription  string        `json:"short_description"`
	ProblemStatement  string        `json:"problem_statement"`
	Difficulty        Difficulty    `json:"difficulty"`
	RewardPoints      int           `json:"reward_points"`
	EstimatedTime     string        `json:"estimated_time"`
	Tags              []string      `json:"tags"`
	Status            PublishStatus `json:"status"`
	SendNotifications bool          `json:"send_notifications"`
	TestCases         []TestCase    `json:"test_cases,omitempty"` // Admin only view
	Stats             *Statistics   `json:"statistics,omitempty"` // Accrues only after publishing
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type TestCase struct {
	ID             string   `json:"id"`
	InputData      []string `json:"input_data"` // One entry per stdin line
	ExpectedOutput string   `json:"expected_output"`
	Explanation    string   `json:"explanation,omitempty"`
	IsHidden       bool     `json:"is_hidden"`
	IsExample      bool     `json:"is_example"`
	PointsWeight   float64  `json:"points_weight"`
}
