package model

import (
	"time"
)

type SaveAction string

const (
	ActionSaveDraft SaveAction = "save_draft"
	ActionPublish   SaveAction = "publish"
)

// ChallengeDraft is the editor's working copy of a challenge. It is part of
// an admin's persisted view state, not a server-side entity; ChallengeID is
// empty until the draft has been saved upstream at least once.
type ChallengeDraft struct {
	ChallengeID       string          `json:"challenge_id,omitempty"`
	Title             string          `json:"title"`
	ShortDescription  string          `json:"short_description"`
	ProblemStatement  string          `json:"problem_statement"`
	Difficulty        Difficulty      `json:"difficulty"`
	RewardPoints      int             `json:"reward_points"`
	EstimatedTime     string          `json:"estimated_time"`
	Tags              []string        `json:"tags"`
	SendNotifications bool            `json:"send_notifications"`
	TestCases         []DraftTestCase `json:"test_cases"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DraftTestCase carries an ephemeral timestamp-based Key so the editor can
// address rows before the server assigns real IDs on save.
type DraftTestCase struct {
	Key            string   `json:"key"`
	InputData      []string `json:"input_data"`
	ExpectedOutput string   `json:"expected_output"`
	Explanation    string   `json:"explanation,omitempty"`
	IsHidden       bool     `json:"is_hidden"`
	IsExample      bool     `json:"is_example"`
	PointsWeight   float64  `json:"points_weight"`
}
