package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"isiboard/internal/domain/model"
)

// Challenges fetches all challenges (drafts and published); callers filter by
// status. order_by/order_direction are passed through to the upstream API.
func (c *Client) Challenges(ctx context.Context, orderBy, orderDirection string) ([]model.Challenge, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/admin/challenges", orderQuery(orderBy, orderDirection), nil)
	if err != nil {
		return nil, err
	}
	var dtos []challengeDTO
	if err := json.Unmarshal(unwrapList(raw, "challenges"), &dtos); err != nil {
		return nil, fmt.Errorf("upstream.Challenges: decode: %w", err)
	}
	challenges := make([]model.Challenge, 0, len(dtos))
	for _, dto := range dtos {
		challenges = append(challenges, dto.toModel())
	}
	return challenges, nil
}

// Challenge fetches one challenge with its full test cases.
func (c *Client) Challenge(ctx context.Context, id string) (model.Challenge, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/admin/challenges/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return model.Challenge{}, err
	}
	var dto challengeDTO
	if err := json.Unmarshal(unwrapList(raw, "challenge"), &dto); err != nil {
		return model.Challenge{}, fmt.Errorf("upstream.Challenge: decode: %w", err)
	}
	return dto.toModel(), nil
}

type saveTestCasePayload struct {
	InputData      []string `json:"input_data"`
	ExpectedOutput string   `json:"expected_output"`
	Explanation    string   `json:"explanation"`
	IsHidden       bool     `json:"is_hidden"`
	IsExample      bool     `json:"is_example"`
	PointsWeight   float64  `json:"points_weight"`
}

type saveChallengePayload struct {
	ID                string                `json:"id,omitempty"`
	Title             string                `json:"title"`
	ShortDescription  string                `json:"short_description"`
	ProblemStatement  string                `json:"problem_statement"`
	DifficultyLevel   string                `json:"difficulty_level"`
	RewardPoints      int                   `json:"reward_points"`
	EstimatedTime     string                `json:"estimated_time"`
	Tags              []string              `json:"tags"`
	SendNotifications bool                  `json:"send_notifications"`
	TestCases         []saveTestCasePayload `json:"test_cases"`
	Action            string                `json:"action"`
}

// SaveChallenge posts an editor draft with action "save_draft" or "publish".
// Draft test-case keys are ephemeral and not sent; the server assigns real
// IDs on save.
func (c *Client) SaveChallenge(ctx context.Context, draft model.ChallengeDraft, action model.SaveAction) (model.Challenge, error) {
	payload := saveChallengePayload{
		ID:                draft.ChallengeID,
		Title:             draft.Title,
		ShortDescription:  draft.ShortDescription,
		ProblemStatement:  draft.ProblemStatement,
		DifficultyLevel:   string(draft.Difficulty),
		RewardPoints:      draft.RewardPoints,
		EstimatedTime:     draft.EstimatedTime,
		Tags:              sliceOrEmpty(draft.Tags),
		SendNotifications: draft.SendNotifications,
		TestCases:         make([]saveTestCasePayload, 0, len(draft.TestCases)),
		Action:            string(action),
	}
	for _, tc := range draft.TestCases {
		payload.TestCases = append(payload.TestCases, saveTestCasePayload{
			InputData:      sliceOrEmpty(tc.InputData),
			ExpectedOutput: tc.ExpectedOutput,
			Explanation:    tc.Explanation,
			IsHidden:       tc.IsHidden,
			IsExample:      tc.IsExample,
			PointsWeight:   tc.PointsWeight,
		})
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/admin/challenges", nil, payload)
	if err != nil {
		return model.Challenge{}, err
	}
	var dto challengeDTO
	if err := json.Unmarshal(unwrapList(raw, "challenge"), &dto); err != nil {
		return model.Challenge{}, fmt.Errorf("upstream.SaveChallenge: decode: %w", err)
	}
	return dto.toModel(), nil
}
