package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"isiboard/internal/app/search"
	"isiboard/internal/app/stats"
	"isiboard/internal/app/view"
	"isiboard/internal/common"
	"isiboard/internal/domain/model"
	"isiboard/internal/upstream"

	"github.com/gosimple/slug"
)

type ChallengeService struct {
	resources  *Resources
	client     *upstream.Client
	controller *view.Controller
}

func NewChallengeService(resources *Resources, client *upstream.Client, controller *view.Controller) *ChallengeService {
	return &ChallengeService{resources: resources, client: client, controller: controller}
}

type ChallengeListQuery struct {
	Status         model.PublishStatus
	Q              string
	OrderBy        string
	OrderDirection string
}

type ChallengeRow struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	ShortDescription string              `json:"short_description"`
	Difficulty       model.Difficulty    `json:"difficulty"`
	DifficultyColor  string              `json:"difficulty_color"`
	RewardPoints     int                 `json:"reward_points"`
	EstimatedTime    string              `json:"estimated_time"`
	Status           model.PublishStatus `json:"status"`
	Tags             []TagBadge          `json:"tags"`
	Stats            *model.Statistics   `json:"statistics,omitempty"`
	Band             *stats.RateBand     `json:"band,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

type ChallengeListComponent struct {
	Rows  []ChallengeRow `json:"rows"`
	Total int            `json:"total"`
	Meta  ResourceMeta   `json:"meta"`
}

// List serves the already-fetched challenges with local status filter, search
// and sort applied. force refetches first.
func (s *ChallengeService) List(ctx context.Context, q ChallengeListQuery, force bool) ChallengeListComponent {
	if force {
		s.resources.Challenges.Refresh(ctx)
	} else {
		s.resources.Challenges.Ensure(ctx)
	}
	snap := s.resources.Challenges.Snapshot()

	items := snap.Data
	if q.Status != "" {
		items = search.ChallengesByStatus(items, q.Status)
	}
	items = search.Challenges(items, q.Q)
	items = search.SortChallenges(items, q.OrderBy, q.OrderDirection)

	rows := make([]ChallengeRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, challengeRow(item))
	}
	return ChallengeListComponent{Rows: rows, Total: len(rows), Meta: metaOf(snap)}
}

func challengeRow(c model.Challenge) ChallengeRow {
	row := ChallengeRow{
		ID:               c.ID,
		Title:            c.Title,
		ShortDescription: c.ShortDescription,
		Difficulty:       c.Difficulty,
		DifficultyColor:  stats.DifficultyColor(c.Difficulty),
		RewardPoints:     c.RewardPoints,
		EstimatedTime:    c.EstimatedTime,
		Status:           c.Status,
		Tags:             tagBadges(c.Tags),
		Stats:            c.Stats,
		CreatedAt:        c.CreatedAt,
	}
	if c.Stats != nil {
		band := stats.Band(c.Stats.PassRate)
		row.Band = &band
	}
	return row
}

func tagBadges(tags []string) []TagBadge {
	badges := make([]TagBadge, 0, len(tags))
	for i, tag := range tags {
		badges = append(badges, TagBadge{Name: tag, Color: stats.TagColor(i)})
	}
	return badges
}

type ChallengeDetailsComponent struct {
	Challenge model.Challenge `json:"challenge"`
	Band      *stats.RateBand `json:"band,omitempty"`
	Meta      ResourceMeta    `json:"meta"`
}

// Details serves one challenge with its full test cases. The detail slot is
// keyed: navigating to another challenge resets it.
func (s *ChallengeService) Details(ctx context.Context, id string, force bool) (ChallengeDetailsComponent, error) {
	if id == "" {
		return ChallengeDetailsComponent{}, fmt.Errorf("%w: challenge id is required", common.ErrBadRequest)
	}
	s.resources.ChallengeDetails.Load(ctx, id)
	if force {
		s.resources.ChallengeDetails.Refresh(ctx)
	}
	snap := s.resources.ChallengeDetails.Snapshot()

	component := ChallengeDetailsComponent{Challenge: snap.Data, Meta: metaOf(snap)}
	if snap.Data.Stats != nil {
		band := stats.Band(snap.Data.Stats.PassRate)
		component.Band = &band
	}
	return component, nil
}

type EditorComponent struct {
	Draft model.ChallengeDraft `json:"draft"`
	IsNew bool                 `json:"is_new"`
}

// UpdateEditorRequest carries partial field updates; nil fields are left
// alone so the editor can autosave one field at a time.
type UpdateEditorRequest struct {
	Title             *string           `json:"title,omitempty"`
	ShortDescription  *string           `json:"short_description,omitempty"`
	ProblemStatement  *string           `json:"problem_statement,omitempty"`
	Difficulty        *model.Difficulty `json:"difficulty,omitempty"`
	RewardPoints      *int              `json:"reward_points,omitempty"`
	EstimatedTime     *string           `json:"estimated_time,omitempty"`
	Tags              *[]string         `json:"tags,omitempty"`
	SendNotifications *bool             `json:"send_notifications,omitempty"`
}

type TestCaseRequest struct {
	InputData      []string `json:"input_data"`
	ExpectedOutput string   `json:"expected_output"`
	Explanation    string   `json:"explanation"`
	IsHidden       bool     `json:"is_hidden"`
	IsExample      bool     `json:"is_example"`
	PointsWeight   float64  `json:"points_weight"`
}

// Editor returns the admin's current draft, creating a fresh one if none is
// open. A fresh draft starts with a single empty example test case.
func (s *ChallengeService) Editor(ctx context.Context, adminID string) (EditorComponent, error) {
	state, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		if state.Editor == nil {
			draft := newDraft()
			state.Editor = &draft
		}
		return nil
	})
	if err != nil {
		return EditorComponent{}, err
	}
	return editorComponent(state), nil
}

// LoadIntoEditor replaces the draft with a fresh copy of an existing
// challenge fetched from upstream.
func (s *ChallengeService) LoadIntoEditor(ctx context.Context, adminID, challengeID string) (EditorComponent, error) {
	if challengeID == "" {
		return EditorComponent{}, fmt.Errorf("%w: challenge id is required", common.ErrBadRequest)
	}
	challenge, err := s.client.Challenge(ctx, challengeID)
	if err != nil {
		return EditorComponent{}, err
	}
	draft := draftFromChallenge(challenge)
	state, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		state.Editor = &draft
		return nil
	})
	if err != nil {
		return EditorComponent{}, err
	}
	return editorComponent(state), nil
}

// UpdateEditor applies partial field updates to the draft and persists it.
func (s *ChallengeService) UpdateEditor(ctx context.Context, adminID string, req UpdateEditorRequest) (EditorComponent, error) {
	state, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		if state.Editor == nil {
			draft := newDraft()
			state.Editor = &draft
		}
		draft := state.Editor
		if req.Title != nil {
			draft.Title = *req.Title
		}
		if req.ShortDescription != nil {
			draft.ShortDescription = *req.ShortDescription
		}
		if req.ProblemStatement != nil {
			draft.ProblemStatement = *req.ProblemStatement
		}
		if req.Difficulty != nil {
			switch *req.Difficulty {
			case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
				draft.Difficulty = *req.Difficulty
			default:
				return fmt.Errorf("%w: unknown difficulty %q", common.ErrValidation, *req.Difficulty)
			}
		}
		if req.RewardPoints != nil {
			draft.RewardPoints = *req.RewardPoints
		}
		if req.EstimatedTime != nil {
			draft.EstimatedTime = *req.EstimatedTime
		}
		if req.Tags != nil {
			draft.Tags = normalizeTags(*req.Tags)
		}
		if req.SendNotifications != nil {
			draft.SendNotifications = *req.SendNotifications
		}
		draft.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return EditorComponent{}, err
	}
	return editorComponent(state), nil
}

// AddTestCase appends a row with a fresh ephemeral key.
func (s *ChallengeService) AddTestCase(ctx context.Context, adminID string, req TestCaseRequest) (EditorComponent, error) {
	state, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		if state.Editor == nil {
			draft := newDraft()
			state.Editor = &draft
		}
		state.Editor.TestCases = append(state.Editor.TestCases, draftTestCase(req))
		state.Editor.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return EditorComponent{}, err
	}
	return editorComponent(state), nil
}

func (s *ChallengeService) UpdateTestCase(ctx context.Context, adminID, key string, req TestCaseRequest) (EditorComponent, error) {
	state, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		if state.Editor == nil {
			return fmt.Errorf("%w: no draft open", common.ErrNotFound)
		}
		for i := range state.Editor.TestCases {
			if state.Editor.TestCases[i].Key == key {
				updated := draftTestCase(req)
				updated.Key = key
				state.Editor.TestCases[i] = updated
				state.Editor.UpdatedAt = time.Now()
				return nil
			}
		}
		return fmt.Errorf("%w: test case %q", common.ErrNotFound, key)
	})
	if err != nil {
		return EditorComponent{}, err
	}
	return editorComponent(state), nil
}

// RemoveTestCase rejects removing the last row: a draft always holds at
// least one test case.
func (s *ChallengeService) RemoveTestCase(ctx context.Context, adminID, key string) (EditorComponent, error) {
	state, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		if state.Editor == nil {
			return fmt.Errorf("%w: no draft open", common.ErrNotFound)
		}
		if len(state.Editor.TestCases) <= 1 {
			return fmt.Errorf("%w: a challenge needs at least one test case", common.ErrValidation)
		}
		for i := range state.Editor.TestCases {
			if state.Editor.TestCases[i].Key == key {
				state.Editor.TestCases = append(state.Editor.TestCases[:i], state.Editor.TestCases[i+1:]...)
				state.Editor.UpdatedAt = time.Now()
				return nil
			}
		}
		return fmt.Errorf("%w: test case %q", common.ErrNotFound, key)
	})
	if err != nil {
		return EditorComponent{}, err
	}
	return editorComponent(state), nil
}

type SaveResult struct {
	Challenge model.Challenge  `json:"challenge"`
	Action    model.SaveAction `json:"action"`
}

// Save posts the draft upstream with the given action. Publishing validates
// the required fields first. On success the draft is cleared and the
// challenges list is refreshed.
func (s *ChallengeService) Save(ctx context.Context, adminID string, action model.SaveAction) (*SaveResult, error) {
	if action != model.ActionSaveDraft && action != model.ActionPublish {
		return nil, fmt.Errorf("%w: unknown action %q", common.ErrValidation, action)
	}

	state, err := s.controller.Current(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if state.Editor == nil {
		return nil, fmt.Errorf("%w: no draft open", common.ErrNotFound)
	}
	draft := *state.Editor

	if action == model.ActionPublish {
		if err := validateForPublish(draft); err != nil {
			return nil, err
		}
	}

	saved, err := s.client.SaveChallenge(ctx, draft, action)
	if err != nil {
		return nil, err
	}

	if _, err := s.controller.Update(ctx, adminID, func(state *view.State) error {
		state.Editor = nil
		return nil
	}); err != nil {
		return nil, err
	}
	s.resources.Challenges.Refresh(ctx)

	return &SaveResult{Challenge: saved, Action: action}, nil
}

func validateForPublish(draft model.ChallengeDraft) error {
	var missing []string
	if strings.TrimSpace(draft.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(draft.ShortDescription) == "" {
		missing = append(missing, "short_description")
	}
	if strings.TrimSpace(draft.ProblemStatement) == "" {
		missing = append(missing, "problem_statement")
	}
	if len(draft.TestCases) == 0 {
		missing = append(missing, "test_cases")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", common.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func editorComponent(state view.State) EditorComponent {
	draft := model.ChallengeDraft{}
	if state.Editor != nil {
		draft = *state.Editor
	}
	return EditorComponent{Draft: draft, IsNew: draft.ChallengeID == ""}
}

func newDraft() model.ChallengeDraft {
	return model.ChallengeDraft{
		Difficulty: model.DifficultyEasy,
		Tags:       []string{},
		TestCases: []model.DraftTestCase{
			{Key: testCaseKey(), InputData: []string{}, IsExample: true, PointsWeight: 1},
		},
		UpdatedAt: time.Now(),
	}
}

func draftFromChallenge(c model.Challenge) model.ChallengeDraft {
	cases := make([]model.DraftTestCase, 0, len(c.TestCases))
	for _, tc := range c.TestCases {
		cases = append(cases, model.DraftTestCase{
			Key:            testCaseKey(),
			InputData:      tc.InputData,
			ExpectedOutput: tc.ExpectedOutput,
			Explanation:    tc.Explanation,
			IsHidden:       tc.IsHidden,
			IsExample:      tc.IsExample,
			PointsWeight:   tc.PointsWeight,
		})
	}
	if len(cases) == 0 {
		cases = append(cases, model.DraftTestCase{Key: testCaseKey(), InputData: []string{}, IsExample: true, PointsWeight: 1})
	}
	return model.ChallengeDraft{
		ChallengeID:       c.ID,
		Title:             c.Title,
		ShortDescription:  c.ShortDescription,
		ProblemStatement:  c.ProblemStatement,
		Difficulty:        c.Difficulty,
		RewardPoints:      c.RewardPoints,
		EstimatedTime:     c.EstimatedTime,
		Tags:              normalizeTags(c.Tags),
		SendNotifications: c.SendNotifications,
		TestCases:         cases,
		UpdatedAt:         time.Now(),
	}
}

func draftTestCase(req TestCaseRequest) model.DraftTestCase {
	weight := req.PointsWeight
	if weight == 0 {
		weight = 1
	}
	return model.DraftTestCase{
		Key:            testCaseKey(),
		InputData:      req.InputData,
		ExpectedOutput: req.ExpectedOutput,
		Explanation:    req.Explanation,
		IsHidden:       req.IsHidden,
		IsExample:      req.IsExample,
		PointsWeight:   weight,
	}
}

// testCaseKey builds the ephemeral timestamp-based key for a draft test case.
// The server replaces these with real IDs on save.
func testCaseKey() string {
	return fmt.Sprintf("tc-%d", time.Now().UnixNano())
}

// normalizeTags slugifies, deduplicates and keeps the order of the given
// tags.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		cleaned := slug.Make(tag)
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		normalized = append(normalized, cleaned)
	}
	return normalized
}
