package service

import (
	"context"
	"fmt"

	"isiboard/internal/app/resource"
	"isiboard/internal/app/stats"
	"isiboard/internal/app/view"
	"isiboard/internal/common"
	"isiboard/internal/domain/model"
	"isiboard/internal/domain/repository"
	"isiboard/internal/platform/config"
)

// DashboardService owns the home and analytics components and resolves the
// persisted current view into its component payload.
type DashboardService struct {
	resources  *Resources
	controller *view.Controller
	userRepo   repository.UserRepository
	challenges *ChallengeService
	quizzes    *QuizService
	boards     *LeaderboardService
	files      *FilesService
}

func NewDashboardService(
	resources *Resources,
	controller *view.Controller,
	userRepo repository.UserRepository,
	challenges *ChallengeService,
	quizzes *QuizService,
	boards *LeaderboardService,
	files *FilesService,
) *DashboardService {
	return &DashboardService{
		resources:  resources,
		controller: controller,
		userRepo:   userRepo,
		challenges: challenges,
		quizzes:    quizzes,
		boards:     boards,
		files:      files,
	}
}

type StatCard struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type HomeComponent struct {
	Cards          []StatCard           `json:"cards"`
	RecentActivity []model.ActivityItem `json:"recent_activity"`
	Meta           ResourceMeta         `json:"meta"`
}

func (s *DashboardService) Home(ctx context.Context, force bool) HomeComponent {
	if force {
		s.resources.Stats.Refresh(ctx)
	} else {
		s.resources.Stats.Ensure(ctx)
	}
	snap := s.resources.Stats.Snapshot()
	data := snap.Data

	return HomeComponent{
		Cards: []StatCard{
			{Label: "Students", Value: data.TotalStudents},
			{Label: "Challenges", Value: data.TotalChallenges},
			{Label: "Active Challenges", Value: data.ActiveChallenges},
			{Label: "Quizzes", Value: data.TotalQuizzes},
			{Label: "Submissions", Value: data.TotalSubmissions},
		},
		RecentActivity: data.RecentActivity,
		Meta:           metaOf(snap),
	}
}

type AnalyticsRow struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Kind       string           `json:"kind"`
	Difficulty model.Difficulty `json:"difficulty"`
	Stats      model.Statistics `json:"statistics"`
	Band       stats.RateBand   `json:"band"`
}

type AnalyticsComponent struct {
	Challenges     []AnalyticsRow  `json:"challenges"`
	Quizzes        []AnalyticsRow  `json:"quizzes"`
	Summary        stats.Aggregate `json:"summary"`
	Failed         bool            `json:"failed"`
	ChallengesMeta ResourceMeta    `json:"challenges_meta"`
	QuizzesMeta    ResourceMeta    `json:"quizzes_meta"`
}

// Analytics builds per-item rows and the aggregate summary from the
// challenges and quizzes pair, fetched concurrently. Only published items
// appear; statistics accrue only after publishing.
func (s *DashboardService) Analytics(ctx context.Context, force bool) AnalyticsComponent {
	var err error
	if force {
		err = resource.RefreshPair(ctx, s.resources.Challenges, s.resources.Quizzes)
	} else {
		err = resource.EnsurePair(ctx, s.resources.Challenges, s.resources.Quizzes)
	}

	challengeSnap := s.resources.Challenges.Snapshot()
	quizSnap := s.resources.Quizzes.Snapshot()

	var collected []model.Statistics
	var challengeRows []AnalyticsRow
	for _, c := range challengeSnap.Data {
		if c.Status != model.StatusPublished {
			continue
		}
		row := AnalyticsRow{ID: c.ID, Title: c.Title, Kind: "challenge", Difficulty: c.Difficulty}
		if c.Stats != nil {
			row.Stats = *c.Stats
			collected = append(collected, *c.Stats)
		}
		row.Band = stats.Band(row.Stats.PassRate)
		challengeRows = append(challengeRows, row)
	}

	var quizRows []AnalyticsRow
	for _, q := range quizSnap.Data {
		if q.Status != model.StatusPublished {
			continue
		}
		row := AnalyticsRow{
			ID:         q.ID,
			Title:      q.Title,
			Kind:       "quiz",
			Difficulty: stats.ClassifyQuiz(q.TimeLimitMinutes, q.TotalPoints, q.TotalQuestions),
		}
		if q.Stats != nil {
			row.Stats = *q.Stats
			collected = append(collected, *q.Stats)
		}
		row.Band = stats.Band(row.Stats.PassRate)
		quizRows = append(quizRows, row)
	}

	return AnalyticsComponent{
		Challenges:     challengeRows,
		Quizzes:        quizRows,
		Summary:        stats.Summarize(collected),
		Failed:         err != nil,
		ChallengesMeta: metaOf(challengeSnap),
		QuizzesMeta:    metaOf(quizSnap.Snapshot),
	}
}

type SettingsComponent struct {
	Account         *model.User `json:"account"`
	RefreshInterval string      `json:"refresh_interval"`
	UpstreamBaseURL string      `json:"upstream_base_url"`
}

func (s *DashboardService) Settings(ctx context.Context, adminID string) (SettingsComponent, error) {
	user, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil {
		return SettingsComponent{}, err
	}
	user.HashedPassword = ""
	return SettingsComponent{
		Account:         user,
		RefreshInterval: config.AppConfig.RefreshInterval,
		UpstreamBaseURL: config.AppConfig.UpstreamBaseURL,
	}, nil
}

// ViewPayload is the dashboard surface: the persisted view plus exactly that
// view's component.
type ViewPayload struct {
	View      view.View   `json:"view"`
	Nav       view.Nav    `json:"nav"`
	LastRoute string      `json:"last_route"`
	Component interface{} `json:"component"`
}

// Resolve loads the admin's persisted state and builds the component for the
// current view.
func (s *DashboardService) Resolve(ctx context.Context, adminID string) (ViewPayload, error) {
	state, err := s.controller.Current(ctx, adminID)
	if err != nil {
		return ViewPayload{}, err
	}
	component, err := s.componentFor(ctx, adminID, state)
	if err != nil {
		return ViewPayload{}, err
	}
	return ViewPayload{
		View:      state.CurrentView,
		Nav:       state.Nav,
		LastRoute: state.LastRoute,
		Component: component,
	}, nil
}

// componentFor is the exhaustive dispatch over the closed view set. A view
// that reaches default is a programming error, not admin input.
func (s *DashboardService) componentFor(ctx context.Context, adminID string, state view.State) (interface{}, error) {
	switch state.CurrentView {
	case view.Home:
		return s.Home(ctx, false), nil
	case view.Analytics:
		return s.Analytics(ctx, false), nil
	case view.Challenges:
		return s.challenges.List(ctx, ChallengeListQuery{Status: model.StatusPublished}, false), nil
	case view.ChallengeDrafts:
		return s.challenges.List(ctx, ChallengeListQuery{Status: model.StatusDraft}, false), nil
	case view.ChallengeDetails:
		return orErr(s.challenges.Details(ctx, state.Nav.ChallengeID, false))
	case view.ChallengeCreate:
		return orErr(s.challenges.Editor(ctx, adminID))
	case view.ChallengeEdit:
		if state.Nav.ChallengeID != "" && (state.Editor == nil || state.Editor.ChallengeID != state.Nav.ChallengeID) {
			return orErr(s.challenges.LoadIntoEditor(ctx, adminID, state.Nav.ChallengeID))
		}
		return orErr(s.challenges.Editor(ctx, adminID))
	case view.Quizzes:
		return s.quizzes.List(ctx, QuizListQuery{Status: model.StatusPublished}, false), nil
	case view.QuizDrafts:
		return s.quizzes.List(ctx, QuizListQuery{Status: model.StatusDraft}, false), nil
	case view.QuizDetails:
		return orErr(s.quizzes.Details(ctx, state.Nav.QuizID))
	case view.Leaderboards:
		return s.boards.Combined(ctx, false), nil
	case view.ChallengesLeaderboard:
		return s.boards.Challenges(ctx, false), nil
	case view.QuizzesLeaderboard:
		return s.boards.Quizzes(ctx, false), nil
	case view.StudentFiles:
		return orErr(s.files.List(ctx, state.Nav.StudentID, "", false))
	case view.Settings:
		return orErr(s.Settings(ctx, adminID))
	default:
		return nil, fmt.Errorf("%w: unhandled view %q", common.ErrInternalServer, state.CurrentView)
	}
}

// orErr collapses a typed (component, error) pair into the interface{} the
// dispatch returns.
func orErr[T any](component T, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return component, nil
}
