package upstream

import (
	"strings"
	"time"

	"isiboard/internal/domain/model"
)

// Wire shapes for the IsiPython API. Fields the server sometimes omits are
// pointers so missing values can fall back to model defaults instead of being
// treated as errors.

type statisticsDTO struct {
	PassRate       *float64 `json:"pass_rate"`
	Attempts       *int     `json:"attempts"`
	Submissions    *int     `json:"submissions"`
	UsersAttempted *int     `json:"users_attempted"`
	UsersCompleted *int     `json:"users_completed"`
	UsersPassed    *int     `json:"users_passed"`
	AverageScore   *float64 `json:"average_score"`
}

func (d *statisticsDTO) toModel() *model.Statistics {
	if d == nil {
		return nil
	}
	stats := &model.Statistics{
		PassRate:       floatOrZero(d.PassRate),
		Attempts:       intOrZero(d.Attempts),
		UsersAttempted: intOrZero(d.UsersAttempted),
		UsersCompleted: intOrZero(d.UsersCompleted),
		AverageScore:   floatOrZero(d.AverageScore),
	}
	if stats.Attempts == 0 {
		stats.Attempts = intOrZero(d.Submissions)
	}
	if stats.UsersCompleted == 0 {
		stats.UsersCompleted = intOrZero(d.UsersPassed)
	}
	return stats
}

type testCaseDTO struct {
	ID             string   `json:"id"`
	InputData      []string `json:"input_data"`
	ExpectedOutput string   `json:"expected_output"`
	Explanation    string   `json:"explanation"`
	IsHidden       *bool    `json:"is_hidden"`
	IsExample      *bool    `json:"is_example"`
	PointsWeight   *float64 `json:"points_weight"`
}

func (d testCaseDTO) toModel() model.TestCase {
	return model.TestCase{
		ID:             d.ID,
		InputData:      sliceOrEmpty(d.InputData),
		ExpectedOutput: d.ExpectedOutput,
		Explanation:    d.Explanation,
		IsHidden:       boolOr(d.IsHidden, false),
		IsExample:      boolOr(d.IsExample, false),
		PointsWeight:   floatOrZero(d.PointsWeight),
	}
}

type challengeDTO struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	ShortDescription  string         `json:"short_description"`
	ProblemStatement  string         `json:"problem_statement"`
	DifficultyLevel   string         `json:"difficulty_level"`
	RewardPoints      *int           `json:"reward_points"`
	EstimatedTime     string         `json:"estimated_time"`
	Tags              []string       `json:"tags"`
	Status            string         `json:"status"`
	SendNotifications *bool          `json:"send_notifications"`
	TestCases         []testCaseDTO  `json:"test_cases"`
	Statistics        *statisticsDTO `json:"statistics"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

func (d challengeDTO) toModel() model.Challenge {
	cases := make([]model.TestCase, 0, len(d.TestCases))
	for _, tc := range d.TestCases {
		cases = append(cases, tc.toModel())
	}
	return model.Challenge{
		ID:                d.ID,
		Title:             d.Title,
		ShortDescription:  d.ShortDescription,
		ProblemStatement:  d.ProblemStatement,
		Difficulty:        parseDifficulty(d.DifficultyLevel),
		RewardPoints:      intOrZero(d.RewardPoints),
		EstimatedTime:     d.EstimatedTime,
		Tags:              sliceOrEmpty(d.Tags),
		Status:            parseStatus(d.Status),
		SendNotifications: boolOr(d.SendNotifications, false),
		TestCases:         cases,
		Stats:             d.Statistics.toModel(),
		CreatedAt:         parseTime(d.CreatedAt),
		UpdatedAt:         parseTime(d.UpdatedAt),
	}
}

type quizDTO struct {
	ID                     string         `json:"id"`
	Title                  string         `json:"title"`
	Description            string         `json:"description"`
	DueDate                string         `json:"due_date"`
	TimeLimitMinutes       *int           `json:"time_limit_minutes"`
	TotalPoints            *int           `json:"total_points"`
	TotalQuestions         *int           `json:"total_questions"`
	Status                 string         `json:"status"`
	AllowMultipleAttempts  *bool          `json:"allow_multiple_attempts"`
	SendNotifications      *bool          `json:"send_notifications"`
	ShowResultsImmediately *bool          `json:"show_results_immediately"`
	RandomizeQuestionOrder *bool          `json:"randomize_question_order"`
	Instructions           []string       `json:"instructions"`
	Statistics             *statisticsDTO `json:"statistics"`
	CreatedAt              string         `json:"created_at"`
	UpdatedAt              string         `json:"updated_at"`
}

func (d quizDTO) toModel() model.Quiz {
	return model.Quiz{
		ID:                     d.ID,
		Title:                  d.Title,
		Description:            d.Description,
		DueDate:                parseTimePtr(d.DueDate),
		TimeLimitMinutes:       intOrZero(d.TimeLimitMinutes),
		TotalPoints:            intOrZero(d.TotalPoints),
		TotalQuestions:         intOrZero(d.TotalQuestions),
		Status:                 parseStatus(d.Status),
		AllowMultipleAttempts:  boolOr(d.AllowMultipleAttempts, false),
		SendNotifications:      boolOr(d.SendNotifications, true),
		ShowResultsImmediately: boolOr(d.ShowResultsImmediately, true),
		RandomizeQuestionOrder: boolOr(d.RandomizeQuestionOrder, false),
		Instructions:           sliceOrEmpty(d.Instructions),
		Stats:                  d.Statistics.toModel(),
		CreatedAt:              parseTime(d.CreatedAt),
		UpdatedAt:              parseTime(d.UpdatedAt),
	}
}

type leaderboardEntryDTO struct {
	Rank               *int     `json:"rank"`
	UserID             string   `json:"user_id"`
	FullName           string   `json:"full_name"`
	TotalScore         *float64 `json:"total_score"`
	AveragePercentage  *float64 `json:"average_percentage"`
	CompletedCount     *int     `json:"completed_count"`
	LastCompletionDate string   `json:"last_completion_date"`
}

// toModel defaults a missing rank to the 1-based list position; podium
// rendering depends on ranks being dense.
func (d leaderboardEntryDTO) toModel(position int) model.LeaderboardEntry {
	rank := intOrZero(d.Rank)
	if rank == 0 {
		rank = position + 1
	}
	return model.LeaderboardEntry{
		Rank:               rank,
		UserID:             d.UserID,
		FullName:           d.FullName,
		TotalScore:         floatOrZero(d.TotalScore),
		AveragePercentage:  floatOrZero(d.AveragePercentage),
		CompletedCount:     intOrZero(d.CompletedCount),
		LastCompletionDate: parseTimePtr(d.LastCompletionDate),
	}
}

type savedFileDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	FileName  string `json:"file_name"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (d savedFileDTO) toModel() model.SavedFile {
	name := d.FileName
	if name == "" {
		name = d.Name
	}
	return model.SavedFile{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      name,
		Content:   d.Content,
		CreatedAt: parseTime(d.CreatedAt),
		UpdatedAt: parseTime(d.UpdatedAt),
	}
}

type activityItemDTO struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}

type dashboardStatsDTO struct {
	TotalStudents    *int              `json:"total_students"`
	TotalChallenges  *int              `json:"total_challenges"`
	ActiveChallenges *int              `json:"active_challenges"`
	TotalQuizzes     *int              `json:"total_quizzes"`
	ActiveQuizzes    *int              `json:"active_quizzes"`
	TotalSubmissions *int              `json:"total_submissions"`
	RecentActivity   []activityItemDTO `json:"recent_activity"`
}

func (d dashboardStatsDTO) toModel() model.DashboardStats {
	activity := make([]model.ActivityItem, 0, len(d.RecentActivity))
	for _, item := range d.RecentActivity {
		activity = append(activity, model.ActivityItem{
			Type:      item.Type,
			Title:     item.Title,
			Detail:    item.Detail,
			Timestamp: parseTime(item.Timestamp),
		})
	}
	return model.DashboardStats{
		TotalStudents:    intOrZero(d.TotalStudents),
		TotalChallenges:  intOrZero(d.TotalChallenges),
		ActiveChallenges: intOrZero(d.ActiveChallenges),
		TotalQuizzes:     intOrZero(d.TotalQuizzes),
		ActiveQuizzes:    intOrZero(d.ActiveQuizzes),
		TotalSubmissions: intOrZero(d.TotalSubmissions),
		RecentActivity:   activity,
	}
}

func parseDifficulty(raw string) model.Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return model.DifficultyEasy
	case "hard":
		return model.DifficultyHard
	default:
		return model.DifficultyMedium
	}
}

func parseStatus(raw string) model.PublishStatus {
	if strings.EqualFold(strings.TrimSpace(raw), string(model.StatusPublished)) {
		return model.StatusPublished
	}
	return model.StatusDraft
}

// parseTime is lenient about upstream timestamp formats; unparseable values
// become the zero time rather than an error.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimePtr(raw string) *time.Time {
	t := parseTime(raw)
	if t.IsZero() {
		return nil
	}
	return &t
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func sliceOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
