package service

import (
	"context"

	"isiboard/internal/app/resource"
	"isiboard/internal/domain/model"
	"isiboard/internal/metrics"
	"isiboard/internal/upstream"

	"github.com/rs/zerolog"
)

// Resources is the set of server-lifetime data slots shared by every admin
// session, one per upstream data source.
type Resources struct {
	Stats            *resource.Resource[model.DashboardStats]
	Challenges       *resource.Resource[[]model.Challenge]
	Quizzes          *resource.ListResource[model.Quiz]
	ChallengeDetails *resource.KeyedResource[model.Challenge]
	ChallengeBoard   *resource.Resource[[]model.LeaderboardEntry]
	QuizBoard        *resource.Resource[[]model.LeaderboardEntry]
	StudentFiles     *resource.KeyedListResource[model.SavedFile]
}

func NewResources(client *upstream.Client, logger zerolog.Logger, m *metrics.Metrics) *Resources {
	return &Resources{
		Stats: resource.New("dashboard-stats", client.DashboardStats, logger, m),
		Challenges: resource.New("challenges", func(ctx context.Context) ([]model.Challenge, error) {
			return client.Challenges(ctx, "", "")
		}, logger, m),
		Quizzes: resource.NewList("quizzes",
			func(ctx context.Context) ([]model.Quiz, error) {
				return client.Quizzes(ctx, "", "")
			},
			func(q model.Quiz) string { return q.ID },
			client.DeleteQuiz,
			logger, m),
		ChallengeDetails: resource.NewKeyed("challenge-details", client.Challenge, logger, m),
		ChallengeBoard:   resource.New("challenges-leaderboard", client.ChallengesLeaderboard, logger, m),
		QuizBoard:        resource.New("quizzes-leaderboard", client.QuizzesLeaderboard, logger, m),
		StudentFiles: resource.NewKeyedList("student-files",
			client.UserFiles,
			func(f model.SavedFile) string { return f.ID },
			func(ctx context.Context, userID, fileID string) error {
				return client.DeleteUserFile(ctx, fileID, userID)
			},
			logger, m),
	}
}
