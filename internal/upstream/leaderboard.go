package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"isiboard/internal/domain/model"
)

// ChallengesLeaderboard fetches the ranking by total challenge score.
func (c *Client) ChallengesLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return c.leaderboard(ctx, "/api/challenges/leaderboard")
}

// QuizzesLeaderboard fetches the ranking by average quiz percentage.
func (c *Client) QuizzesLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return c.leaderboard(ctx, "/api/quizzes/leaderboard")
}

func (c *Client) leaderboard(ctx context.Context, path string) ([]model.LeaderboardEntry, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var dtos []leaderboardEntryDTO
	if err := json.Unmarshal(unwrapList(raw, "leaderboard"), &dtos); err != nil {
		return nil, fmt.Errorf("upstream.leaderboard: decode: %w", err)
	}
	entries := make([]model.LeaderboardEntry, 0, len(dtos))
	for i, dto := range dtos {
		entries = append(entries, dto.toModel(i))
	}
	return entries, nil
}
