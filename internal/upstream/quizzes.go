package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"isiboard/internal/domain/model"
)

// Quizzes fetches all quizzes with their optional statistics blocks.
func (c *Client) Quizzes(ctx context.Context, orderBy, orderDirection string) ([]model.Quiz, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/admin/quizzes", orderQuery(orderBy, orderDirection), nil)
	if err != nil {
		return nil, err
	}
	var dtos []quizDTO
	if err := json.Unmarshal(unwrapList(raw, "quizzes"), &dtos); err != nil {
		return nil, fmt.Errorf("upstream.Quizzes: decode: %w", err)
	}
	quizzes := make([]model.Quiz, 0, len(dtos))
	for _, dto := range dtos {
		quizzes = append(quizzes, dto.toModel())
	}
	return quizzes, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/admin/quizzes/"+url.PathEscape(id), nil, nil)
	return err
}
