package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"isiboard/internal/domain/model"
)

// UserFiles fetches one student's saved editor files.
func (c *Client) UserFiles(ctx context.Context, userID string) ([]model.SavedFile, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/saved/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}
	var dtos []savedFileDTO
	if err := json.Unmarshal(unwrapList(raw, "files"), &dtos); err != nil {
		return nil, fmt.Errorf("upstream.UserFiles: decode: %w", err)
	}
	files := make([]model.SavedFile, 0, len(dtos))
	for _, dto := range dtos {
		files = append(files, dto.toModel())
	}
	return files, nil
}

// DeleteUserFile removes a saved file; the owning user ID travels in the
// request body, not the path.
func (c *Client) DeleteUserFile(ctx context.Context, fileID, userID string) error {
	body := map[string]string{"user_id": userID}
	_, err := c.do(ctx, http.MethodDelete, "/api/saved/delete/"+url.PathEscape(fileID), nil, body)
	return err
}
