package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"isiboard/internal/domain/model"
)

// DashboardStats fetches the platform-wide totals and recent activity for the
// home view.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/admin/dashboard/stats", nil, nil)
	if err != nil {
		return model.DashboardStats{}, err
	}
	var dto dashboardStatsDTO
	if err := json.Unmarshal(unwrapList(raw, "stats"), &dto); err != nil {
		return model.DashboardStats{}, fmt.Errorf("upstream.DashboardStats: decode: %w", err)
	}
	return dto.toModel(), nil
}
