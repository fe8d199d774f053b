package client

import (
	"context"
	"net/http"
)

// GetPlatformStats returns day-scoped marketplace statistics. The endpoint
// serves reference data; cache it on the static tier rather than gating
// reads by timestamp at the call site.
func (c *Client) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/stats",
		out:    &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
