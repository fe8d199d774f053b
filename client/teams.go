package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListMyTeams returns teams the authenticated specialist belongs to.
func (c *Client) ListMyTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/teams",
		requireAuth: true,
		out:         &teams,
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetTeam fetches a single team.
func (c *Client) GetTeam(ctx context.Context, id int64) (*Team, error) {
	var team Team
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/teams/%d", id),
		requireAuth: true,
		out:         &team,
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// CreateTeam creates a team owned by the caller.
func (c *Client) CreateTeam(ctx context.Context, name string) (*Team, error) {
	var team Team
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/teams",
		body:        map[string]string{"name": name},
		requireAuth: true,
		out:         &team,
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// AddTeamMember invites a specialist into a team the caller owns.
func (c *Client) AddTeamMember(ctx context.Context, teamID, userID int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/teams/%d/members", teamID),
		body:        map[string]int64{"user_id": userID},
		requireAuth: true,
	})
}

// RemoveTeamMember removes a specialist from a team the caller owns.
func (c *Client) RemoveTeamMember(ctx context.Context, teamID, userID int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/teams/%d/members/%d", teamID, userID),
		requireAuth: true,
	})
}

// DeleteTeam disbands a team the caller owns.
func (c *Client) DeleteTeam(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/teams/%d", id),
		requireAuth: true,
	})
}
