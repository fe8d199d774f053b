package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListNotifications returns the caller's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("unread", "true")
	}

	var notifications []Notification
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/notifications",
		query:       q,
		requireAuth: true,
		out:         &notifications,
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadNotificationCount returns the number of unread notifications.
func (c *Client) UnreadNotificationCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/notifications/unread-count",
		requireAuth: true,
		out:         &out,
	})
	if err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/notifications/%s/read", strconv.FormatInt(id, 10)),
		requireAuth: true,
	})
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/notifications/read-all",
		requireAuth: true,
	})
}
