package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListUserReviews returns reviews left against a user.
func (c *Client) ListUserReviews(ctx context.Context, userID int64) ([]Review, error) {
	var reviews []Review
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/users/%d/reviews", userID),
		out:    &reviews,
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview leaves a review after a completed order.
func (c *Client) CreateReview(ctx context.Context, in CreateReviewInput) (*Review, error) {
	var review Review
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/reviews",
		body:        in,
		requireAuth: true,
		out:         &review,
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review the caller authored.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/reviews/%d", id),
		requireAuth: true,
	})
}
