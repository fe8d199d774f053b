package client

import (
	"context"
	"net/http"
)

// ListPlans returns the purchasable subscription tiers.
func (c *Client) ListPlans(ctx context.Context) ([]SubscriptionPlan, error) {
	var plans []SubscriptionPlan
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/subscription-plans",
		out:    &plans,
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// GetMySubscription returns the caller's active subscription. A 404 from the
// server means no active subscription and surfaces as an *Error.
func (c *Client) GetMySubscription(ctx context.Context) (*UserSubscription, error) {
	var sub UserSubscription
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/subscription",
		requireAuth: true,
		out:         &sub,
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// PurchaseSubscription purchases a plan. Callers should invalidate the
// cached my-subscription and credits keys after success.
func (c *Client) PurchaseSubscription(ctx context.Context, in PurchaseSubscriptionInput) (*UserSubscription, error) {
	var sub UserSubscription
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/subscriptions",
		body:        in,
		requireAuth: true,
		out:         &sub,
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelSubscription cancels the caller's active subscription at the end of
// the paid period.
func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodDelete,
		path:        "/me/subscription",
		requireAuth: true,
	})
}
