package client

import (
	"context"
	"net/http"
)

// ReferralCode is the caller's shareable invite code.
type ReferralCode struct {
	Code   string `json:"code"`
	URL    string `json:"url,omitempty"`
	Reward int64  `json:"reward"`
}

// GetReferralCode returns the caller's referral code, creating one on first
// call.
func (c *Client) GetReferralCode(ctx context.Context) (*ReferralCode, error) {
	var code ReferralCode
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/referral-code",
		requireAuth: true,
		out:         &code,
	})
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// ListReferrals returns signups attributed to the caller's code.
func (c *Client) ListReferrals(ctx context.Context) ([]Referral, error) {
	var referrals []Referral
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/referrals",
		requireAuth: true,
		out:         &referrals,
	})
	if err != nil {
		return nil, err
	}
	return referrals, nil
}
