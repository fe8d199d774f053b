package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListMarketsOptions filters the market listing.
type ListMarketsOptions struct {
	Page    int
	PerPage int
	City    string
	Search  string
}

func (o ListMarketsOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.City != "" {
		q.Set("city", o.City)
	}
	if o.Search != "" {
		q.Set("q", o.Search)
	}
	return q
}

// ListMarkets returns a page of the market listing.
func (c *Client) ListMarkets(ctx context.Context, opts ListMarketsOptions) (*MarketList, error) {
	var list MarketList
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/markets",
		query:  opts.query(),
		out:    &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetMarket fetches a single market.
func (c *Client) GetMarket(ctx context.Context, id int64) (*Market, error) {
	var market Market
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/markets/%d", id),
		out:    &market,
	})
	if err != nil {
		return nil, err
	}
	return &market, nil
}

// ListMarketMembers returns the specialists belonging to a market.
func (c *Client) ListMarketMembers(ctx context.Context, id int64) ([]SpecialistProfile, error) {
	var members []SpecialistProfile
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/markets/%d/members", id),
		out:    &members,
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// CreateMarket creates a market owned by the caller.
func (c *Client) CreateMarket(ctx context.Context, in CreateMarketInput) (*Market, error) {
	var market Market
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/markets",
		body:        in,
		requireAuth: true,
		out:         &market,
	})
	if err != nil {
		return nil, err
	}
	return &market, nil
}

// UpdateMarket patches a market the caller owns.
func (c *Client) UpdateMarket(ctx context.Context, id int64, in UpdateMarketInput) (*Market, error) {
	var market Market
	err := c.do(ctx, requestOptions{
		method:      http.MethodPatch,
		path:        fmt.Sprintf("/markets/%d", id),
		body:        in,
		requireAuth: true,
		out:         &market,
	})
	if err != nil {
		return nil, err
	}
	return &market, nil
}

// JoinMarket requests membership in a market for the authenticated
// specialist.
func (c *Client) JoinMarket(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/markets/%d/join", id),
		requireAuth: true,
	})
}

// LeaveMarket removes the authenticated specialist from a market.
func (c *Client) LeaveMarket(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/markets/%d/leave", id),
		requireAuth: true,
	})
}
