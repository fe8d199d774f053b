package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListSpecialistsOptions filters the specialist directory.
type ListSpecialistsOptions struct {
	Page       int
	PerPage    int
	CategoryID int64
	City       string
	Search     string
	MarketID   int64
}

func (o ListSpecialistsOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(o.CategoryID, 10))
	}
	if o.City != "" {
		q.Set("city", o.City)
	}
	if o.Search != "" {
		q.Set("q", o.Search)
	}
	if o.MarketID > 0 {
		q.Set("market_id", strconv.FormatInt(o.MarketID, 10))
	}
	return q
}

// SpecialistList is a page of specialist profiles.
type SpecialistList struct {
	Items []SpecialistProfile `json:"items"`
	Meta  PageInfo            `json:"meta"`
}

// ListSpecialists returns a page of the specialist directory.
func (c *Client) ListSpecialists(ctx context.Context, opts ListSpecialistsOptions) (*SpecialistList, error) {
	var list SpecialistList
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/specialists",
		query:  opts.query(),
		out:    &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetSpecialist fetches a specialist's public profile.
func (c *Client) GetSpecialist(ctx context.Context, id int64) (*SpecialistProfile, error) {
	var profile SpecialistProfile
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/specialists/%d", id),
		out:    &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUser fetches a user's public record.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/users/%d", id),
		out:    &user,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
