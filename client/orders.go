package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListOrdersOptions filters the public order listing. Zero values are
// omitted from the query.
type ListOrdersOptions struct {
	Page       int
	PerPage    int
	CategoryID int64
	Status     string
	City       string
	Search     string
	Permanent  *bool
}

func (o ListOrdersOptions) query() url.Values {
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
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.City != "" {
		q.Set("city", o.City)
	}
	if o.Search != "" {
		q.Set("q", o.Search)
	}
	if o.Permanent != nil {
		q.Set("permanent", strconv.FormatBool(*o.Permanent))
	}
	return q
}

// ListOrders returns a page of the public order listing.
func (c *Client) ListOrders(ctx context.Context, opts ListOrdersOptions) (*OrderList, error) {
	var list OrderList
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/orders",
		query:  opts.query(),
		out:    &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListMyOrders returns orders posted by the authenticated client.
func (c *Client) ListMyOrders(ctx context.Context, opts ListOrdersOptions) (*OrderList, error) {
	var list OrderList
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/orders",
		query:       opts.query(),
		requireAuth: true,
		out:         &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/orders/%d", id),
		out:    &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder posts a new order.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	var order Order
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/orders",
		body:        in,
		requireAuth: true,
		out:         &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder patches an existing order.
func (c *Client) UpdateOrder(ctx context.Context, id int64, in UpdateOrderInput) (*Order, error) {
	var order Order
	err := c.do(ctx, requestOptions{
		method:      http.MethodPatch,
		path:        fmt.Sprintf("/orders/%d", id),
		body:        in,
		requireAuth: true,
		out:         &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order through its lifecycle. Valid transitions
// are enforced by the server.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*Order, error) {
	var order Order
	err := c.do(ctx, requestOptions{
		method:      http.MethodPatch,
		path:        fmt.Sprintf("/orders/%d/status", id),
		body:        map[string]string{"status": status},
		requireAuth: true,
		out:         &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order the caller owns.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/orders/%d", id),
		requireAuth: true,
	})
}
