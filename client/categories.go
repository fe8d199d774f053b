package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListCategories returns the full category tree as a flat list.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/categories",
		out:    &categories,
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/categories/%d", id),
		out:    &category,
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}
