package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ListBookingsOptions filters the caller's bookings.
type ListBookingsOptions struct {
	OrderID int64
	Status  string
	From    time.Time
	To      time.Time
}

func (o ListBookingsOptions) query() url.Values {
	q := url.Values{}
	if o.OrderID > 0 {
		q.Set("order_id", fmt.Sprintf("%d", o.OrderID))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if !o.From.IsZero() {
		q.Set("from", o.From.Format(time.RFC3339))
	}
	if !o.To.IsZero() {
		q.Set("to", o.To.Format(time.RFC3339))
	}
	return q
}

// ListMyBookings returns the caller's bookings on both sides of the
// marketplace.
func (c *Client) ListMyBookings(ctx context.Context, opts ListBookingsOptions) ([]Booking, error) {
	var bookings []Booking
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/bookings",
		query:       opts.query(),
		requireAuth: true,
		out:         &bookings,
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBooking fetches a single booking.
func (c *Client) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/bookings/%d", id),
		requireAuth: true,
		out:         &booking,
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateBooking reserves a time slot against a permanent order.
func (c *Client) CreateBooking(ctx context.Context, in CreateBookingInput) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/bookings",
		body:        in,
		requireAuth: true,
		out:         &booking,
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking reschedules or annotates a booking.
func (c *Client) UpdateBooking(ctx context.Context, id int64, in UpdateBookingInput) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, requestOptions{
		method:      http.MethodPatch,
		path:        fmt.Sprintf("/bookings/%d", id),
		body:        in,
		requireAuth: true,
		out:         &booking,
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmBooking confirms a pending booking as the specialist.
func (c *Client) ConfirmBooking(ctx context.Context, id int64) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/bookings/%d/confirm", id),
		requireAuth: true,
		out:         &booking,
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels a booking from either side.
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/bookings/%d/cancel", id),
		requireAuth: true,
	})
}
