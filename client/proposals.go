package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListOrderProposals returns proposals submitted against an order. Only the
// order owner sees the full list; the server scopes the response.
func (c *Client) ListOrderProposals(ctx context.Context, orderID int64) ([]Proposal, error) {
	var proposals []Proposal
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/orders/%d/proposals", orderID),
		requireAuth: true,
		out:         &proposals,
	})
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

// ListMyProposals returns proposals the authenticated specialist submitted.
func (c *Client) ListMyProposals(ctx context.Context) ([]Proposal, error) {
	var proposals []Proposal
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/proposals",
		requireAuth: true,
		out:         &proposals,
	})
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

// GetProposal fetches a single proposal.
func (c *Client) GetProposal(ctx context.Context, id int64) (*Proposal, error) {
	var proposal Proposal
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/proposals/%d", id),
		requireAuth: true,
		out:         &proposal,
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// SubmitProposal submits a bid against an order. Submission costs credits;
// an insufficient balance surfaces as an *Error with the server's code
// (branch with IsCode).
func (c *Client) SubmitProposal(ctx context.Context, in SubmitProposalInput) (*Proposal, error) {
	var proposal Proposal
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/proposals",
		body:        in,
		requireAuth: true,
		out:         &proposal,
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// WithdrawProposal withdraws a pending proposal the caller submitted.
func (c *Client) WithdrawProposal(ctx context.Context, id int64) error {
	return c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/proposals/%d/withdraw", id),
		requireAuth: true,
	})
}

// AcceptProposal accepts a proposal as the order owner.
func (c *Client) AcceptProposal(ctx context.Context, id int64) (*Proposal, error) {
	var proposal Proposal
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/proposals/%d/accept", id),
		requireAuth: true,
		out:         &proposal,
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// RejectProposal rejects a proposal as the order owner.
func (c *Client) RejectProposal(ctx context.Context, id int64) (*Proposal, error) {
	var proposal Proposal
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/proposals/%d/reject", id),
		requireAuth: true,
		out:         &proposal,
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}
