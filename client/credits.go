package client

import (
	"context"
	"net/http"
)

// GetCreditBalance returns the caller's current credit balance.
func (c *Client) GetCreditBalance(ctx context.Context) (*CreditBalance, error) {
	var balance CreditBalance
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/credits",
		requireAuth: true,
		out:         &balance,
	})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// ListCreditTransactions returns the caller's credit ledger, newest first.
func (c *Client) ListCreditTransactions(ctx context.Context) ([]CreditTransaction, error) {
	var txs []CreditTransaction
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me/credits/transactions",
		requireAuth: true,
		out:         &txs,
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// PurchaseCredits tops up the caller's credit balance.
func (c *Client) PurchaseCredits(ctx context.Context, amount int64) (*CreditBalance, error) {
	var balance CreditBalance
	err := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/me/credits/purchase",
		body:        map[string]int64{"amount": amount},
		requireAuth: true,
		out:         &balance,
	})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
