package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specwork/specwork-go/client"
	"github.com/specwork/specwork-go/pkg/testutil"
	"github.com/specwork/specwork-go/tokenstore"
)

func TestGetOrder(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL()})
	require.NoError(t, err)

	order, err := api.GetOrder(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), order.ID)
	require.Equal(t, "Fix sink", order.Title)
	require.Equal(t, int64(7), order.ClientID)
}

func TestGetOrder_NotFound(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL()})
	require.NoError(t, err)

	_, err = api.GetOrder(context.Background(), 9999)
	require.Error(t, err)
	require.True(t, client.IsStatus(err, 404))

	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "order not found", apiErr.Message)
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL()})
	require.NoError(t, err)

	_, err = api.CreateOrder(context.Background(), client.CreateOrderInput{
		Title:      "Paint fence",
		CategoryID: 5,
	})
	require.ErrorIs(t, err, client.ErrAuthRequired)

	// Nothing should have reached the server.
	require.Equal(t, 0, server.RequestCount("/orders"))
}

func TestLoginThenCreateOrder(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	tokens := tokenstore.NewMemoryStore()
	api, err := client.New(client.Config{BaseURL: server.URL(), Tokens: tokens})
	require.NoError(t, err)

	session, err := api.Login(context.Background(), "client@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, server.Token(), session.AccessToken)

	stored, err := tokens.Token()
	require.NoError(t, err)
	require.Equal(t, server.Token(), stored)

	order, err := api.CreateOrder(context.Background(), client.CreateOrderInput{
		Title:      "Paint fence",
		CategoryID: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "Paint fence", order.Title)
	require.NotZero(t, order.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL()})
	require.NoError(t, err)

	_, err = api.Login(context.Background(), "client@example.com", "wrong")
	require.True(t, client.IsStatus(err, 401))
}

func TestListOrders(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL()})
	require.NoError(t, err)

	list, err := api.ListOrders(context.Background(), client.ListOrdersOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, list.Items)
	require.Equal(t, list.Meta.Total, len(list.Items))
}
