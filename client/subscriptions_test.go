package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specwork/specwork-go/client"
	"github.com/specwork/specwork-go/pkg/testutil"
	"github.com/specwork/specwork-go/querycache"
	"github.com/specwork/specwork-go/tokenstore"
)

func TestListPlans(t *testing.T) {
	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL()})
	require.NoError(t, err)

	plans, err := api.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Equal(t, "Pro", plans[1].Name)
}

// Purchasing a subscription must invalidate the cached my-subscription key
// so the next read refetches instead of serving the stale value.
func TestPurchaseSubscription_InvalidatesCache(t *testing.T) {
	ctx := context.Background()

	server := testutil.NewAPIServer()
	defer server.Close()

	api, err := client.New(client.Config{
		BaseURL: server.URL(),
		Tokens:  tokenstore.NewMemoryStoreWithToken(server.Token()),
	})
	require.NoError(t, err)

	cache := querycache.New(querycache.NewMemoryStore())

	readCached := func() (*client.UserSubscription, error) {
		return querycache.Cached(ctx, cache, querycache.KeyMySubscription, querycache.TierUser,
			func(ctx context.Context) (*client.UserSubscription, error) {
				return api.GetMySubscription(ctx)
			})
	}

	// Seed the cache with the state after the first purchase.
	_, err = api.PurchaseSubscription(ctx, client.PurchaseSubscriptionInput{PlanID: 1})
	require.NoError(t, err)

	before, err := readCached()
	require.NoError(t, err)
	require.Equal(t, int64(1), before.PlanID)

	// A second purchase without invalidation leaves the stale entry.
	_, err = api.PurchaseSubscription(ctx, client.PurchaseSubscriptionInput{PlanID: 3})
	require.NoError(t, err)

	stale, err := readCached()
	require.NoError(t, err)
	require.Equal(t, int64(1), stale.PlanID)

	// The declarative mutation table drops the key; the next read refetches.
	require.NoError(t, cache.InvalidateAfter(ctx, "purchaseSubscription"))

	after, err := readCached()
	require.NoError(t, err)
	require.Equal(t, int64(3), after.PlanID)
}
