package querycache

import "fmt"

// Canonical cache keys. List keys embed their filter set so distinct filter
// combinations cache independently; callers hash or serialize their options
// into the filters argument.
const (
	KeyCategories    = "categories"
	KeyPlans         = "subscription-plans"
	KeyPlatformStats = "platform-stats"

	KeyMyProfile      = "me:profile"
	KeyMySubscription = "me:subscription"
	KeyMyOrders       = "me:orders"
	KeyMyCredits      = "me:credits"
	KeyMyTeams        = "me:teams"
)

// OrderKey caches a single order.
func OrderKey(id int64) string {
	return fmt.Sprintf("orders:%d", id)
}

// OrdersListKey caches one page of the public order listing.
func OrdersListKey(filters string) string {
	return "orders:list:" + filters
}

// MarketKey caches a single market.
func MarketKey(id int64) string {
	return fmt.Sprintf("markets:%d", id)
}

// MarketsListKey caches one page of the market listing.
func MarketsListKey(filters string) string {
	return "markets:list:" + filters
}

// SpecialistKey caches a specialist profile.
func SpecialistKey(id int64) string {
	return fmt.Sprintf("specialists:%d", id)
}

// SpecialistsListKey caches one page of the specialist directory.
func SpecialistsListKey(filters string) string {
	return "specialists:list:" + filters
}

// MutationInvalidations maps each mutating endpoint to the key prefixes it
// invalidates. The table is the single place the read and write sides are
// tied together; endpoint methods themselves never touch the cache.
var MutationInvalidations = map[string][]string{
	"createOrder":          {"orders:list:", KeyMyOrders},
	"updateOrder":          {"orders:", KeyMyOrders},
	"updateOrderStatus":    {"orders:", KeyMyOrders},
	"deleteOrder":          {"orders:", KeyMyOrders},
	"submitProposal":       {"orders:", KeyMyCredits},
	"acceptProposal":       {"orders:", KeyMyOrders},
	"purchaseSubscription": {KeyMySubscription, KeyMyCredits},
	"cancelSubscription":   {KeyMySubscription},
	"purchaseCredits":      {KeyMyCredits},
	"updateProfile":        {KeyMyProfile, "specialists:"},
	"createMarket":         {"markets:list:"},
	"updateMarket":         {"markets:"},
	"joinMarket":           {"markets:", KeyMyProfile},
	"leaveMarket":          {"markets:", KeyMyProfile},
	"createTeam":           {KeyMyTeams},
	"deleteTeam":           {KeyMyTeams},
	"addTeamMember":        {KeyMyTeams, "teams:"},
	"removeTeamMember":     {KeyMyTeams, "teams:"},
	"createReview":         {"specialists:", "users:"},
	"createBooking":        {"bookings:"},
	"updateBooking":        {"bookings:"},
	"cancelBooking":        {"bookings:"},
}
