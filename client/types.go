package client

import (
	"encoding/json"
	"time"
)

// =============================================================================
// Shared
// =============================================================================

// PageInfo carries server-supplied pagination state. Cursors are opaque to
// the client; no merging or reordering happens on this side.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// =============================================================================
// Users and specialists
// =============================================================================

// User is a platform account, client or specialist.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	City      string     `json:"city,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SpecialistProfile extends a User with marketplace-facing fields.
type SpecialistProfile struct {
	User
	About        string  `json:"about,omitempty"`
	CategoryIDs  []int64 `json:"category_ids,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
	OrdersDone   int     `json:"orders_done"`
	Verified     bool    `json:"verified"`
	MarketID     *int64  `json:"market_id,omitempty"`
	CreditsSpent int64   `json:"credits_spent,omitempty"`
}

// UpdateProfileInput mutates the authenticated user's profile. Nil fields are
// left unchanged by the server.
type UpdateProfileInput struct {
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	City       *string `json:"city,omitempty"`
	About      *string `json:"about,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	Categories []int64 `json:"category_ids,omitempty"`
}

// =============================================================================
// Orders
// =============================================================================

// Order is a client-posted job record. Permanent orders recur and accept
// time-slot bookings instead of one-off proposals.
type Order struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	CategoryID  int64       `json:"category_id"`
	ClientID    int64       `json:"client_id"`
	MarketID    *int64      `json:"market_id,omitempty"`
	Status      string      `json:"status"`
	Budget      *int64      `json:"budget,omitempty"`
	City        string      `json:"city,omitempty"`
	Address     string      `json:"address,omitempty"`
	Permanent   bool        `json:"permanent"`
	Media       []MediaFile `json:"media,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

// Order lifecycle statuses as served by the backend.
const (
	OrderStatusOpen       = "open"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderList is a page of orders.
type OrderList struct {
	Items []Order  `json:"items"`
	Meta  PageInfo `json:"meta"`
}

// CreateOrderInput creates a new order.
type CreateOrderInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	CategoryID  int64   `json:"category_id"`
	MarketID    *int64  `json:"market_id,omitempty"`
	Budget      *int64  `json:"budget,omitempty"`
	City        string  `json:"city,omitempty"`
	Address     string  `json:"address,omitempty"`
	Permanent   bool    `json:"permanent"`
	MediaIDs    []int64 `json:"media_ids,omitempty"`
}

// UpdateOrderInput patches an existing order.
type UpdateOrderInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Budget      *int64  `json:"budget,omitempty"`
	City        *string `json:"city,omitempty"`
	Address     *string `json:"address,omitempty"`
	MediaIDs    []int64 `json:"media_ids,omitempty"`
}

// =============================================================================
// Proposals
// =============================================================================

// Proposal is a specialist's bid against an order. A team proposal carries
// the submitting team's ID.
type Proposal struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"order_id"`
	SpecialistID int64      `json:"specialist_id"`
	TeamID       *int64     `json:"team_id,omitempty"`
	Price        int64      `json:"price"`
	Comment      string     `json:"comment,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

const (
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
	ProposalStatusWithdrawn = "withdrawn"
)

// SubmitProposalInput submits a bid against an order.
type SubmitProposalInput struct {
	OrderID int64  `json:"order_id"`
	Price   int64  `json:"price"`
	Comment string `json:"comment,omitempty"`
	TeamID  *int64 `json:"team_id,omitempty"`
}

// =============================================================================
// Markets and teams
// =============================================================================

// Market is a multi-member shop that can own orders and subscriptions.
type Market struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     int64      `json:"owner_id"`
	City        string     `json:"city,omitempty"`
	LogoURL     string     `json:"logo_url,omitempty"`
	MemberCount int        `json:"member_count"`
	Rating      float64    `json:"rating"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// MarketList is a page of markets.
type MarketList struct {
	Items []Market `json:"items"`
	Meta  PageInfo `json:"meta"`
}

// CreateMarketInput creates a new market.
type CreateMarketInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// UpdateMarketInput patches a market.
type UpdateMarketInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	City        *string `json:"city,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

// Team is a named grouping of specialists for collaborative proposals.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	MemberIDs []int64   `json:"member_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Subscriptions and credits
// =============================================================================

// SubscriptionPlan is a purchasable tier.
type SubscriptionPlan struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features,omitempty"`
}

// UserSubscription is the caller's active subscription, if any.
type UserSubscription struct {
	ID        int64     `json:"id"`
	PlanID    int64     `json:"plan_id"`
	UserID    int64     `json:"user_id"`
	MarketID  *int64    `json:"market_id,omitempty"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PurchaseSubscriptionInput purchases a plan, optionally on behalf of a
// market the caller owns.
type PurchaseSubscriptionInput struct {
	PlanID   int64  `json:"plan_id"`
	MarketID *int64 `json:"market_id,omitempty"`
}

// CreditBalance is the caller's current credit account.
type CreditBalance struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
}

// CreditTransaction is a single credit ledger entry.
type CreditTransaction struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Kind      string    `json:"kind"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Bookings
// =============================================================================

// Booking is a time-slot reservation against a permanent order.
type Booking struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"order_id"`
	ClientID     int64      `json:"client_id"`
	SpecialistID int64      `json:"specialist_id"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       time.Time  `json:"ends_at"`
	Status       string     `json:"status"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// CreateBookingInput reserves a slot.
type CreateBookingInput struct {
	OrderID  int64     `json:"order_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Comment  string    `json:"comment,omitempty"`
}

// UpdateBookingInput reschedules or annotates a booking.
type UpdateBookingInput struct {
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Comment  *string    `json:"comment,omitempty"`
}

// =============================================================================
// Reviews
// =============================================================================

// Review is a rating left against a user after a completed order.
type Review struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	AuthorID  int64     `json:"author_id"`
	TargetID  int64     `json:"target_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewInput leaves a review.
type CreateReviewInput struct {
	OrderID  int64  `json:"order_id"`
	TargetID int64  `json:"target_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// =============================================================================
// Categories and media
// =============================================================================

// Category is reference data for order and specialist classification.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *int64 `json:"parent_id,omitempty"`
	IconURL  string `json:"icon_url,omitempty"`
}

// MediaFile is an uploaded attachment.
type MediaFile struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type,omitempty"`
	SizeBytes int64     `json:"size_bytes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Chat and notifications
// =============================================================================

// Conversation is a message thread between a client and a specialist,
// usually anchored to an order.
type Conversation struct {
	ID           int64      `json:"id"`
	OrderID      *int64     `json:"order_id,omitempty"`
	ClientID     int64      `json:"client_id"`
	SpecialistID int64      `json:"specialist_id"`
	Status       string     `json:"status"`
	UnreadCount  int        `json:"unread_count"`
	LastMessage  *Message   `json:"last_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Message is a single chat message.
type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Text           string     `json:"text,omitempty"`
	MediaID        *int64     `json:"media_id,omitempty"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Notification is a user-facing platform notification. Data carries the
// backend's loosely-specified per-kind payload verbatim.
type Notification struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Body      string          `json:"body,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// =============================================================================
// Referrals and platform stats
// =============================================================================

// Referral is a signup attributed to the caller's referral code.
type Referral struct {
	ID           int64     `json:"id"`
	ReferredID   int64     `json:"referred_id"`
	ReferredName string    `json:"referred_name,omitempty"`
	Reward       int64     `json:"reward"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlatformStats is day-scoped marketplace reference data.
type PlatformStats struct {
	Specialists     int       `json:"specialists"`
	OrdersCompleted int       `json:"orders_completed"`
	Markets         int       `json:"markets"`
	Categories      int       `json:"categories"`
	GeneratedAt     time.Time `json:"generated_at"`
}
