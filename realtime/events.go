package realtime

import (
	"encoding/json"
	"fmt"
)

// Event names pushed by the platform.
const (
	EventNewMessage                = "new-message"
	EventConversationStatusUpdated = "conversation-status-updated"
	EventConversationUpdated       = "conversation-updated"
	EventOrderStatusUpdated        = "order-status-updated"
	EventNotificationCreated       = "notification-created"
	EventBookingCreated            = "booking-created"
	EventBookingUpdated            = "booking-updated"
	EventBookingCancelled          = "booking-cancelled"
)

// Event is an inbound realtime event. Data carries the server payload
// verbatim; consumers decode the shape they expect for the event name.
type Event struct {
	Channel string          `json:"channel"`
	Name    string          `json:"event"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Handler consumes events dispatched on a channel binding.
type Handler func(event Event)

// ConversationChannel names the per-conversation channel.
func ConversationChannel(conversationID int64) string {
	return fmt.Sprintf("conversation-%d", conversationID)
}

// UserChannel names the per-user notification channel.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}
