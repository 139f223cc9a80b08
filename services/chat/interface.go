package chat

import (
	"context"

	"nearfix/models"
)

// SendMessageInput is one outgoing chat message. A quote message with no
// booking reference gets a pending booking created for it on the fly.
type SendMessageInput struct {
	Receiver      string  `json:"receiver"`
	Content       string  `json:"content"`
	MessageType   string  `json:"messageType"`
	ProposedPrice float64 `json:"proposedPrice,omitempty"`
	BookingID     string  `json:"bookingId,omitempty"`
}

// Conversation is the state handed to a client opening a chat window: the
// full history, read state already settled, plus the live booking between the
// two parties if one exists.
type Conversation struct {
	Messages      []models.Message `json:"messages"`
	ActiveBooking *models.Booking  `json:"activeBooking,omitempty"`
	UnreadTotal   int64            `json:"unreadTotal"`
}

// ChatService owns the message ledger read and append paths.
type ChatService interface {
	// SendMessage appends a message, streams it to the conversation topic and
	// notifies the receiver. Unreferenced quotes are promoted to bookings.
	SendMessage(ctx context.Context, senderID string, in SendMessageInput) (*models.Message, error)
	// OpenConversation returns the history with the counterpart, marking their
	// messages read, plus the latest active booking between the two.
	OpenConversation(ctx context.Context, userID, otherUserID string) (*Conversation, error)
	// ListConversations returns the user's inbox, most recent first.
	ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	// UnreadCount returns the user's total unread badge.
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
