package models

import "time"

// Message types.
const (
	MessageText  = "text"
	MessageQuote = "quote"
)

// Message is one chat ledger entry. Immutable after creation except IsRead,
// which flips when the receiver opens the conversation.
type Message struct {
	ID            string    `bson:"id" json:"id"`
	Sender        string    `bson:"sender" json:"sender"`
	Receiver      string    `bson:"receiver" json:"receiver"`
	Content       string    `bson:"content" json:"content"`
	MessageType   string    `bson:"messageType" json:"messageType"`
	ProposedPrice float64   `bson:"proposedPrice,omitempty" json:"proposedPrice,omitempty"`
	BookingID     string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	IsRead        bool      `bson:"isRead" json:"isRead"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// ConversationSummary is one row of the conversation list: the counterpart,
// the most recent message preview and how many of their messages are unread.
type ConversationSummary struct {
	OtherUserID string    `bson:"_id" json:"otherUserId"`
	OtherName   string    `bson:"otherName" json:"otherName"`
	LastMessage string    `bson:"lastMessage" json:"lastMessage"`
	LastSender  string    `bson:"lastSender" json:"lastSender"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	UnreadCount int64     `bson:"unreadCount" json:"unreadCount"`
}
