package realtime

import "time"

// Event kinds fanned out by the hub.
const (
	EventMessage      = "message"
	EventNotification = "notification"
	EventQuoteUpdate  = "quoteUpdate"
)

// Notification types rendered by the client toast layer.
const (
	NotifyMessage = "message"
	NotifySuccess = "success"
	NotifyCancel  = "cancel"
	NotifyBooking = "booking"
)

// Event is one fan-out unit: a kind plus its payload.
type Event struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// MessagePayload is published to a conversation topic when a chat message is
// appended to the ledger.
type MessagePayload struct {
	Sender        string    `json:"sender"`
	Content       string    `json:"content"`
	MessageType   string    `json:"messageType"`
	ProposedPrice float64   `json:"proposedPrice,omitempty"`
	BookingID     string    `json:"bookingId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NotificationPayload is published to a recipient's user topic only, never to
// the acting party's own topic.
type NotificationPayload struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	SenderID  string `json:"senderId,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

// QuoteUpdatePayload is published to a conversation topic so both open chat
// windows redraw the booking card without a page reload.
type QuoteUpdatePayload struct {
	BookingID     string `json:"bookingId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	Method        string `json:"method,omitempty"`
	Message       string `json:"message"`
}
