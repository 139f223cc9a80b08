package messageRepo

import "nearfix/models"

// MessageRepository defines data access for the chat ledger. Messages are
// append-only; the only mutation is flipping isRead when the receiver opens
// the conversation.
type MessageRepository interface {
	// Create appends a message to the ledger.
	Create(msg *models.Message) error
	// ListBetween retrieves all messages between two users, oldest first.
	ListBetween(userID, otherUserID string) ([]models.Message, error)
	// MarkConversationRead flags every unread message from senderID to
	// receiverID as read.
	MarkConversationRead(receiverID, senderID string) error
	// UnreadCount returns the total number of unread messages addressed to
	// the user, across all conversations.
	UnreadCount(userID string) (int64, error)
	// ListConversations groups the user's messages by counterpart, most
	// recent first, with last-message preview and per-conversation unread
	// count.
	ListConversations(userID string) ([]models.ConversationSummary, error)
}
