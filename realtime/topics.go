package realtime

import "strings"

// Topic namespaces. Every connected client subscribes to its own user topic;
// conversation topics are derived from the unordered participant pair so both
// sides compute the same name independently.
const (
	userPrefix = "user:"
	roomPrefix = "room:"
)

// UserTopic returns the personal notification topic for a user.
func UserTopic(userID string) string {
	return userPrefix + userID
}

// ConversationTopic returns the chat topic for a pair of users. The pair is
// sorted so the topic name is independent of argument order.
func ConversationTopic(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return roomPrefix + a + "-" + b
}
