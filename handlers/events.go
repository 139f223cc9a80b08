package handlers

import (
	"io"

	"nearfix/middleware"
	"nearfix/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler streams hub events to the client over server-sent events.
// Every client gets their own user topic; passing ?with=<userId> additionally
// joins the conversation room with that counterpart. Events are live-only:
// missed events are not replayed, clients converge by re-fetching state.
func (hb *HandlerBundle) EventsHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	topics := []string{realtime.UserTopic(userID)}
	if other := c.Query("with"); other != "" && other != userID {
		topics = append(topics, realtime.ConversationTopic(userID, other))
	}

	sub := hb.Hub.Subscribe(topics...)
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Connect-time catch-up: the badge count, so a client that was offline
	// knows to pull its inbox.
	if unread, err := hb.Chat.UnreadCount(c.Request.Context(), userID); err == nil && unread > 0 {
		c.SSEvent(realtime.EventNotification, realtime.NotificationPayload{
			Title:   "Unread Messages",
			Content: "You have unread messages waiting.",
			Type:    realtime.NotifyMessage,
		})
		c.Writer.Flush()
	}

	hb.Logger.Debug("event stream opened",
		zap.String("userId", userID), zap.Strings("topics", topics))

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(ev.Kind, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
