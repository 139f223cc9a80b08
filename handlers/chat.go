package handlers

import (
	"net/http"

	"nearfix/middleware"
	"nearfix/services/chat"

	"github.com/gin-gonic/gin"
)

// SendMessageHandler appends a chat message to the ledger.
func (hb *HandlerBundle) SendMessageHandler(c *gin.Context) {
	var in chat.SendMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	msg, err := hb.Chat.SendMessage(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// OpenConversationHandler returns the history with a counterpart, marking
// their messages read.
func (hb *HandlerBundle) OpenConversationHandler(c *gin.Context) {
	conv, err := hb.Chat.OpenConversation(c.Request.Context(), middleware.UserID(c), c.Param("otherUserId"))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// ListConversationsHandler returns the authenticated user's inbox.
func (hb *HandlerBundle) ListConversationsHandler(c *gin.Context) {
	convs, err := hb.Chat.ListConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// UnreadCountHandler returns the total unread badge count.
func (hb *HandlerBundle) UnreadCountHandler(c *gin.Context) {
	count, err := hb.Chat.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
