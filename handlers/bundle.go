package handlers

import (
	"net/http"

	bookingRepo "nearfix/database/repository/booking"
	providerRepo "nearfix/database/repository/provider"
	userRepo "nearfix/database/repository/user"
	"nearfix/realtime"
	"nearfix/services/booking"
	"nearfix/services/chat"
	"nearfix/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers and the services they delegate
// to. Routes bind against its methods. The repos are for read-only lookups
// (checkout amounts, receipt emails); all writes go through the services.
type HandlerBundle struct {
	Booking      booking.BookingService
	Chat         chat.ChatService
	Users        user.UserService
	BookingRepo  bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository
	Hub          *realtime.Hub
	Logger       *zap.Logger
}

// writeServiceError renders a typed transition refusal with the matching
// status code. Anything untyped is a plain 500.
func (hb *HandlerBundle) writeServiceError(c *gin.Context, err error) {
	switch {
	case booking.IsGuardViolation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": booking.CodeGuardViolation})
	case booking.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": booking.CodeNotFound})
	case booking.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": booking.CodeConflict})
	default:
		hb.Logger.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
