package routes

import (
	"net/http"
	"time"

	"nearfix/handlers"
	"nearfix/middleware"
	"nearfix/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		api.Use(middleware.AuthMiddleware())
		api.GET("/me", hb.ProfileHandler)
		api.PUT("/fcm-token", hb.SetFCMTokenHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", hb.CreateBookingHandler)
		api.GET("/mine", hb.CustomerBookingsHandler)
		api.GET("/provider", hb.ProviderBookingsHandler)

		api.POST("/:bookingId/quote", hb.SendQuoteHandler)
		api.POST("/:bookingId/accept", hb.AcceptQuoteHandler)
		api.POST("/:bookingId/confirm", hb.ConfirmBookingHandler)
		api.POST("/:bookingId/complete", hb.CompleteBookingHandler)
		api.POST("/:bookingId/cancel", hb.CancelBookingHandler)
		api.POST("/:bookingId/reject", hb.RejectBookingHandler)
		api.POST("/:bookingId/pay", hb.MarkPaidHandler)
		api.POST("/:bookingId/review", hb.SubmitReviewHandler)
	}
}

// RegisterChatRoutes registers the message ledger endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/messages", hb.SendMessageHandler)
		api.GET("/conversations", hb.ListConversationsHandler)
		api.GET("/conversations/:otherUserId", hb.OpenConversationHandler)
		api.GET("/unread", hb.UnreadCountHandler)
	}
}

// RegisterEventRoutes registers the live event stream.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("", hb.EventsHandler)
	}
}

// RegisterProviderRoutes registers provider profile and marketplace endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/:providerId", hb.GetProviderHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		protected.POST("/setup", hb.SetupProviderHandler)
		protected.GET("/dashboard", middleware.RequireRole(models.RoleProvider), hb.ProviderDashboardHandler)
		protected.GET("/leads", middleware.RequireRole(models.RoleProvider), hb.OpenLeadsHandler)
		protected.POST("/leads/offer", middleware.RequireRole(models.RoleProvider), hb.InstantOfferHandler)
	}
}

// RegisterRequirementRoutes registers the customer lead board.
func RegisterRequirementRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requirements")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", hb.PostRequirementHandler)
	}
}

// RegisterPaymentRoutes registers the Stripe checkout endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/checkout/:bookingId", hb.CreateCheckoutSessionHandler)
		api.GET("/success/:bookingId", hb.PaymentSuccessHandler)
	}
}

// RegisterHealthRoute registers the liveness probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterRequirementRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
