package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"nearfix/config"
	bookingRepo "nearfix/database/repository/booking"
	"nearfix/middleware"
	"nearfix/models"
	"nearfix/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// CreateCheckoutSessionHandler opens a Stripe Checkout session for a booking.
// Amounts use the agreed total, falling back to the standing quote.
func (hb *HandlerBundle) CreateCheckoutSessionHandler(c *gin.Context) {
	bookingID := c.Param("bookingId")
	userID := middleware.UserID(c)

	b, err := hb.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		hb.writeServiceError(c, err)
		return
	}
	if b.CustomerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "booking does not belong to this customer"})
		return
	}
	if b.PaymentStatus == models.PaymentPaid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "booking is already paid"})
		return
	}

	amount := b.TotalAmount
	if amount <= 0 {
		amount = b.ProposedAmount
	}
	if amount <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "payment amount must be greater than zero"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("inr"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Service: " + b.Service.Category),
					},
					UnitAmount: stripe.Int64(int64(amount * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(fmt.Sprintf("%s/api/payments/success/%s?session_id={CHECKOUT_SESSION_ID}", config.AppConfig.BaseURL, b.ID)),
		CancelURL:  stripe.String(config.AppConfig.BaseURL + "/bookings"),
	}
	if u, err := hb.UserRepo.GetByID(userID); err == nil {
		params.CustomerEmail = stripe.String(u.Email)
	}
	params.AddMetadata("bookingId", b.ID)

	sess, err := session.New(params)
	if err != nil {
		hb.Logger.Error("stripe session creation failed",
			zap.String("bookingId", b.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to initialize payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sess.ID, "url": sess.URL})
}

// PaymentSuccessHandler is the gateway's success callback. The session is
// re-verified against Stripe before the booking is marked paid; duplicate
// callbacks on an already-paid booking succeed idempotently.
func (hb *HandlerBundle) PaymentSuccessHandler(c *gin.Context) {
	bookingID := c.Param("bookingId")
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session_id"})
		return
	}

	sess, err := session.Get(sessionID, nil)
	if err != nil {
		hb.Logger.Error("stripe session lookup failed",
			zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to verify payment"})
		return
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "payment not completed"})
		return
	}

	b, err := hb.Booking.MarkPaid(c.Request.Context(), booking.ActorGateway, bookingID, models.MethodOnline)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment successful", "booking": b})
}
