package handlers

import (
	"net/http"

	"nearfix/middleware"
	"nearfix/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler opens a pending booking for the authenticated customer.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var in booking.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Booking.CreateBooking(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// SendQuoteHandler records the provider's proposed price for a booking.
func (hb *HandlerBundle) SendQuoteHandler(c *gin.Context) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Booking.SendQuote(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"), in.Amount)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AcceptQuoteHandler is the customer's acceptance of the quoted price.
func (hb *HandlerBundle) AcceptQuoteHandler(c *gin.Context) {
	var in struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Booking.AcceptQuote(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"), in.Method)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmBookingHandler is the provider's final seal on an accepted booking.
func (hb *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	b, err := hb.Booking.ConfirmBooking(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBookingHandler marks the job done.
func (hb *HandlerBundle) CompleteBookingHandler(c *gin.Context) {
	b, err := hb.Booking.CompleteBooking(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler is the customer's cancellation.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	b, err := hb.Booking.CancelBooking(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBookingHandler is the provider's refusal of a pending request.
func (hb *HandlerBundle) RejectBookingHandler(c *gin.Context) {
	b, err := hb.Booking.RejectBooking(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// MarkPaidHandler reports a manual payment. The acting side comes from the
// authenticated role, not the request body.
func (hb *HandlerBundle) MarkPaidHandler(c *gin.Context) {
	var in struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	actor := booking.ActorCustomer
	if c.GetString(middleware.ContextRoleKey) == "provider" {
		actor = booking.ActorProvider
	}
	b, err := hb.Booking.MarkPaid(c.Request.Context(), actor, c.Param("bookingId"), in.Method)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SubmitReviewHandler records a one-time review of a completed booking.
func (hb *HandlerBundle) SubmitReviewHandler(c *gin.Context) {
	var in struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	review, err := hb.Booking.SubmitReview(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"), in.Rating, in.Comment)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// CustomerBookingsHandler lists the authenticated customer's bookings.
func (hb *HandlerBundle) CustomerBookingsHandler(c *gin.Context) {
	bookings, err := hb.Booking.CustomerBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ProviderBookingsHandler lists the authenticated provider's bookings.
func (hb *HandlerBundle) ProviderBookingsHandler(c *gin.Context) {
	bookings, err := hb.Booking.ProviderBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// PostRequirementHandler publishes a customer lead on the requirement board.
func (hb *HandlerBundle) PostRequirementHandler(c *gin.Context) {
	var in booking.RequirementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req, err := hb.Booking.PostRequirement(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// OpenLeadsHandler lists open requirements in the provider's categories.
func (hb *HandlerBundle) OpenLeadsHandler(c *gin.Context) {
	leads, err := hb.Booking.OpenLeads(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// InstantOfferHandler lets a provider claim an open requirement.
func (hb *HandlerBundle) InstantOfferHandler(c *gin.Context) {
	var in booking.InstantOfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Booking.InstantOffer(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}
