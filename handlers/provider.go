package handlers

import (
	"errors"
	"net/http"
	"time"

	providerRepo "nearfix/database/repository/provider"
	"nearfix/middleware"
	"nearfix/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SetupProviderHandler creates the professional profile for the
// authenticated account. One profile per user.
func (hb *HandlerBundle) SetupProviderHandler(c *gin.Context) {
	var in struct {
		Bio        string                   `json:"bio"`
		Experience int                      `json:"experience"`
		Services   []models.ProviderService `json:"services"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if len(in.Services) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one service is required"})
		return
	}

	userID := middleware.UserID(c)
	if existing, err := hb.ProviderRepo.GetByUserID(userID); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "provider profile already exists"})
		return
	} else if err != nil && !errors.Is(err, providerRepo.ErrNotFound) {
		hb.writeServiceError(c, err)
		return
	}

	p := &models.Provider{
		ID:         uuid.New().String(),
		UserID:     userID,
		Bio:        in.Bio,
		Experience: in.Experience,
		Services:   in.Services,
		CreatedAt:  time.Now(),
	}
	if err := hb.ProviderRepo.Create(p); err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ProviderDashboardHandler returns the provider's profile with earnings and
// rating aggregates alongside their bookings.
func (hb *HandlerBundle) ProviderDashboardHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	p, err := hb.ProviderRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no provider profile for this user"})
			return
		}
		hb.writeServiceError(c, err)
		return
	}

	bookings, err := hb.Booking.ProviderBookings(c.Request.Context(), userID)
	if err != nil {
		hb.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": p,
		"bookings": bookings,
	})
}

// GetProviderHandler returns a provider's public profile.
func (hb *HandlerBundle) GetProviderHandler(c *gin.Context) {
	p, err := hb.ProviderRepo.GetByID(c.Param("providerId"))
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
