package handlers

import (
	"errors"
	"net/http"

	userRepo "nearfix/database/repository/user"
	"nearfix/middleware"
	"nearfix/services/user"

	"github.com/gin-gonic/gin"
)

// RegisterUserHandler creates a new account and returns it signed in.
func (hb *HandlerBundle) RegisterUserHandler(c *gin.Context) {
	var in user.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result, err := hb.Users.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// AuthenticateUserHandler signs a user in by email and password.
func (hb *HandlerBundle) AuthenticateUserHandler(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result, err := hb.Users.SignIn(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProfileHandler returns the authenticated user's account.
func (hb *HandlerBundle) ProfileHandler(c *gin.Context) {
	u, err := hb.Users.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetFCMTokenHandler stores the caller's push registration token.
func (hb *HandlerBundle) SetFCMTokenHandler(c *gin.Context) {
	var in struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a token is required"})
		return
	}
	if err := hb.Users.SetFCMToken(c.Request.Context(), middleware.UserID(c), in.Token); err != nil {
		hb.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token registered"})
}
