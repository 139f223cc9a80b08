package user

import (
	"context"

	"nearfix/models"
)

// RegisterInput is a new account request.
type RegisterInput struct {
	FullName string         `json:"fullName"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Password string         `json:"password"`
	Role     string         `json:"role"`
	Address  models.Address `json:"address"`
}

// SignInResult carries the authenticated user and their session token.
type SignInResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService handles account registration, authentication and device
// registration.
type UserService interface {
	// Register creates an account and returns it signed in.
	Register(ctx context.Context, in RegisterInput) (*SignInResult, error)
	// SignIn authenticates by email and password.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	// Profile returns the account for the given id.
	Profile(ctx context.Context, userID string) (*models.User, error)
	// SetFCMToken stores the user's current push registration token.
	SetFCMToken(ctx context.Context, userID, token string) error
}
