package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "nearfix/database/repository/user"
	"nearfix/models"
	"nearfix/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 72 * time.Hour

// ErrInvalidCredentials is returned for a wrong email or password. The two
// cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering with an email already in use.
var ErrEmailTaken = errors.New("email already registered")

// DefaultUserService implements UserService with bcrypt credentials and JWT
// sessions.
type DefaultUserService struct {
	Users userRepo.UserRepository
}

// Register creates an account and returns it signed in.
func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*SignInResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.FullName == "" {
		return nil, errors.New("full name, email and password are required")
	}
	role := in.Role
	switch role {
	case models.RoleCustomer, models.RoleProvider:
	case "":
		role = models.RoleCustomer
	default:
		return nil, fmt.Errorf("unknown role %q", in.Role)
	}

	existing, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        email,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: string(hash),
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(u.ID, u.Role, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &SignInResult{User: u, Token: token}, nil
}

// SignIn authenticates by email and password.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	u, err := s.Users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Role, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &SignInResult{User: u, Token: token}, nil
}

// Profile returns the account for the given id.
func (s *DefaultUserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.Users.GetByID(userID)
}

// SetFCMToken stores the user's current push registration token.
func (s *DefaultUserService) SetFCMToken(ctx context.Context, userID, token string) error {
	return s.Users.SetFCMToken(userID, token)
}
