package providerRepo

import (
	"errors"

	"nearfix/models"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines data access for provider profiles.
type ProviderRepository interface {
	// Create inserts a new provider profile.
	Create(provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetByUserID retrieves the provider profile owned by a user account.
	GetByUserID(userID string) (*models.Provider, error)
	// IncrementEarnings atomically adds amount to the provider's running
	// earnings total.
	IncrementEarnings(id string, amount float64) error
	// UpdateRating replaces the provider's aggregate review stats.
	UpdateRating(id string, averageRating float64, totalReviews int) error
}
