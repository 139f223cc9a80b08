package bookingRepo

import (
	"errors"

	"nearfix/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrVersionConflict is returned when a versioned update lost a race against
// a concurrent transition on the same booking. The caller must reload and
// retry; the update was not applied.
var ErrVersionConflict = errors.New("booking was modified concurrently")

// BookingRepository defines data access for bookings.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// UpdateVersioned persists the booking only if its stored version still
	// matches booking.Version, then bumps the version. This is the sole write
	// path for status and paymentStatus.
	UpdateVersioned(booking *models.Booking) error
	// ListByCustomer retrieves a customer's bookings, most recent first.
	ListByCustomer(customerID string) ([]models.Booking, error)
	// ListByProvider retrieves a provider's bookings, most recent first.
	ListByProvider(providerID string) ([]models.Booking, error)
	// LatestActiveBetween returns the most recent pending or accepted booking
	// linking the customer and provider, or nil when none exists.
	LatestActiveBetween(customerID, providerID string) (*models.Booking, error)
}
