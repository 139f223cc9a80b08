package booking

import (
	"context"

	"nearfix/models"
)

// PaymentActor identifies which trigger is marking a booking paid. All three
// converge on the same transition; the gateway additionally gets idempotent
// treatment of duplicate callbacks.
type PaymentActor string

const (
	ActorCustomer PaymentActor = "customer"
	ActorProvider PaymentActor = "provider"
	ActorGateway  PaymentActor = "gateway"
)

// CreateBookingInput is a customer's direct booking request.
type CreateBookingInput struct {
	ProviderID  string `json:"providerId"`
	Category    string `json:"category"`
	BookingDate string `json:"bookingDate"` // RFC 3339
	BookingTime string `json:"bookingTime"`
	Notes       string `json:"notes"`
}

// InstantOfferInput is a provider's claim on an open requirement lead.
type InstantOfferInput struct {
	CustomerID    string  `json:"customerId"`
	RequirementID string  `json:"requirementId"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	ProposedPrice float64 `json:"proposedPrice"`
}

// RequirementInput is a customer's posted service need.
type RequirementInput struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
	Urgency     string `json:"urgency"`
}

// BookingService owns every write path to booking status and payment status.
// No other component mutates those fields.
type BookingService interface {
	// CreateBooking opens a pending booking from a customer request and
	// starts the chat with an introductory message.
	CreateBooking(ctx context.Context, customerID string, in CreateBookingInput) (*models.Booking, error)
	// InstantOffer lets a provider claim an open requirement with a priced
	// pending booking and a quote message.
	InstantOffer(ctx context.Context, providerUserID string, in InstantOfferInput) (*models.Booking, error)
	// PromoteQuote creates a pending booking from a chat quote that has no
	// booking yet. Called by the message ledger, the one external path into
	// booking creation.
	PromoteQuote(ctx context.Context, senderID, receiverID string, price float64, description string) (*models.Booking, error)

	// SendQuote records the provider's proposed price and emits the quote to
	// the conversation.
	SendQuote(ctx context.Context, providerUserID, bookingID string, amount float64) (*models.Booking, error)
	// AcceptQuote moves pending -> accepted, fixing the price and payment
	// method. Online payment is marked paid immediately.
	AcceptQuote(ctx context.Context, customerID, bookingID, method string) (*models.Booking, error)
	// ConfirmBooking moves accepted -> confirmed (the provider's final seal).
	ConfirmBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error)
	// CompleteBooking finalizes the price and moves any non-terminal status
	// to completed. Requires an agreed price.
	CompleteBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error)
	// MarkPaid flips paymentStatus pending -> paid from any of the three
	// triggers, crediting provider earnings when the booking is complete.
	MarkPaid(ctx context.Context, actor PaymentActor, bookingID, method string) (*models.Booking, error)
	// CancelBooking is the customer's cancellation, subject to the 24-hour
	// guard outside of pending.
	CancelBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error)
	// RejectBooking is the provider's refusal of a pending request.
	RejectBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error)

	// SubmitReview records a one-time review of a completed booking and
	// refreshes the provider's aggregate rating.
	SubmitReview(ctx context.Context, customerID, bookingID string, rating int, comment string) (*models.Review, error)

	// PostRequirement publishes a customer lead on the requirement board.
	PostRequirement(ctx context.Context, customerID string, in RequirementInput) (*models.Requirement, error)
	// OpenLeads lists open requirements in the provider's service categories.
	OpenLeads(ctx context.Context, providerUserID string) ([]models.Requirement, error)

	// CustomerBookings lists a customer's bookings, most recent first.
	CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	// ProviderBookings lists a provider's bookings, most recent first.
	ProviderBookings(ctx context.Context, providerUserID string) ([]models.Booking, error)
}
