package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "nearfix/database/repository/provider"
	"nearfix/models"
	"nearfix/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking opens a pending booking for a customer and starts the chat
// with the provider.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, in CreateBookingInput) (*models.Booking, error) {
	if in.ProviderID == "" || in.Category == "" {
		return nil, NewGuardError("provider and service category are required")
	}

	provider, err := s.Providers.GetByID(in.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewNotFoundError("provider %s not found", in.ProviderID)
		}
		return nil, err
	}

	// Copy the provider's catalogue entry into the service descriptor so the
	// booking is self-describing even if the provider later edits their
	// profile.
	descriptor := models.ServiceDescriptor{Category: in.Category}
	for _, svc := range provider.Services {
		if svc.Category == in.Category {
			descriptor.Description = svc.Description
			descriptor.PriceRange = svc.PriceRange
			break
		}
	}

	bookingDate := time.Now()
	bookingTime := in.BookingTime
	if bookingTime == "" {
		bookingTime = models.ASAPTime
	}
	if in.BookingDate != "" {
		parsed, err := time.Parse(time.RFC3339, in.BookingDate)
		if err != nil {
			return nil, NewGuardError("invalid booking date: %v", err)
		}
		bookingDate = parsed
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		ProviderID:    provider.ID,
		Service:       descriptor,
		BookingDate:   bookingDate,
		BookingTime:   bookingTime,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.MethodCash,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Hi! I just booked your %s service for %s at %s.",
		in.Category, bookingDate.Format("Jan 2, 2006"), bookingTime)
	if descriptor.PriceRange != "" {
		content += fmt.Sprintf("\nStarting Price: %s", descriptor.PriceRange)
	}
	content += "\nLooking forward to it!"
	s.appendMessage(&models.Message{
		Sender:      customerID,
		Receiver:    provider.UserID,
		Content:     content,
		MessageType: models.MessageText,
		BookingID:   b.ID,
	})

	s.notify(ctx, provider.UserID, realtime.NotificationPayload{
		Title:     "New Service Request",
		Content:   fmt.Sprintf("%s has requested your %s service. Check the chat for details!", s.userName(customerID), in.Category),
		Type:      realtime.NotifyBooking,
		SenderID:  customerID,
		BookingID: b.ID,
	})

	return b, nil
}

// InstantOffer lets a provider claim an open requirement: the customer gets a
// pending booking with the price already proposed, plus the quote in chat.
func (s *DefaultBookingService) InstantOffer(ctx context.Context, providerUserID string, in InstantOfferInput) (*models.Booking, error) {
	if in.CustomerID == "" || in.ProposedPrice <= 0 {
		return nil, NewGuardError("customer and a positive proposed price are required")
	}

	provider, err := s.providerForUser(providerUserID)
	if err != nil {
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = "General Service"
	}
	description := in.Description
	if description == "" {
		description = "No additional details"
	}

	b := &models.Booking{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		ProviderID: provider.ID,
		Service: models.ServiceDescriptor{
			Category:    category,
			Description: "Marketplace Lead: " + description,
		},
		BookingDate:    time.Now(),
		BookingTime:    models.ASAPTime,
		Status:         models.BookingPending,
		PaymentStatus:  models.PaymentPending,
		PaymentMethod:  models.MethodCash,
		ProposedAmount: in.ProposedPrice,
		Notes:          "Initial offer from marketplace lead",
		CreatedAt:      time.Now(),
	}
	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}

	s.appendMessage(&models.Message{
		Sender:        providerUserID,
		Receiver:      in.CustomerID,
		Content:       description,
		MessageType:   models.MessageQuote,
		ProposedPrice: in.ProposedPrice,
		BookingID:     b.ID,
	})

	s.notify(ctx, in.CustomerID, realtime.NotificationPayload{
		Title:     "New Service Offer",
		Content:   fmt.Sprintf("%s has sent you a quote for %s. Check your chat now!", s.userName(providerUserID), category),
		Type:      realtime.NotifySuccess,
		SenderID:  providerUserID,
		BookingID: b.ID,
	})

	if in.RequirementID != "" {
		if err := s.Requirements.SetStatus(in.RequirementID, models.RequirementFulfilled); err != nil {
			s.Logger.Warn("failed to mark requirement fulfilled",
				zap.String("requirementId", in.RequirementID), zap.Error(err))
		}
	}

	return b, nil
}

// PromoteQuote creates a pending booking for a chat quote sent with no
// booking reference, so the price card has something to attach to. The sender
// may be either side of the conversation; the provider is whichever party has
// a provider profile.
func (s *DefaultBookingService) PromoteQuote(ctx context.Context, senderID, receiverID string, price float64, description string) (*models.Booking, error) {
	if price <= 0 {
		return nil, NewGuardError("a quote needs a positive price")
	}

	provider, err := s.Providers.GetByUserID(senderID)
	customerID := receiverID
	if err != nil {
		if !errors.Is(err, providerRepo.ErrNotFound) {
			return nil, err
		}
		provider, err = s.Providers.GetByUserID(receiverID)
		customerID = senderID
		if err != nil {
			if errors.Is(err, providerRepo.ErrNotFound) {
				return nil, NewGuardError("neither chat participant has a provider profile")
			}
			return nil, err
		}
	}

	b := &models.Booking{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ProviderID: provider.ID,
		Service: models.ServiceDescriptor{
			Category:    "Marketplace Lead",
			Description: description,
		},
		BookingDate:    time.Now(),
		BookingTime:    models.ASAPTime,
		Status:         models.BookingPending,
		PaymentStatus:  models.PaymentPending,
		PaymentMethod:  models.MethodCash,
		ProposedAmount: price,
		Notes:          "Started from chat offer",
		CreatedAt:      time.Now(),
	}
	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// PostRequirement publishes a customer lead on the requirement board.
func (s *DefaultBookingService) PostRequirement(ctx context.Context, customerID string, in RequirementInput) (*models.Requirement, error) {
	if in.Category == "" || in.Description == "" {
		return nil, NewGuardError("category and description are required")
	}
	urgency := in.Urgency
	switch urgency {
	case models.UrgencyStandard, models.UrgencyEmergency, models.UrgencyASAP:
	case "":
		urgency = models.UrgencyStandard
	default:
		return nil, NewGuardError("unknown urgency %q", in.Urgency)
	}

	city := ""
	if u, err := s.Users.GetByID(customerID); err == nil && u != nil {
		city = u.Address.City
	}

	req := &models.Requirement{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Category:    in.Category,
		Description: in.Description,
		Budget:      in.Budget,
		Urgency:     urgency,
		Status:      models.RequirementOpen,
		City:        city,
		CreatedAt:   time.Now(),
	}
	if err := s.Requirements.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// OpenLeads lists open requirements matching the provider's categories.
func (s *DefaultBookingService) OpenLeads(ctx context.Context, providerUserID string) ([]models.Requirement, error) {
	provider, err := s.providerForUser(providerUserID)
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(provider.Services))
	for _, svc := range provider.Services {
		categories = append(categories, svc.Category)
	}
	if len(categories) == 0 {
		return nil, nil
	}
	return s.Requirements.ListOpenByCategories(categories)
}

// CustomerBookings lists a customer's bookings, most recent first.
func (s *DefaultBookingService) CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(customerID)
}

// ProviderBookings lists the bookings of the provider owned by the user.
func (s *DefaultBookingService) ProviderBookings(ctx context.Context, providerUserID string) ([]models.Booking, error) {
	provider, err := s.providerForUser(providerUserID)
	if err != nil {
		return nil, err
	}
	return s.Bookings.ListByProvider(provider.ID)
}
