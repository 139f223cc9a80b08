package booking

import (
	"context"
	"fmt"

	"nearfix/models"
	"nearfix/realtime"
)

// SendQuote records the provider's proposed price on a live booking and emits
// the quote card into the conversation. Quoting is repeatable until the
// booking reaches a terminal status; each quote overwrites the last.
func (s *DefaultBookingService) SendQuote(ctx context.Context, providerUserID, bookingID string, amount float64) (*models.Booking, error) {
	if amount <= 0 {
		return nil, NewGuardError("quote amount must be positive")
	}

	provider, err := s.providerForUser(providerUserID)
	if err != nil {
		return nil, err
	}
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != provider.ID {
		return nil, NewGuardError("booking %s does not belong to this provider", bookingID)
	}
	if b.Terminal() {
		return nil, NewGuardError("cannot quote a %s booking", b.Status)
	}

	b.ProposedAmount = amount
	if err := s.save(b); err != nil {
		return nil, err
	}

	s.appendMessage(&models.Message{
		Sender:        providerUserID,
		Receiver:      b.CustomerID,
		Content:       fmt.Sprintf("Price Quote: ₹%.0f", amount),
		MessageType:   models.MessageQuote,
		ProposedPrice: amount,
		BookingID:     b.ID,
	})

	s.notify(ctx, b.CustomerID, realtime.NotificationPayload{
		Title:     "New Price Quote! 🏷️",
		Content:   fmt.Sprintf("%s has quoted ₹%.0f for your %s service.", s.userName(providerUserID), amount, b.Service.Category),
		Type:      realtime.NotifySuccess,
		SenderID:  providerUserID,
		BookingID: b.ID,
	})

	return b, nil
}
