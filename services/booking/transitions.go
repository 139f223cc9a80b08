package booking

import (
	"context"
	"fmt"
	"time"

	"nearfix/models"
	"nearfix/realtime"

	"go.uber.org/zap"
)

// AcceptQuote is the customer's acceptance of the proposed price. The booking
// moves pending -> accepted, the total is fixed from the stored proposal, and
// the chosen payment method is recorded. Choosing online payment marks the
// booking paid in the same write.
func (s *DefaultBookingService) AcceptQuote(ctx context.Context, customerID, bookingID, method string) (*models.Booking, error) {
	if method != models.MethodCash && method != models.MethodOnline {
		return nil, NewGuardError("unknown payment method %q", method)
	}

	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, NewGuardError("booking %s does not belong to this customer", bookingID)
	}
	if b.Status != models.BookingPending {
		return nil, NewGuardError("only a pending booking can be accepted, got %s", b.Status)
	}
	if b.ProposedAmount <= 0 {
		return nil, NewGuardError("no quote to accept on booking %s", bookingID)
	}

	b.Status = models.BookingAccepted
	b.TotalAmount = b.ProposedAmount
	b.PaymentMethod = method
	if method == models.MethodOnline {
		b.PaymentStatus = models.PaymentPaid
	}
	if err := s.save(b); err != nil {
		return nil, err
	}

	providerUserID, err := s.providerUserID(b)
	if err != nil {
		s.Logger.Warn("provider lookup failed after accept", zap.String("bookingId", b.ID), zap.Error(err))
		return b, nil
	}

	s.publishQuoteUpdate(customerID, providerUserID, realtime.QuoteUpdatePayload{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Method:        method,
		Message:       fmt.Sprintf("Quote of ₹%.0f accepted", b.TotalAmount),
	})

	s.notify(ctx, providerUserID, realtime.NotificationPayload{
		Title:     "Quote Accepted! 🎉",
		Content:   fmt.Sprintf("%s accepted your quote of ₹%.0f. Payment method: %s.", s.userName(customerID), b.TotalAmount, method),
		Type:      realtime.NotifySuccess,
		SenderID:  customerID,
		BookingID: b.ID,
	})

	return b, nil
}

// ConfirmBooking is the provider's final seal on an accepted booking. For
// scheduled appointments more than a day out, an appointment reminder is
// queued.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
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
	if b.Status != models.BookingAccepted {
		return nil, NewGuardError("only an accepted booking can be confirmed, got %s", b.Status)
	}

	b.Status = models.BookingConfirmed
	if err := s.save(b); err != nil {
		return nil, err
	}

	if s.Reminders != nil && b.BookingTime != models.ASAPTime && time.Until(b.BookingDate) >= cancelWindow {
		if err := s.Reminders.ScheduleReminder(b, providerUserID); err != nil {
			s.Logger.Warn("reminder scheduling failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	s.publishQuoteUpdate(b.CustomerID, providerUserID, realtime.QuoteUpdatePayload{
		BookingID: b.ID,
		Status:    b.Status,
		Message:   "Booking confirmed",
	})

	s.notify(ctx, b.CustomerID, realtime.NotificationPayload{
		Title:     "Booking Confirmed ✅",
		Content:   fmt.Sprintf("%s confirmed your %s booking for %s at %s.", s.userName(providerUserID), b.Service.Category, b.BookingDate.Format("Jan 2, 2006"), b.BookingTime),
		Type:      realtime.NotifyBooking,
		SenderID:  providerUserID,
		BookingID: b.ID,
	})

	return b, nil
}

// CompleteBooking finalizes the job. Any non-terminal status may complete as
// long as a price was agreed; if payment already landed, the earnings credit
// is decided in the same versioned write.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
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
		return nil, NewGuardError("cannot complete a %s booking", b.Status)
	}
	if b.ProposedAmount <= 0 {
		return nil, NewGuardError("cannot complete booking %s without an agreed price", bookingID)
	}

	b.Status = models.BookingCompleted
	b.TotalAmount = b.ProposedAmount
	credit := false
	if b.PaymentStatus == models.PaymentPaid && !b.EarningsCredited {
		b.EarningsCredited = true
		credit = true
	}
	if err := s.save(b); err != nil {
		return nil, err
	}
	if credit {
		s.creditEarnings(b)
	}

	s.appendMessage(&models.Message{
		Sender:      providerUserID,
		Receiver:    b.CustomerID,
		Content:     fmt.Sprintf("Your %s service has been completed. Total: ₹%.0f. Thank you for choosing us!", b.Service.Category, b.TotalAmount),
		MessageType: models.MessageText,
		BookingID:   b.ID,
	})

	s.publishQuoteUpdate(b.CustomerID, providerUserID, realtime.QuoteUpdatePayload{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Message:       "Service completed",
	})

	s.notify(ctx, b.CustomerID, realtime.NotificationPayload{
		Title:     "Service Completed 🛠️",
		Content:   fmt.Sprintf("%s marked your %s service as completed. Leave a review!", s.userName(providerUserID), b.Service.Category),
		Type:      realtime.NotifySuccess,
		SenderID:  providerUserID,
		BookingID: b.ID,
	})

	return b, nil
}

// CancelBooking is the customer's cancellation. A pending booking cancels
// unconditionally; once the provider has committed, the appointment must be
// at least 24 hours away. ASAP bookings have no schedulable appointment, so
// they only cancel while pending.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, NewGuardError("booking %s does not belong to this customer", bookingID)
	}
	if b.Terminal() {
		return nil, NewGuardError("cannot cancel a %s booking", b.Status)
	}
	if b.Status != models.BookingPending {
		if b.BookingTime == models.ASAPTime {
			return nil, NewGuardError("an ASAP booking can only be cancelled while pending")
		}
		if time.Until(b.BookingDate) < cancelWindow {
			return nil, NewGuardError("bookings can only be cancelled at least 24 hours before the appointment")
		}
	}

	b.Status = models.BookingCancelled
	if err := s.save(b); err != nil {
		return nil, err
	}

	providerUserID, err := s.providerUserID(b)
	if err != nil {
		s.Logger.Warn("provider lookup failed after cancel", zap.String("bookingId", b.ID), zap.Error(err))
		return b, nil
	}

	s.appendMessage(&models.Message{
		Sender:      customerID,
		Receiver:    providerUserID,
		Content:     fmt.Sprintf("I had to cancel the %s booking. Sorry for the inconvenience.", b.Service.Category),
		MessageType: models.MessageText,
		BookingID:   b.ID,
	})

	s.notify(ctx, providerUserID, realtime.NotificationPayload{
		Title:     "Booking Cancelled",
		Content:   fmt.Sprintf("%s cancelled the %s booking scheduled for %s.", s.userName(customerID), b.Service.Category, b.BookingDate.Format("Jan 2, 2006")),
		Type:      realtime.NotifyCancel,
		SenderID:  customerID,
		BookingID: b.ID,
	})

	return b, nil
}

// RejectBooking is the provider's refusal of a pending request.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
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
	if b.Status != models.BookingPending {
		return nil, NewGuardError("only a pending booking can be rejected, got %s", b.Status)
	}

	b.Status = models.BookingRejected
	if err := s.save(b); err != nil {
		return nil, err
	}

	s.appendMessage(&models.Message{
		Sender:      providerUserID,
		Receiver:    b.CustomerID,
		Content:     fmt.Sprintf("Sorry, I'm unable to take your %s request at this time.", b.Service.Category),
		MessageType: models.MessageText,
		BookingID:   b.ID,
	})

	s.notify(ctx, b.CustomerID, realtime.NotificationPayload{
		Title:     "Booking Declined",
		Content:   fmt.Sprintf("%s is unable to take your %s request right now.", s.userName(providerUserID), b.Service.Category),
		Type:      realtime.NotifyCancel,
		SenderID:  providerUserID,
		BookingID: b.ID,
	})

	return b, nil
}
