package booking

import (
	"context"
	"fmt"

	"nearfix/models"
	"nearfix/realtime"

	"go.uber.org/zap"
)

// MarkPaid flips paymentStatus pending -> paid. Three triggers converge here:
// the customer reporting a cash payment, the provider confirming receipt, and
// the payment gateway's success callback. The transition commits through the
// versioned write, so a gateway callback racing a manual report resolves to a
// single winner; the gateway's duplicate callbacks on an already-paid booking
// are treated as idempotent success rather than refused.
func (s *DefaultBookingService) MarkPaid(ctx context.Context, actor PaymentActor, bookingID, method string) (*models.Booking, error) {
	if method == "" {
		method = models.MethodCash
		if actor == ActorGateway {
			method = models.MethodOnline
		}
	}
	if method != models.MethodCash && method != models.MethodOnline {
		return nil, NewGuardError("unknown payment method %q", method)
	}

	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus == models.PaymentPaid {
		if actor == ActorGateway {
			return b, nil
		}
		return nil, NewGuardError("booking %s is already paid", bookingID)
	}

	b.PaymentStatus = models.PaymentPaid
	b.PaymentMethod = method
	if b.TotalAmount <= 0 && b.ProposedAmount > 0 {
		b.TotalAmount = b.ProposedAmount
	}
	credit := false
	if b.Status == models.BookingCompleted && !b.EarningsCredited {
		b.EarningsCredited = true
		credit = true
	}
	if err := s.save(b); err != nil {
		return nil, err
	}
	if credit {
		s.creditEarnings(b)
	}

	providerUserID, err := s.providerUserID(b)
	if err != nil {
		s.Logger.Warn("provider lookup failed after payment", zap.String("bookingId", b.ID), zap.Error(err))
		return b, nil
	}

	// The ledger entry speaks in the acting party's voice; the counterparty
	// gets the toast.
	var sender, receiver, content string
	switch actor {
	case ActorProvider:
		sender, receiver = providerUserID, b.CustomerID
		content = fmt.Sprintf("Payment of ₹%.0f received. Thank you!", b.TotalAmount)
	default:
		sender, receiver = b.CustomerID, providerUserID
		content = fmt.Sprintf("Payment of ₹%.0f sent via %s.", b.TotalAmount, method)
	}
	s.appendMessage(&models.Message{
		Sender:      sender,
		Receiver:    receiver,
		Content:     content,
		MessageType: models.MessageText,
		BookingID:   b.ID,
	})

	s.publishQuoteUpdate(b.CustomerID, providerUserID, realtime.QuoteUpdatePayload{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Method:        method,
		Message:       "Payment received",
	})

	s.notify(ctx, receiver, realtime.NotificationPayload{
		Title:     "Payment Received 💰",
		Content:   fmt.Sprintf("₹%.0f for the %s booking has been paid via %s.", b.TotalAmount, b.Service.Category, method),
		Type:      realtime.NotifySuccess,
		SenderID:  sender,
		BookingID: b.ID,
	})

	return b, nil
}
