package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "nearfix/database/repository/booking"
	messageRepo "nearfix/database/repository/message"
	providerRepo "nearfix/database/repository/provider"
	requirementRepo "nearfix/database/repository/requirement"
	reviewRepo "nearfix/database/repository/review"
	userRepo "nearfix/database/repository/user"
	"nearfix/models"
	"nearfix/realtime"
	"nearfix/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cancelWindow is how far in the future a non-pending booking's appointment
// must be for the customer to cancel it.
const cancelWindow = 24 * time.Hour

// ReminderScheduler enqueues an appointment reminder for a confirmed booking.
type ReminderScheduler interface {
	ScheduleReminder(booking *models.Booking, providerUserID string) error
}

// DefaultBookingService is the production orchestrator: it validates guards,
// applies the booking mutation through the versioned repository write, and
// then performs the best-effort side effects (ledger appends, earnings
// credit, hub publications, pushes).
type DefaultBookingService struct {
	Bookings     bookingRepo.BookingRepository
	Messages     messageRepo.MessageRepository
	Providers    providerRepo.ProviderRepository
	Users        userRepo.UserRepository
	Requirements requirementRepo.RequirementRepository
	Reviews      reviewRepo.ReviewRepository
	Hub          *realtime.Hub
	Notifier     notification.Notifier
	Reminders    ReminderScheduler
	Logger       *zap.Logger
}

// load fetches a booking, translating repository errors into typed refusals.
func (s *DefaultBookingService) load(bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError("booking %s not found", bookingID)
		}
		return nil, err
	}
	return b, nil
}

// save commits the mutated booking via compare-and-swap. A lost race becomes
// a Conflict refusal; nothing was written.
func (s *DefaultBookingService) save(b *models.Booking) error {
	if err := s.Bookings.UpdateVersioned(b); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrVersionConflict):
			return NewConflictError("booking %s was modified concurrently, retry with fresh state", b.ID)
		case errors.Is(err, bookingRepo.ErrNotFound):
			return NewNotFoundError("booking %s not found", b.ID)
		}
		return err
	}
	return nil
}

// providerForUser resolves the provider profile owned by a user account.
func (s *DefaultBookingService) providerForUser(userID string) (*models.Provider, error) {
	p, err := s.Providers.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewNotFoundError("no provider profile for user %s", userID)
		}
		return nil, err
	}
	return p, nil
}

// providerUserID resolves the user account behind the booking's provider, for
// topic naming and notification targeting.
func (s *DefaultBookingService) providerUserID(b *models.Booking) (string, error) {
	p, err := s.Providers.GetByID(b.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return "", NewNotFoundError("provider %s not found", b.ProviderID)
		}
		return "", err
	}
	return p.UserID, nil
}

// userName returns the display name for a user, falling back to the id when
// the lookup fails (side effects must not fail a committed transition).
func (s *DefaultBookingService) userName(userID string) string {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return userID
	}
	return u.FullName
}

// --- Best-effort side effects ------------------------------------------------
//
// Everything below runs after the booking mutation has committed. Failures
// are logged and swallowed: the booking record is the authoritative state and
// clients converge by re-fetching.

// appendMessage writes a ledger entry and streams it to the conversation.
func (s *DefaultBookingService) appendMessage(msg *models.Message) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if err := s.Messages.Create(msg); err != nil {
		s.Logger.Error("ledger append failed after committed transition",
			zap.String("bookingId", msg.BookingID), zap.Error(err))
		return
	}
	s.Hub.Publish(realtime.ConversationTopic(msg.Sender, msg.Receiver), realtime.Event{
		Kind: realtime.EventMessage,
		Payload: realtime.MessagePayload{
			Sender:        msg.Sender,
			Content:       msg.Content,
			MessageType:   msg.MessageType,
			ProposedPrice: msg.ProposedPrice,
			BookingID:     msg.BookingID,
			CreatedAt:     msg.CreatedAt,
		},
	})
}

// notify publishes a toast to the recipient's user topic and mirrors it as a
// push notification. Never published to the acting party's own topic.
func (s *DefaultBookingService) notify(ctx context.Context, recipientID string, payload realtime.NotificationPayload) {
	s.Hub.Publish(realtime.UserTopic(recipientID), realtime.Event{
		Kind:    realtime.EventNotification,
		Payload: payload,
	})
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"type": payload.Type}
	if payload.BookingID != "" {
		data["bookingId"] = payload.BookingID
	}
	if err := s.Notifier.Push(ctx, recipientID, payload.Title, payload.Content, data); err != nil {
		s.Logger.Warn("push notification failed",
			zap.String("recipient", recipientID), zap.Error(err))
	}
}

// publishQuoteUpdate refreshes the booking card in both open chat windows.
func (s *DefaultBookingService) publishQuoteUpdate(customerID, providerUserID string, payload realtime.QuoteUpdatePayload) {
	s.Hub.Publish(realtime.ConversationTopic(customerID, providerUserID), realtime.Event{
		Kind:    realtime.EventQuoteUpdate,
		Payload: payload,
	})
}

// creditEarnings applies the one-time earnings credit decided by the caller's
// committed CAS. The booking's earningsCredited flag already flipped inside
// that save, so this $inc can run at most once per booking.
func (s *DefaultBookingService) creditEarnings(b *models.Booking) {
	if err := s.Providers.IncrementEarnings(b.ProviderID, b.TotalAmount); err != nil {
		s.Logger.Error("earnings credit failed after committed transition",
			zap.String("bookingId", b.ID),
			zap.String("providerId", b.ProviderID),
			zap.Float64("amount", b.TotalAmount),
			zap.Error(err))
	}
}
