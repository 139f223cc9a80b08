package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	bookingRepo "nearfix/database/repository/booking"
	messageRepo "nearfix/database/repository/message"
	providerRepo "nearfix/database/repository/provider"
	userRepo "nearfix/database/repository/user"
	"nearfix/models"
	"nearfix/realtime"
	"nearfix/services/booking"
	"nearfix/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const unreadCacheTTL = 5 * time.Minute

// DefaultChatService is the production chat service. Quote promotion is the
// one path by which the ledger reaches into booking creation; all other
// booking writes stay in the booking service.
type DefaultChatService struct {
	Messages  messageRepo.MessageRepository
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Users     userRepo.UserRepository
	Booking   booking.BookingService
	Hub       *realtime.Hub
	Notifier  notification.Notifier
	Cache     *redis.Client
	Logger    *zap.Logger
}

func unreadCacheKey(userID string) string {
	return "unread:" + userID
}

func (s *DefaultChatService) invalidateUnread(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		s.Logger.Debug("unread cache invalidation failed", zap.String("userId", userID), zap.Error(err))
	}
}

// SendMessage appends a message to the ledger. A quote without a booking
// reference first gets a pending booking created, and the stored message
// carries the new booking's id.
func (s *DefaultChatService) SendMessage(ctx context.Context, senderID string, in SendMessageInput) (*models.Message, error) {
	if in.Receiver == "" || in.Receiver == senderID {
		return nil, booking.NewGuardError("a message needs a receiver other than the sender")
	}
	msgType := in.MessageType
	if msgType == "" {
		msgType = models.MessageText
	}
	if msgType != models.MessageText && msgType != models.MessageQuote {
		return nil, booking.NewGuardError("unknown message type %q", msgType)
	}
	if msgType == models.MessageText && in.Content == "" {
		return nil, booking.NewGuardError("a text message needs content")
	}

	bookingID := in.BookingID
	if msgType == models.MessageQuote && bookingID == "" {
		b, err := s.Booking.PromoteQuote(ctx, senderID, in.Receiver, in.ProposedPrice, in.Content)
		if err != nil {
			return nil, err
		}
		bookingID = b.ID
	}

	msg := &models.Message{
		ID:            uuid.New().String(),
		Sender:        senderID,
		Receiver:      in.Receiver,
		Content:       in.Content,
		MessageType:   msgType,
		ProposedPrice: in.ProposedPrice,
		BookingID:     bookingID,
		CreatedAt:     time.Now(),
	}
	if err := s.Messages.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.Hub.Publish(realtime.ConversationTopic(senderID, in.Receiver), realtime.Event{
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

	senderName := senderID
	if u, err := s.Users.GetByID(senderID); err == nil && u != nil {
		senderName = u.FullName
	}
	preview := msg.Content
	if msgType == models.MessageQuote {
		preview = fmt.Sprintf("Sent you a quote of ₹%.0f", msg.ProposedPrice)
	}
	payload := realtime.NotificationPayload{
		Title:     senderName,
		Content:   preview,
		Type:      realtime.NotifyMessage,
		SenderID:  senderID,
		BookingID: bookingID,
	}
	s.Hub.Publish(realtime.UserTopic(in.Receiver), realtime.Event{
		Kind:    realtime.EventNotification,
		Payload: payload,
	})
	if s.Notifier != nil {
		data := map[string]string{"type": realtime.NotifyMessage, "senderId": senderID}
		if err := s.Notifier.Push(ctx, in.Receiver, payload.Title, payload.Content, data); err != nil {
			s.Logger.Warn("chat push failed", zap.String("receiver", in.Receiver), zap.Error(err))
		}
	}

	s.invalidateUnread(ctx, in.Receiver)
	return msg, nil
}

// OpenConversation loads the history with the counterpart and settles the
// reader's unread state in the same call.
func (s *DefaultChatService) OpenConversation(ctx context.Context, userID, otherUserID string) (*Conversation, error) {
	msgs, err := s.Messages.ListBetween(userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if err := s.Messages.MarkConversationRead(userID, otherUserID); err != nil {
		s.Logger.Warn("mark-read failed", zap.String("userId", userID), zap.Error(err))
	}
	s.invalidateUnread(ctx, userID)

	conv := &Conversation{Messages: msgs}

	if b, err := s.latestActiveBooking(userID, otherUserID); err == nil {
		conv.ActiveBooking = b
	} else {
		s.Logger.Debug("active booking lookup failed", zap.Error(err))
	}

	total, err := s.Messages.UnreadCount(userID)
	if err != nil {
		s.Logger.Warn("unread recount failed", zap.String("userId", userID), zap.Error(err))
	}
	conv.UnreadTotal = total

	return conv, nil
}

// latestActiveBooking resolves which party owns a provider profile and finds
// the freshest pending or accepted booking between the pair.
func (s *DefaultChatService) latestActiveBooking(userID, otherUserID string) (*models.Booking, error) {
	provider, err := s.Providers.GetByUserID(otherUserID)
	customerID := userID
	if err != nil {
		if !errors.Is(err, providerRepo.ErrNotFound) {
			return nil, err
		}
		provider, err = s.Providers.GetByUserID(userID)
		customerID = otherUserID
		if err != nil {
			if errors.Is(err, providerRepo.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}
	return s.Bookings.LatestActiveBetween(customerID, provider.ID)
}

// ListConversations returns the user's inbox, most recent first.
func (s *DefaultChatService) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	return s.Messages.ListConversations(userID)
}

// UnreadCount serves the badge counter through a short-lived Redis cache; a
// cache miss falls through to the ledger count.
func (s *DefaultChatService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	key := unreadCacheKey(userID)

	if s.Cache != nil {
		if val, err := s.Cache.Get(ctx, key).Result(); err == nil {
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				return n, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.Logger.Debug("unread cache read failed", zap.String("userId", userID), zap.Error(err))
		}
	}

	count, err := s.Messages.UnreadCount(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, strconv.FormatInt(count, 10), unreadCacheTTL).Err(); err != nil {
			s.Logger.Debug("unread cache write failed", zap.String("userId", userID), zap.Error(err))
		}
	}
	return count, nil
}
