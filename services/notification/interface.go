package notification

import (
	"context"
	"fmt"

	userRepo "nearfix/database/repository/user"
	"nearfix/utils"

	"firebase.google.com/go/v4/messaging"
)

// Notifier delivers a push notification to a user's registered device.
// Delivery is best-effort; callers log and continue on failure.
type Notifier interface {
	Push(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultNotificationService sends FCM pushes using the token stored on the
// user account.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

// Push looks up the user's FCM token and sends a push notification.
func (s *DefaultNotificationService) Push(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("push: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		// No registered device; nothing to deliver.
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("push: failed to send FCM message to %s: %w", userID, err)
	}
	return nil
}
