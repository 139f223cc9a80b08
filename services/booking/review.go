package booking

import (
	"context"
	"fmt"
	"time"

	"nearfix/models"
	"nearfix/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitReview records the customer's one-time rating of a completed booking
// and refreshes the provider's aggregate stats. The reviewed flag flips
// through the versioned write, so double submissions lose the race instead of
// double counting.
func (s *DefaultBookingService) SubmitReview(ctx context.Context, customerID, bookingID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, NewGuardError("rating must be between 1 and 5")
	}

	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, NewGuardError("booking %s does not belong to this customer", bookingID)
	}
	if b.Status != models.BookingCompleted {
		return nil, NewGuardError("only a completed booking can be reviewed, got %s", b.Status)
	}
	if b.Reviewed {
		return nil, NewGuardError("booking %s has already been reviewed", bookingID)
	}

	b.Reviewed = true
	if err := s.save(b); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		CustomerID: customerID,
		ProviderID: b.ProviderID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	if err := s.Reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	count, average, err := s.Reviews.ProviderStats(b.ProviderID)
	if err != nil {
		s.Logger.Warn("review stats refresh failed", zap.String("providerId", b.ProviderID), zap.Error(err))
		return review, nil
	}
	if err := s.Providers.UpdateRating(b.ProviderID, average, count); err != nil {
		s.Logger.Warn("provider rating update failed", zap.String("providerId", b.ProviderID), zap.Error(err))
	}

	if providerUserID, err := s.providerUserID(b); err == nil {
		s.notify(ctx, providerUserID, realtime.NotificationPayload{
			Title:     "New Review ⭐",
			Content:   fmt.Sprintf("%s rated your %s service %d/5.", s.userName(customerID), b.Service.Category, rating),
			Type:      realtime.NotifySuccess,
			SenderID:  customerID,
			BookingID: b.ID,
		})
	}

	return review, nil
}
