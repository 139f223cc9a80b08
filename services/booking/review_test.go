package booking

import (
	"context"
	"testing"

	"nearfix/models"
)

func TestSubmitReviewRequiresCompletion(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{Status: models.BookingConfirmed, ProposedAmount: 500})

	_, err := env.svc.SubmitReview(context.Background(), "cust-1", "bk-1", 5, "great work")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation reviewing an incomplete booking, got %v", err)
	}
}

func TestSubmitReviewOncePerBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.Booking{Status: models.BookingCompleted, ProposedAmount: 500, TotalAmount: 500})

	review, err := env.svc.SubmitReview(ctx, "cust-1", "bk-1", 4, "solid job")
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if review.Rating != 4 {
		t.Errorf("rating = %d, want 4", review.Rating)
	}

	_, err = env.svc.SubmitReview(ctx, "cust-1", "bk-1", 5, "changed my mind")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation on second review, got %v", err)
	}
}

func TestSubmitReviewUpdatesProviderAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.Booking{ID: "bk-1", Status: models.BookingCompleted, ProposedAmount: 100})
	env.seedBooking(t, models.Booking{ID: "bk-2", Status: models.BookingCompleted, ProposedAmount: 100})

	if _, err := env.svc.SubmitReview(ctx, "cust-1", "bk-1", 5, ""); err != nil {
		t.Fatalf("review 1: %v", err)
	}
	if _, err := env.svc.SubmitReview(ctx, "cust-1", "bk-2", 3, ""); err != nil {
		t.Fatalf("review 2: %v", err)
	}

	p, err := env.providers.GetByID("prov-1")
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	if p.TotalReviews != 2 {
		t.Errorf("totalReviews = %d, want 2", p.TotalReviews)
	}
	if p.AverageRating != 4 {
		t.Errorf("averageRating = %v, want 4", p.AverageRating)
	}
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{Status: models.BookingCompleted, ProposedAmount: 500})

	for _, rating := range []int{0, 6, -1} {
		if _, err := env.svc.SubmitReview(context.Background(), "cust-1", "bk-1", rating, ""); !IsGuardViolation(err) {
			t.Errorf("rating %d: want guard violation, got %v", rating, err)
		}
	}
}
