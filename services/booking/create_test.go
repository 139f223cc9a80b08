package booking

import (
	"context"
	"testing"
	"time"

	"nearfix/models"
)

func TestCreateBookingStartsChatAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	notifier := &stubNotifier{}
	env.svc.Notifier = notifier

	b, err := env.svc.CreateBooking(context.Background(), "cust-1", CreateBookingInput{
		ProviderID:  "prov-1",
		Category:    "Plumbing",
		BookingDate: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		BookingTime: "09:30",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != models.BookingPending {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if b.PaymentStatus != models.PaymentPending {
		t.Errorf("paymentStatus = %q, want pending", b.PaymentStatus)
	}
	if b.Service.PriceRange != "₹300-₹800" {
		t.Errorf("descriptor not copied from provider catalogue: %+v", b.Service)
	}

	msgs, _ := env.messages.ListBetween("cust-1", "prov-user-1")
	if len(msgs) != 1 {
		t.Fatalf("intro messages = %d, want 1", len(msgs))
	}
	if msgs[0].BookingID != b.ID {
		t.Errorf("intro message not linked to booking")
	}

	if len(notifier.pushes) != 1 || notifier.pushes[0] != "prov-user-1" {
		t.Errorf("pushes = %v, want exactly one to prov-user-1", notifier.pushes)
	}
}

func TestCreateBookingUnknownProvider(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateBooking(context.Background(), "cust-1", CreateBookingInput{
		ProviderID: "missing", Category: "Plumbing",
	})
	if !IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestInstantOfferClaimsLead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.reqs.Create(&models.Requirement{
		ID: "req-1", CustomerID: "cust-1", Category: "Plumbing",
		Status: models.RequirementOpen, Urgency: models.UrgencyStandard,
	})

	b, err := env.svc.InstantOffer(ctx, "prov-user-1", InstantOfferInput{
		CustomerID:    "cust-1",
		RequirementID: "req-1",
		Category:      "Plumbing",
		Description:   "Can fix your leaking tap today",
		ProposedPrice: 350,
	})
	if err != nil {
		t.Fatalf("instant offer: %v", err)
	}
	if b.ProposedAmount != 350 {
		t.Errorf("proposedAmount = %v, want 350", b.ProposedAmount)
	}
	if b.BookingTime != models.ASAPTime {
		t.Errorf("bookingTime = %q, want ASAP", b.BookingTime)
	}

	req, _ := env.reqs.GetByID("req-1")
	if req.Status != models.RequirementFulfilled {
		t.Errorf("requirement status = %q, want fulfilled", req.Status)
	}

	quotes := env.messages.byType(models.MessageQuote)
	if len(quotes) != 1 {
		t.Fatalf("quote messages = %d, want 1", len(quotes))
	}
	if quotes[0].ProposedPrice != 350 || quotes[0].BookingID != b.ID {
		t.Errorf("quote message %+v not linked to booking", quotes[0])
	}
}

func TestInstantOfferRequiresPositivePrice(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.InstantOffer(context.Background(), "prov-user-1", InstantOfferInput{
		CustomerID: "cust-1", ProposedPrice: 0,
	})
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation, got %v", err)
	}
}

func TestPromoteQuoteResolvesProviderSide(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Provider sends the quote: provider side is the sender.
	b, err := env.svc.PromoteQuote(ctx, "prov-user-1", "cust-1", 250, "quick fix")
	if err != nil {
		t.Fatalf("promote from provider: %v", err)
	}
	if b.CustomerID != "cust-1" || b.ProviderID != "prov-1" {
		t.Errorf("roles misassigned: customer=%s provider=%s", b.CustomerID, b.ProviderID)
	}

	// Customer initiates toward the provider: roles still resolve the same.
	b2, err := env.svc.PromoteQuote(ctx, "cust-1", "prov-user-1", 250, "counter offer")
	if err != nil {
		t.Fatalf("promote from customer: %v", err)
	}
	if b2.CustomerID != "cust-1" || b2.ProviderID != "prov-1" {
		t.Errorf("roles misassigned: customer=%s provider=%s", b2.CustomerID, b2.ProviderID)
	}
}

func TestPromoteQuoteWithoutProviderRefused(t *testing.T) {
	env := newTestEnv(t)
	env.users.Create(&models.User{ID: "cust-2", FullName: "Vikram Shah"})

	_, err := env.svc.PromoteQuote(context.Background(), "cust-1", "cust-2", 250, "no provider here")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation, got %v", err)
	}
}

func TestOpenLeadsFiltersByCategory(t *testing.T) {
	env := newTestEnv(t)
	env.reqs.Create(&models.Requirement{ID: "req-1", Category: "Plumbing", Status: models.RequirementOpen})
	env.reqs.Create(&models.Requirement{ID: "req-2", Category: "Gardening", Status: models.RequirementOpen})
	env.reqs.Create(&models.Requirement{ID: "req-3", Category: "Plumbing", Status: models.RequirementFulfilled})

	leads, err := env.svc.OpenLeads(context.Background(), "prov-user-1")
	if err != nil {
		t.Fatalf("open leads: %v", err)
	}
	if len(leads) != 1 || leads[0].ID != "req-1" {
		t.Errorf("leads = %+v, want only req-1", leads)
	}
}
