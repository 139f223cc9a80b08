package booking

import (
	"context"
	"testing"
	"time"

	"nearfix/models"
)

func TestAcceptQuoteFixesPriceAndMethod(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{ProposedAmount: 500})

	b, err := env.svc.AcceptQuote(context.Background(), "cust-1", "bk-1", models.MethodCash)
	if err != nil {
		t.Fatalf("accept quote: %v", err)
	}
	if b.Status != models.BookingAccepted {
		t.Errorf("status = %q, want accepted", b.Status)
	}
	if b.TotalAmount != 500 {
		t.Errorf("totalAmount = %v, want 500", b.TotalAmount)
	}
	if b.PaymentStatus != models.PaymentPending {
		t.Errorf("cash acceptance must not mark paid, got %q", b.PaymentStatus)
	}
}

func TestAcceptQuoteOnlineMarksPaid(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{ProposedAmount: 750})

	b, err := env.svc.AcceptQuote(context.Background(), "cust-1", "bk-1", models.MethodOnline)
	if err != nil {
		t.Fatalf("accept quote: %v", err)
	}
	if b.PaymentStatus != models.PaymentPaid {
		t.Errorf("online acceptance should mark paid, got %q", b.PaymentStatus)
	}
}

func TestAcceptQuoteWithoutQuoteRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{})

	_, err := env.svc.AcceptQuote(context.Background(), "cust-1", "bk-1", models.MethodCash)
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation for acceptance without a quote, got %v", err)
	}
}

func TestAcceptQuoteOnlyFromPending(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{Status: models.BookingAccepted, ProposedAmount: 500})

	_, err := env.svc.AcceptQuote(context.Background(), "cust-1", "bk-1", models.MethodCash)
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation accepting a non-pending booking, got %v", err)
	}
}

func TestConfirmRequiresAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{})

	_, err := env.svc.ConfirmBooking(context.Background(), "prov-user-1", "bk-1")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation confirming a pending booking, got %v", err)
	}

	env.seedBooking(t, models.Booking{ID: "bk-2", Status: models.BookingAccepted, ProposedAmount: 500})
	b, err := env.svc.ConfirmBooking(context.Background(), "prov-user-1", "bk-2")
	if err != nil {
		t.Fatalf("confirm accepted booking: %v", err)
	}
	if b.Status != models.BookingConfirmed {
		t.Errorf("status = %q, want confirmed", b.Status)
	}
}

type stubScheduler struct {
	scheduled []string // booking ids
}

func (s *stubScheduler) ScheduleReminder(b *models.Booking, providerUserID string) error {
	s.scheduled = append(s.scheduled, b.ID)
	return nil
}

func TestConfirmSchedulesReminderForScheduledBookings(t *testing.T) {
	env := newTestEnv(t)
	sched := &stubScheduler{}
	env.svc.Reminders = sched

	env.seedBooking(t, models.Booking{
		ID:             "bk-scheduled",
		Status:         models.BookingAccepted,
		ProposedAmount: 500,
		BookingDate:    time.Now().Add(72 * time.Hour),
	})
	env.seedBooking(t, models.Booking{
		ID:             "bk-asap",
		Status:         models.BookingAccepted,
		ProposedAmount: 500,
		BookingTime:    models.ASAPTime,
	})
	env.seedBooking(t, models.Booking{
		ID:             "bk-soon",
		Status:         models.BookingAccepted,
		ProposedAmount: 500,
		BookingDate:    time.Now().Add(6 * time.Hour),
	})

	for _, id := range []string{"bk-scheduled", "bk-asap", "bk-soon"} {
		if _, err := env.svc.ConfirmBooking(context.Background(), "prov-user-1", id); err != nil {
			t.Fatalf("confirm %s: %v", id, err)
		}
	}

	if len(sched.scheduled) != 1 || sched.scheduled[0] != "bk-scheduled" {
		t.Errorf("scheduled = %v, want only bk-scheduled", sched.scheduled)
	}
}

func TestCompleteRequiresAgreedPrice(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{})

	_, err := env.svc.CompleteBooking(context.Background(), "prov-user-1", "bk-1")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation completing without a price, got %v", err)
	}
}

func TestCompleteFromAnyNonTerminalStatus(t *testing.T) {
	for _, status := range []string{models.BookingPending, models.BookingAccepted, models.BookingConfirmed} {
		env := newTestEnv(t)
		env.seedBooking(t, models.Booking{Status: status, ProposedAmount: 400})

		b, err := env.svc.CompleteBooking(context.Background(), "prov-user-1", "bk-1")
		if err != nil {
			t.Fatalf("complete from %s: %v", status, err)
		}
		if b.Status != models.BookingCompleted {
			t.Errorf("status = %q, want completed", b.Status)
		}
		if b.TotalAmount != 400 {
			t.Errorf("totalAmount = %v, want 400", b.TotalAmount)
		}
	}
}

func TestCompleteTerminalRefused(t *testing.T) {
	for _, status := range []string{models.BookingRejected, models.BookingCompleted, models.BookingCancelled} {
		env := newTestEnv(t)
		env.seedBooking(t, models.Booking{Status: status, ProposedAmount: 400})

		_, err := env.svc.CompleteBooking(context.Background(), "prov-user-1", "bk-1")
		if !IsGuardViolation(err) {
			t.Fatalf("want guard violation completing a %s booking, got %v", status, err)
		}
	}
}

func TestCancelPendingAlwaysAllowed(t *testing.T) {
	env := newTestEnv(t)
	// Appointment in two hours: inside the 24h window, but pending cancels
	// unconditionally.
	env.seedBooking(t, models.Booking{BookingDate: time.Now().Add(2 * time.Hour)})

	b, err := env.svc.CancelBooking(context.Background(), "cust-1", "bk-1")
	if err != nil {
		t.Fatalf("cancel pending booking: %v", err)
	}
	if b.Status != models.BookingCancelled {
		t.Errorf("status = %q, want cancelled", b.Status)
	}
}

func TestCancelAcceptedInsideWindowRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{
		Status:         models.BookingAccepted,
		ProposedAmount: 500,
		BookingDate:    time.Now().Add(2 * time.Hour),
	})

	_, err := env.svc.CancelBooking(context.Background(), "cust-1", "bk-1")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation cancelling inside the 24h window, got %v", err)
	}
}

func TestCancelAcceptedOutsideWindowAllowed(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{
		Status:         models.BookingAccepted,
		ProposedAmount: 500,
		BookingDate:    time.Now().Add(48 * time.Hour),
	})

	b, err := env.svc.CancelBooking(context.Background(), "cust-1", "bk-1")
	if err != nil {
		t.Fatalf("cancel outside window: %v", err)
	}
	if b.Status != models.BookingCancelled {
		t.Errorf("status = %q, want cancelled", b.Status)
	}
}

func TestCancelASAPOnlyWhilePending(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{
		Status:         models.BookingAccepted,
		ProposedAmount: 300,
		BookingTime:    models.ASAPTime,
	})

	_, err := env.svc.CancelBooking(context.Background(), "cust-1", "bk-1")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation cancelling an accepted ASAP booking, got %v", err)
	}
}

func TestRejectOnlyPending(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{Status: models.BookingAccepted, ProposedAmount: 500})

	_, err := env.svc.RejectBooking(context.Background(), "prov-user-1", "bk-1")
	if !IsGuardViolation(err) {
		t.Fatalf("want guard violation rejecting a non-pending booking, got %v", err)
	}

	env.seedBooking(t, models.Booking{ID: "bk-2"})
	b, err := env.svc.RejectBooking(context.Background(), "prov-user-1", "bk-2")
	if err != nil {
		t.Fatalf("reject pending booking: %v", err)
	}
	if b.Status != models.BookingRejected {
		t.Errorf("status = %q, want rejected", b.Status)
	}
}

func TestTransitionsRefusedForWrongParty(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooking(t, models.Booking{ProposedAmount: 500})

	if _, err := env.svc.AcceptQuote(context.Background(), "someone-else", "bk-1", models.MethodCash); !IsGuardViolation(err) {
		t.Errorf("accept by stranger: want guard violation, got %v", err)
	}
	if _, err := env.svc.CancelBooking(context.Background(), "someone-else", "bk-1"); !IsGuardViolation(err) {
		t.Errorf("cancel by stranger: want guard violation, got %v", err)
	}
	if _, err := env.svc.RejectBooking(context.Background(), "cust-1", "bk-1"); !IsNotFound(err) {
		t.Errorf("reject by non-provider: want not found, got %v", err)
	}
}

func TestUnknownBookingNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.AcceptQuote(context.Background(), "cust-1", "missing", models.MethodCash)
	if !IsNotFound(err) {
		t.Fatalf("want not found for unknown booking, got %v", err)
	}
}

// Full cash lifecycle: create, quote, accept, confirm, complete, pay. The
// earnings credit lands exactly once, at payment, since completion preceded
// it.
func TestFullCashLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, "cust-1", CreateBookingInput{
		ProviderID:  "prov-1",
		Category:    "Plumbing",
		BookingDate: time.Now().Add(96 * time.Hour).Format(time.RFC3339),
		BookingTime: "14:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.svc.SendQuote(ctx, "prov-user-1", created.ID, 650); err != nil {
		t.Fatalf("quote: %v", err)
	}
	if _, err := env.svc.AcceptQuote(ctx, "cust-1", created.ID, models.MethodCash); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := env.svc.ConfirmBooking(ctx, "prov-user-1", created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := env.svc.CompleteBooking(ctx, "prov-user-1", created.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if got := env.providers.earnings("prov-1"); got != 0 {
		t.Fatalf("earnings before payment = %v, want 0", got)
	}

	paid, err := env.svc.MarkPaid(ctx, ActorProvider, created.ID, models.MethodCash)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.PaymentStatus != models.PaymentPaid {
		t.Errorf("paymentStatus = %q, want paid", paid.PaymentStatus)
	}
	if got := env.providers.earnings("prov-1"); got != 650 {
		t.Errorf("earnings after payment = %v, want 650", got)
	}

	// Quote ledger entries: the price quote from SendQuote.
	quotes := env.messages.byType(models.MessageQuote)
	if len(quotes) != 1 {
		t.Errorf("quote messages = %d, want 1", len(quotes))
	}
}

// Payment before completion: the credit waits for completion.
func TestEarningsCreditedAtCompletionWhenPaidFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.Booking{Status: models.BookingConfirmed, ProposedAmount: 800})

	if _, err := env.svc.MarkPaid(ctx, ActorCustomer, "bk-1", models.MethodCash); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if got := env.providers.earnings("prov-1"); got != 0 {
		t.Fatalf("earnings before completion = %v, want 0", got)
	}

	if _, err := env.svc.CompleteBooking(ctx, "prov-user-1", "bk-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := env.providers.earnings("prov-1"); got != 800 {
		t.Errorf("earnings after completion = %v, want 800", got)
	}
}
