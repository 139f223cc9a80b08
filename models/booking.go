package models

import "time"

// Booking status values. Rejected, completed and cancelled are terminal.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment status values. Once paid, a booking never reverts to pending.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Payment methods.
const (
	MethodCash   = "cash"
	MethodOnline = "online"
)

// ASAPTime is the sentinel booking time for "as soon as possible" requests
// (chat offers and marketplace leads carry no concrete appointment).
const ASAPTime = "ASAP"

// ServiceDescriptor describes the service a booking is for.
type ServiceDescriptor struct {
	Category    string `bson:"category" json:"category"`
	Description string `bson:"description" json:"description"`
	PriceRange  string `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
}

// Booking is the agreement record between one customer and one provider for
// one service instance. Status and paymentStatus are written exclusively by
// the booking service; Version backs the compare-and-swap update that
// serializes concurrent transitions on the same document, and
// EarningsCredited guarantees the provider earnings credit applies at most
// once per booking regardless of whether payment or completion lands first.
type Booking struct {
	ID               string            `bson:"id" json:"id"`
	CustomerID       string            `bson:"customerId" json:"customerId"`
	ProviderID       string            `bson:"providerId" json:"providerId"`
	Service          ServiceDescriptor `bson:"service" json:"service"`
	BookingDate      time.Time         `bson:"bookingDate" json:"bookingDate"`
	BookingTime      string            `bson:"bookingTime" json:"bookingTime"`
	Status           string            `bson:"status" json:"status"`
	PaymentStatus    string            `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod    string            `bson:"paymentMethod" json:"paymentMethod"`
	ProposedAmount   float64           `bson:"proposedAmount" json:"proposedAmount"`
	TotalAmount      float64           `bson:"totalAmount" json:"totalAmount"`
	Notes            string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Reviewed         bool              `bson:"reviewed" json:"reviewed"`
	EarningsCredited bool              `bson:"earningsCredited" json:"-"`
	Version          int64             `bson:"version" json:"-"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
}

// Terminal reports whether no further status transition is legal.
func (b *Booking) Terminal() bool {
	switch b.Status {
	case BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}
