package models

import "time"

// Requirement status values.
const (
	RequirementOpen      = "open"
	RequirementFulfilled = "fulfilled"
	RequirementClosed    = "closed"
)

// Urgency levels for a posted requirement.
const (
	UrgencyStandard  = "standard"
	UrgencyEmergency = "emergency"
	UrgencyASAP      = "asap"
)

// Requirement is a customer-posted service need that providers can claim
// with an instant offer.
type Requirement struct {
	ID          string    `bson:"id" json:"id"`
	CustomerID  string    `bson:"customerId" json:"customerId"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Budget      string    `bson:"budget,omitempty" json:"budget,omitempty"`
	Urgency     string    `bson:"urgency" json:"urgency"`
	Status      string    `bson:"status" json:"status"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
