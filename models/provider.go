package models

import "time"

// ProviderService is one service a provider offers.
type ProviderService struct {
	Category    string `bson:"category" json:"category"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	PriceRange  string `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
}

// Provider is the professional profile attached to a user account.
// Earnings is a running total credited exactly once per booking, at the
// moment that booking is both paid and completed.
type Provider struct {
	ID            string            `bson:"id" json:"id"`
	UserID        string            `bson:"userId" json:"userId"`
	Bio           string            `bson:"bio" json:"bio"`
	Experience    int               `bson:"experience" json:"experience"`
	Services      []ProviderService `bson:"services" json:"services"`
	IsVerified    bool              `bson:"isVerified" json:"isVerified"`
	AverageRating float64           `bson:"averageRating" json:"averageRating"`
	TotalReviews  int               `bson:"totalReviews" json:"totalReviews"`
	Earnings      float64           `bson:"earnings" json:"earnings"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
}
