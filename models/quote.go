package models

import (
	"time"

	"sokoni/domain"
)

// QuoteResponse is a provider's offer on a quote request.
type QuoteResponse struct {
	ID             string    `bson:"id" json:"id"`
	Message        string    `bson:"message" json:"message"`
	QuotedPrice    float64   `bson:"quoted_price" json:"quoted_price"`
	EstimatedHours float64   `bson:"estimated_hours" json:"estimated_hours"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Quote is a customer request for a custom price on non-standardized work.
type Quote struct {
	ID          string             `bson:"id" json:"id"`
	Code        string             `bson:"code" json:"code"` // e.g. QTE-1B09E4
	CustomerID  string             `bson:"customer_id" json:"customer_id"`
	ProviderID  string             `bson:"provider_id" json:"provider_id"`
	ServiceID   string             `bson:"service_id,omitempty" json:"service_id,omitempty"`
	Description string             `bson:"description" json:"description"`
	Status      domain.QuoteStatus `bson:"status" json:"status"`
	Responses   []QuoteResponse    `bson:"responses,omitempty" json:"responses,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// LatestResponse returns the provider's most recent offer, if any.
func (q *Quote) LatestResponse() *QuoteResponse {
	if len(q.Responses) == 0 {
		return nil
	}
	return &q.Responses[len(q.Responses)-1]
}
