package models

import "time"

// Notification is a recorded in-app notification row written by the event
// worker. Delivery (push, email) is out of scope; rows are read back by the
// client.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"user_id" json:"user_id"`
	Type      string         `bson:"type" json:"type"` // e.g. "booking_confirmed"
	Message   string         `bson:"message" json:"message"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

// Earning is one provider-earnings ledger entry, written when a booking
// completes. Amounts mirror the commission split fixed at booking creation.
type Earning struct {
	ID               string    `bson:"id" json:"id"`
	ProviderID       string    `bson:"provider_id" json:"provider_id"`
	BookingID        string    `bson:"booking_id" json:"booking_id"`
	BookingCode      string    `bson:"booking_code" json:"booking_code"`
	GrossAmount      float64   `bson:"gross_amount" json:"gross_amount"`
	CommissionAmount float64   `bson:"commission_amount" json:"commission_amount"`
	NetAmount        float64   `bson:"net_amount" json:"net_amount"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
