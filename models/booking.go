package models

import (
	"time"

	"sokoni/domain"
)

// PaymentStatus tracks whether money has been collected for a booking or
// order. The gateway itself is out of scope; references are stored as plain
// strings.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Cancellation records who cancelled an engagement and why.
type Cancellation struct {
	Reason string    `bson:"reason" json:"reason"`
	Actor  string    `bson:"actor" json:"actor"` // user id of who cancelled
	Role   string    `bson:"role" json:"role"`
	At     time.Time `bson:"at" json:"at"`
}

// Booking is a scheduled engagement of a customer with a service provider.
// Monetary fields are written once at creation; transitions only ever touch
// status and its bookkeeping fields.
type Booking struct {
	ID          string               `bson:"id" json:"id"`
	Code        string               `bson:"code" json:"code"` // human-readable reference, e.g. BKG-7F3A21
	CustomerID  string               `bson:"customer_id" json:"customer_id"`
	ProviderID  string               `bson:"provider_id" json:"provider_id"`
	ServiceID   string               `bson:"service_id" json:"service_id"`
	ServiceName string               `bson:"service_name" json:"service_name"` // snapshot at creation
	ScheduledAt time.Time            `bson:"scheduled_at" json:"scheduled_at"`
	Address     string               `bson:"address" json:"address"`
	Lat         *float64             `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng         *float64             `bson:"lng,omitempty" json:"lng,omitempty"`
	Status      domain.BookingStatus `bson:"status" json:"status"`
	Payment     PaymentStatus        `bson:"payment_status" json:"payment_status"`
	Money       domain.BookingMoney  `bson:"money" json:"money"`

	// Commission split, computed once from Money.TotalAmount.
	CommissionRate   float64 `bson:"commission_rate" json:"commission_rate"`
	CommissionAmount float64 `bson:"commission_amount" json:"commission_amount"`
	ProviderEarnings float64 `bson:"provider_earnings" json:"provider_earnings"`

	Cancellation *Cancellation `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	CompletedAt  *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}
