package models

import (
	"time"

	"sokoni/domain"
)

// OrderItem is a snapshot of one cart line at checkout time. Name, image and
// unit price are denormalized so later catalog edits never retroactively
// alter historical orders.
type OrderItem struct {
	ProductID  string  `bson:"product_id" json:"product_id"`
	SellerID   string  `bson:"seller_id" json:"seller_id"`
	Name       string  `bson:"name" json:"name"`
	ImageURL   string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
	UnitPrice  float64 `bson:"unit_price" json:"unit_price"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	TotalPrice float64 `bson:"total_price" json:"total_price"`
}

// Tracking holds shipping metadata set when an order moves to shipped.
type Tracking struct {
	Carrier   string    `bson:"carrier" json:"carrier"`
	Number    string    `bson:"number" json:"number"`
	ShippedAt time.Time `bson:"shipped_at" json:"shipped_at"`
}

// Order is a multi-item product checkout. Items are embedded, so the order
// and its lines are written in a single atomic insert.
type Order struct {
	ID            string             `bson:"id" json:"id"`
	Code          string             `bson:"code" json:"code"` // human-readable reference, e.g. ORD-9C41D0
	CustomerID    string             `bson:"customer_id" json:"customer_id"`
	AddressID     string             `bson:"address_id" json:"address_id"`
	AddressText   string             `bson:"address_text" json:"address_text"` // denormalized at checkout
	ContactPhone  string             `bson:"contact_phone" json:"contact_phone"`
	Status        domain.OrderStatus `bson:"status" json:"status"`
	Payment       PaymentStatus      `bson:"payment_status" json:"payment_status"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"` // "cod" or "card"
	PaymentRef    string             `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`
	Money         domain.OrderMoney  `bson:"money" json:"money"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Tracking      *Tracking          `bson:"tracking,omitempty" json:"tracking,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Cancellation  *Cancellation      `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	DeliveredAt   *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// SellerIDs returns the distinct sellers represented in the order's items.
func (o *Order) SellerIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range o.Items {
		if _, dup := seen[it.SellerID]; dup {
			continue
		}
		seen[it.SellerID] = struct{}{}
		out = append(out, it.SellerID)
	}
	return out
}
