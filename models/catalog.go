package models

import "time"

// Service is a provider-offered service in the catalog. Its price is read at
// booking creation time only; later edits never alter existing bookings.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"provider_id" json:"provider_id"`
	Name            string    `bson:"name" json:"name"`
	Category        string    `bson:"category" json:"category"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice       float64   `bson:"base_price" json:"base_price"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// Product is a seller-offered product in the catalog. Orders snapshot its
// name, image and price at checkout.
type Product struct {
	ID        string    `bson:"id" json:"id"`
	SellerID  string    `bson:"seller_id" json:"seller_id"`
	Name      string    `bson:"name" json:"name"`
	Category  string    `bson:"category" json:"category"`
	ImageURL  string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Price     float64   `bson:"price" json:"price"`
	Stock     int       `bson:"stock" json:"stock"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
