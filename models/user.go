package models

import (
	"time"

	"sokoni/domain"
)

// Address is a saved delivery/service address on a user account.
type Address struct {
	ID      string   `bson:"id" json:"id"`
	Label   string   `bson:"label" json:"label"` // e.g. "home", "office"
	Line    string   `bson:"line" json:"line"`   // free-text street address
	City    string   `bson:"city" json:"city"`
	Phone   string   `bson:"phone" json:"phone"`
	Lat     *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	Default bool     `bson:"default" json:"default"`
}

// ProviderProfile carries the provider-facing details of a user with the
// provider role.
type ProviderProfile struct {
	DisplayName string  `bson:"display_name" json:"display_name"`
	ServiceArea string  `bson:"service_area" json:"service_area"`
	Bio         string  `bson:"bio,omitempty" json:"bio,omitempty"`
	Rating      float64 `bson:"rating" json:"rating"`
	Verified    bool    `bson:"verified" json:"verified"`
}

// User is an account on the platform. Role decides which side of the
// marketplace the account acts from.
type User struct {
	ID           string           `bson:"id" json:"id"`
	Name         string           `bson:"name" json:"name"`
	Email        string           `bson:"email" json:"email"`
	Phone        string           `bson:"phone" json:"phone"`
	PasswordHash string           `bson:"password_hash" json:"-"`
	Role         domain.Role      `bson:"role" json:"role"`
	Addresses    []Address        `bson:"addresses,omitempty" json:"addresses,omitempty"`
	Provider     *ProviderProfile `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt    time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `bson:"updated_at" json:"updated_at"`
}

// AddressByID returns the saved address with the given id, if any.
func (u *User) AddressByID(id string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}
