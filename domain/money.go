package domain

import (
	"errors"
	"fmt"
	"math"
)

// BookingMoney is the monetary breakdown of a booking. All fields are fixed
// at creation time; status transitions never touch them.
type BookingMoney struct {
	ServiceAmount  float64 `bson:"service_amount" json:"service_amount"`
	AddonAmount    float64 `bson:"addon_amount" json:"addon_amount"`
	DiscountAmount float64 `bson:"discount_amount" json:"discount_amount"`
	TaxAmount      float64 `bson:"tax_amount" json:"tax_amount"`
	TotalAmount    float64 `bson:"total_amount" json:"total_amount"`
}

// OrderMoney is the monetary breakdown of an order, fixed at checkout.
type OrderMoney struct {
	Subtotal       float64 `bson:"subtotal" json:"subtotal"`
	ShippingCost   float64 `bson:"shipping_cost" json:"shipping_cost"`
	DiscountAmount float64 `bson:"discount_amount" json:"discount_amount"`
	TaxAmount      float64 `bson:"tax_amount" json:"tax_amount"`
	TotalAmount    float64 `bson:"total_amount" json:"total_amount"`
}

// ComputeTotal fills TotalAmount from the components.
func (m *BookingMoney) ComputeTotal() {
	m.TotalAmount = round2(m.ServiceAmount + m.AddonAmount - m.DiscountAmount + m.TaxAmount)
}

// Validate checks the booking total invariant.
func (m BookingMoney) Validate() error {
	if !moneyEqual(m.TotalAmount, m.ServiceAmount+m.AddonAmount-m.DiscountAmount+m.TaxAmount) {
		return fmt.Errorf("booking total %.2f does not match its components", m.TotalAmount)
	}
	if m.TotalAmount < 0 {
		return errors.New("booking total cannot be negative")
	}
	return nil
}

// ComputeTotal fills TotalAmount from the components.
func (m *OrderMoney) ComputeTotal() {
	m.TotalAmount = round2(m.Subtotal + m.ShippingCost - m.DiscountAmount + m.TaxAmount)
}

// Validate checks the order total invariant.
func (m OrderMoney) Validate() error {
	if !moneyEqual(m.TotalAmount, m.Subtotal+m.ShippingCost-m.DiscountAmount+m.TaxAmount) {
		return fmt.Errorf("order total %.2f does not match its components", m.TotalAmount)
	}
	if m.TotalAmount < 0 {
		return errors.New("order total cannot be negative")
	}
	return nil
}

// SplitCommission divides a booking total between the platform and the
// provider at the given rate. The two parts always sum exactly to total:
// the commission is rounded and the provider receives the remainder.
func SplitCommission(total, rate float64) (commission, earnings float64) {
	commission = round2(total * rate)
	earnings = round2(total - commission)
	return commission, earnings
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
