package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingMoneyComputeAndValidate(t *testing.T) {
	m := BookingMoney{
		ServiceAmount:  500,
		AddonAmount:    300,
		DiscountAmount: 0,
		TaxAmount:      50,
	}
	m.ComputeTotal()

	assert.InDelta(t, 850.0, m.TotalAmount, 0.001)
	require.NoError(t, m.Validate())
}

func TestBookingMoneyValidateRejectsTamperedTotal(t *testing.T) {
	m := BookingMoney{ServiceAmount: 200, TaxAmount: 20}
	m.ComputeTotal()
	require.NoError(t, m.Validate())

	m.TotalAmount = 199
	assert.Error(t, m.Validate())
}

func TestBookingMoneyValidateRejectsNegativeTotal(t *testing.T) {
	m := BookingMoney{ServiceAmount: 100, DiscountAmount: 250}
	m.ComputeTotal()
	assert.Error(t, m.Validate())
}

func TestOrderMoneyComputeAndValidate(t *testing.T) {
	m := OrderMoney{
		Subtotal:     1300,
		ShippingCost: 60,
	}
	m.ComputeTotal()

	assert.InDelta(t, 1360.0, m.TotalAmount, 0.001)
	require.NoError(t, m.Validate())

	m.DiscountAmount = 100
	m.TaxAmount = 63
	m.ComputeTotal()
	assert.InDelta(t, 1323.0, m.TotalAmount, 0.001)
	require.NoError(t, m.Validate())
}

func TestSplitCommissionSumsToTotal(t *testing.T) {
	tests := []struct {
		total float64
		rate  float64
	}{
		{850, 0.15},
		{99.99, 0.15},
		{1360, 0.10},
		{0.01, 0.15},
		{333.33, 0.125},
	}

	for _, tt := range tests {
		commission, earnings := SplitCommission(tt.total, tt.rate)
		assert.InDelta(t, tt.total, commission+earnings, 0.001,
			"total %.2f at rate %.3f must split without losing a cent", tt.total, tt.rate)
		assert.GreaterOrEqual(t, commission, 0.0)
		assert.GreaterOrEqual(t, earnings, 0.0)
	}
}

func TestSplitCommissionRounding(t *testing.T) {
	commission, earnings := SplitCommission(99.99, 0.15)
	assert.InDelta(t, 15.00, commission, 0.001)
	assert.InDelta(t, 84.99, earnings, 0.001)
}
