package order

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
)

// PaymentIntents abstracts PaymentIntent creation so checkout can be tested
// without the gateway. Only the intent id is kept; capture, webhooks and
// reconciliation are out of scope.
type PaymentIntents interface {
	CreateIntent(amount float64, currency, orderCode string) (string, error)
}

// StripePaymentIntents creates real PaymentIntents. stripe.Key is set once
// at startup from config.
type StripePaymentIntents struct{}

func (StripePaymentIntents) CreateIntent(amount float64, currency, orderCode string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_code", orderCode)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, nil
}
