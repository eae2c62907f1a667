package order

import (
	"context"

	catalogRepo "sokoni/database/repository/catalog"
	orderRepo "sokoni/database/repository/order"
	userRepo "sokoni/database/repository/user"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/services/cart"
	"sokoni/services/tasks"

	"go.uber.org/zap"
)

// CheckoutInput is what a customer submits at checkout. The items come from
// the server-side cart, never the request body.
type CheckoutInput struct {
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method"` // "cod" or "card"
	Notes         string `json:"notes,omitempty"`
}

// TransitionInput names the target status directly; the seller dashboard
// drives a status control. Tracking fields apply when moving to shipped.
type TransitionInput struct {
	Target          domain.OrderStatus `json:"target"`
	TrackingCarrier string             `json:"tracking_carrier,omitempty"`
	TrackingNumber  string             `json:"tracking_number,omitempty"`
	Reason          string             `json:"reason,omitempty"`
}

// OrderService orchestrates checkout and fulfillment transitions.
type OrderService interface {
	Checkout(ctx context.Context, actor domain.Actor, input CheckoutInput) (*models.Order, error)
	Transition(ctx context.Context, actor domain.Actor, id string, input TransitionInput) (*models.Order, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*models.Order, error)
	ListForCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]models.Order, error)
	ListForSeller(ctx context.Context, actor domain.Actor, sellerID string) ([]models.Order, error)
}

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Repo         orderRepo.OrderRepository
	Catalog      catalogRepo.CatalogRepository
	Users        userRepo.UserRepository
	Cart         cart.CartService
	Payments     PaymentIntents
	Events       tasks.Publisher
	Logger       *zap.Logger
	TaxRate      float64
	ShippingCost float64
}
