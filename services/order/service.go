package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/services/tasks"
	"sokoni/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Checkout turns the customer's cart into an order. All validation happens
// before any persistence; the order (with embedded item snapshots) and the
// stock decrements commit in one transaction; the cart is cleared only after
// that transaction succeeds, so a failed checkout leaves both the catalog
// and the cart untouched.
func (s *DefaultOrderService) Checkout(ctx context.Context, actor domain.Actor, input CheckoutInput) (*models.Order, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers check out", ErrForbidden)
	}
	if input.PaymentMethod != PaymentMethodCOD && input.PaymentMethod != PaymentMethodCard {
		return nil, fmt.Errorf("%w: unsupported payment method %q", ErrValidation, input.PaymentMethod)
	}
	if strings.TrimSpace(input.AddressID) == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrValidation)
	}

	user, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	address := user.AddressByID(input.AddressID)
	if address == nil {
		return nil, fmt.Errorf("%w: address %s is not on this account", ErrValidation, input.AddressID)
	}

	c, err := s.Cart.Get(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Snapshot every line from the catalog at this moment. Prices, names and
	// images on the order never change again, whatever happens to the
	// products later.
	items := make([]models.OrderItem, 0, len(c.Lines))
	var subtotal float64
	for _, line := range c.Lines {
		if line.Quantity <= 0 {
			continue
		}
		p, err := s.Catalog.GetProduct(ctx, line.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s no longer exists", ErrValidation, line.ProductID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: product %s is no longer available", ErrValidation, p.Name)
		}
		if p.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, p.Name, p.Stock)
		}

		lineTotal := round2(p.Price * float64(line.Quantity))
		items = append(items, models.OrderItem{
			ProductID:  p.ID,
			SellerID:   p.SellerID,
			Name:       p.Name,
			ImageURL:   p.ImageURL,
			UnitPrice:  p.Price,
			Quantity:   line.Quantity,
			TotalPrice: lineTotal,
		})
		subtotal += lineTotal
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	money := domain.OrderMoney{
		Subtotal:     round2(subtotal),
		ShippingCost: s.ShippingCost,
	}
	money.TaxAmount = round2(money.Subtotal * s.TaxRate)
	money.ComputeTotal()
	if err := money.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	status := domain.OrderProcessing
	if input.PaymentMethod == PaymentMethodCard {
		status = domain.OrderPendingPayment
	}

	now := time.Now()
	order := models.Order{
		ID:            uuid.New().String(),
		Code:          utils.NewReferenceCode("ORD"),
		CustomerID:    actor.ID,
		AddressID:     address.ID,
		AddressText:   address.Line + ", " + address.City,
		ContactPhone:  address.Phone,
		Status:        status,
		Payment:       models.PaymentUnpaid,
		PaymentMethod: input.PaymentMethod,
		Money:         money,
		Items:         items,
		Notes:         strings.TrimSpace(input.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.PaymentMethod == PaymentMethodCard && s.Payments != nil {
		ref, err := s.Payments.CreateIntent(money.TotalAmount, "usd", order.Code)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		order.PaymentRef = ref
	}

	if err := s.Repo.CreateWithStock(ctx, order); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// The order is durable; only now is the cart dropped.
	if err := s.Cart.Clear(ctx, actor.ID); err != nil {
		s.Logger.Warn("order persisted but cart not cleared",
			zap.String("order", order.Code), zap.Error(err))
	}

	s.Logger.Info("order created",
		zap.String("order", order.Code),
		zap.String("customer", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Money.TotalAmount),
	)
	s.publish(ctx, tasks.EventOrderCreated, &order, actor)

	return &order, nil
}

// Transition applies one fulfillment status change. Validity comes from the
// forward-only transition table; the write is a compare-and-swap on the
// status the decision was made against. Cancelling returns reserved stock.
func (s *DefaultOrderService) Transition(ctx context.Context, actor domain.Actor, id string, input TransitionInput) (*models.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, order); err != nil {
		return nil, err
	}

	next, err := domain.NextOrderStatus(order.Status, input.Target, actor.Role)
	if err != nil {
		return nil, err
	}

	extra := bson.M{}
	now := time.Now()
	var tracking *models.Tracking
	switch next {
	case domain.OrderShipped:
		tracking = &models.Tracking{
			Carrier:   strings.TrimSpace(input.TrackingCarrier),
			Number:    strings.TrimSpace(input.TrackingNumber),
			ShippedAt: now,
		}
		extra["tracking"] = tracking
	case domain.OrderDelivered:
		extra["delivered_at"] = now
		if order.PaymentMethod == PaymentMethodCOD {
			extra["payment_status"] = models.PaymentPaid
		}
	case domain.OrderCancelled:
		extra["cancellation"] = models.Cancellation{
			Reason: input.Reason,
			Actor:  actor.ID,
			Role:   string(actor.Role),
			At:     now,
		}
	}

	if err := s.Repo.UpdateStatusCAS(ctx, id, order.Status, next, extra); err != nil {
		return nil, s.translateCASError(ctx, id, err)
	}

	if next == domain.OrderCancelled {
		if err := s.Repo.RestockItems(ctx, order.Items); err != nil {
			s.Logger.Error("order cancelled but restock failed",
				zap.String("order", order.Code), zap.Error(err))
		}
	}

	prev := order.Status
	order.Status = next
	order.UpdatedAt = now
	switch next {
	case domain.OrderShipped:
		order.Tracking = tracking
	case domain.OrderDelivered:
		order.DeliveredAt = &now
		if order.PaymentMethod == PaymentMethodCOD {
			order.Payment = models.PaymentPaid
		}
	}

	s.Logger.Info("order transitioned",
		zap.String("order", order.Code),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.String("actor", actor.ID),
	)
	s.publish(ctx, eventForStatus(next), order, actor)

	return order, nil
}

func (s *DefaultOrderService) Get(ctx context.Context, actor domain.Actor, id string) (*models.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *DefaultOrderService) ListForCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]models.Order, error) {
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, fmt.Errorf("%w: cannot list another customer's orders", ErrForbidden)
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *DefaultOrderService) ListForSeller(ctx context.Context, actor domain.Actor, sellerID string) ([]models.Order, error) {
	if !actor.IsAdmin() && actor.ID != sellerID {
		return nil, fmt.Errorf("%w: cannot list another seller's orders", ErrForbidden)
	}
	return s.Repo.ListBySeller(ctx, sellerID)
}

func (s *DefaultOrderService) load(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

// authorize checks that the actor is a party to the order: the customer who
// placed it, a seller with items in it, or an admin.
func (s *DefaultOrderService) authorize(actor domain.Actor, order *models.Order) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if order.CustomerID == actor.ID {
			return nil
		}
	case domain.RoleSeller:
		for _, sellerID := range order.SellerIDs() {
			if sellerID == actor.ID {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: actor %s is not a party to order %s", ErrForbidden, actor.ID, order.Code)
}

func (s *DefaultOrderService) translateCASError(ctx context.Context, id string, err error) error {
	if !errors.Is(err, repository.ErrStaleStatus) {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if _, loadErr := s.Repo.GetByID(ctx, id); errors.Is(loadErr, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ErrStatusConflict
}

func (s *DefaultOrderService) publish(ctx context.Context, event string, order *models.Order, actor domain.Actor) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(ctx, tasks.LifecycleEvent{
		Entity:     "order",
		Event:      event,
		EntityID:   order.ID,
		Code:       order.Code,
		ActorID:    actor.ID,
		CustomerID: order.CustomerID,
		PartyIDs:   order.SellerIDs(),
	})
}

func eventForStatus(next domain.OrderStatus) string {
	switch next {
	case domain.OrderShipped:
		return tasks.EventOrderShipped
	case domain.OrderDelivered:
		return tasks.EventOrderDelivered
	case domain.OrderCancelled:
		return tasks.EventOrderCancelled
	default:
		return tasks.EventOrderStatus
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
