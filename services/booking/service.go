package booking

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

// Create validates the request, prices it from the current catalog, and
// persists the booking in pending status. Monetary fields and the
// commission split are fixed here and never recomputed.
func (s *DefaultBookingService) Create(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*models.Booking, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers create bookings", ErrForbidden)
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if strings.TrimSpace(input.ServiceID) == "" {
		return nil, fmt.Errorf("%w: service is required", ErrValidation)
	}
	if input.ScheduledAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled time is in the past", ErrValidation)
	}
	if input.AddonAmount < 0 || input.DiscountAmount < 0 {
		return nil, fmt.Errorf("%w: negative amounts", ErrValidation)
	}

	svc, err := s.Catalog.GetService(ctx, input.ServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown service %s", ErrValidation, input.ServiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if !svc.Active {
		return nil, fmt.Errorf("%w: service %s is not bookable", ErrValidation, svc.Name)
	}

	money := domain.BookingMoney{
		ServiceAmount:  svc.BasePrice,
		AddonAmount:    input.AddonAmount,
		DiscountAmount: input.DiscountAmount,
	}
	money.TaxAmount = taxOn(money.ServiceAmount+money.AddonAmount-money.DiscountAmount, s.TaxRate)
	money.ComputeTotal()
	if err := money.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	commission, earnings := domain.SplitCommission(money.TotalAmount, s.CommissionRate)

	now := time.Now()
	booking := models.Booking{
		ID:               uuid.New().String(),
		Code:             utils.NewReferenceCode("BKG"),
		CustomerID:       actor.ID,
		ProviderID:       svc.ProviderID,
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		ScheduledAt:      input.ScheduledAt,
		Address:          strings.TrimSpace(input.Address),
		Lat:              input.Lat,
		Lng:              input.Lng,
		Status:           domain.BookingPending,
		Payment:          models.PaymentUnpaid,
		Money:            money,
		CommissionRate:   s.CommissionRate,
		CommissionAmount: commission,
		ProviderEarnings: earnings,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("booking", booking.Code),
		zap.String("customer", booking.CustomerID),
		zap.String("provider", booking.ProviderID),
		zap.Float64("total", booking.Money.TotalAmount),
	)
	s.publish(ctx, tasks.EventBookingCreated, &booking, actor)

	return &booking, nil
}

// Transition applies one lifecycle action. The allowed-transition table
// decides validity; the repository write is a compare-and-swap on the
// status the decision was made against, so concurrent actors cannot both
// win. Monetary fields are never part of the update.
func (s *DefaultBookingService) Transition(ctx context.Context, actor domain.Actor, id string, action domain.BookingAction, reason string) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, booking); err != nil {
		return nil, err
	}

	next, err := domain.NextBookingStatus(booking.Status, action, actor.Role)
	if err != nil {
		return nil, err
	}

	extra := bson.M{}
	now := time.Now()
	switch next {
	case domain.BookingCompleted:
		extra["completed_at"] = now
	case domain.BookingCancelled:
		extra["cancellation"] = models.Cancellation{
			Reason: reason,
			Actor:  actor.ID,
			Role:   string(actor.Role),
			At:     now,
		}
	}

	if err := s.Repo.UpdateStatusCAS(ctx, id, booking.Status, next, extra); err != nil {
		return nil, s.translateCASError(ctx, id, err)
	}

	prev := booking.Status
	booking.Status = next
	booking.UpdatedAt = now
	if next == domain.BookingCompleted {
		booking.CompletedAt = &now
	}

	s.Logger.Info("booking transitioned",
		zap.String("booking", booking.Code),
		zap.String("action", string(action)),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.String("actor", actor.ID),
	)
	s.publish(ctx, eventForStatus(next), booking, actor)

	return booking, nil
}

// OverrideStatus lets support set a status the regular table never
// produces. It still refuses to leave terminal statuses, and it still goes
// through the compare-and-swap write.
func (s *DefaultBookingService) OverrideStatus(ctx context.Context, actor domain.Actor, id string, target domain.BookingStatus) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanOverrideBookingStatus(booking.Status, target, actor.Role); err != nil {
		return nil, err
	}

	extra := bson.M{}
	now := time.Now()
	if target == domain.BookingCompleted {
		extra["completed_at"] = now
	}
	if target == domain.BookingRefunded {
		extra["payment_status"] = models.PaymentRefunded
	}

	if err := s.Repo.UpdateStatusCAS(ctx, id, booking.Status, target, extra); err != nil {
		return nil, s.translateCASError(ctx, id, err)
	}

	s.Logger.Warn("booking status overridden",
		zap.String("booking", booking.Code),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(target)),
		zap.String("admin", actor.ID),
	)

	booking.Status = target
	booking.UpdatedAt = now
	if target == domain.BookingCompleted {
		booking.CompletedAt = &now
	}
	if target == domain.BookingRefunded {
		booking.Payment = models.PaymentRefunded
	}
	return booking, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, actor domain.Actor, id string) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *DefaultBookingService) ListForCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]models.Booking, error) {
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, fmt.Errorf("%w: cannot list another customer's bookings", ErrForbidden)
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, actor domain.Actor, providerID string) ([]models.Booking, error) {
	if !actor.IsAdmin() && actor.ID != providerID {
		return nil, fmt.Errorf("%w: cannot list another provider's bookings", ErrForbidden)
	}
	return s.Repo.ListByProvider(ctx, providerID)
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return booking, nil
}

// authorize checks that the actor is a party to the booking. Admins see
// everything; customers and providers only their own side.
func (s *DefaultBookingService) authorize(actor domain.Actor, booking *models.Booking) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if booking.CustomerID == actor.ID {
			return nil
		}
	case domain.RoleProvider:
		if booking.ProviderID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: actor %s is not a party to booking %s", ErrForbidden, actor.ID, booking.Code)
}

// translateCASError distinguishes a lost race from a deleted booking.
func (s *DefaultBookingService) translateCASError(ctx context.Context, id string, err error) error {
	if !errors.Is(err, repository.ErrStaleStatus) {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if _, loadErr := s.Repo.GetByID(ctx, id); errors.Is(loadErr, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ErrStatusConflict
}

func (s *DefaultBookingService) publish(ctx context.Context, event string, booking *models.Booking, actor domain.Actor) {
	if s.Events == nil {
		return
	}
	ev := tasks.LifecycleEvent{
		Entity:     "booking",
		Event:      event,
		EntityID:   booking.ID,
		Code:       booking.Code,
		ActorID:    actor.ID,
		CustomerID: booking.CustomerID,
		PartyIDs:   []string{booking.ProviderID},
	}
	if event == tasks.EventBookingCompleted {
		ev.Amounts = &tasks.EarningAmounts{
			ProviderID: booking.ProviderID,
			Gross:      booking.Money.TotalAmount,
			Commission: booking.CommissionAmount,
			Net:        booking.ProviderEarnings,
		}
	}
	s.Events.Publish(ctx, ev)
}

func eventForStatus(next domain.BookingStatus) string {
	switch next {
	case domain.BookingConfirmed:
		return tasks.EventBookingConfirmed
	case domain.BookingProviderEnroute:
		return tasks.EventBookingEnroute
	case domain.BookingInProgress:
		return tasks.EventBookingStarted
	case domain.BookingCompleted:
		return tasks.EventBookingCompleted
	default:
		return tasks.EventBookingCancelled
	}
}

func taxOn(base, rate float64) float64 {
	if base < 0 || rate <= 0 {
		return 0
	}
	return math.Round(base*rate*100) / 100
}
