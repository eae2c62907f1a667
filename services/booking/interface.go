package booking

import (
	"context"
	"time"

	bookingRepo "sokoni/database/repository/booking"
	catalogRepo "sokoni/database/repository/catalog"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/services/tasks"

	"go.uber.org/zap"
)

// CreateBookingInput is what a customer submits to book a service. Prices
// are never taken from the client; the service amount is read from the
// catalog at submission time.
type CreateBookingInput struct {
	ServiceID      string    `json:"service_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Address        string    `json:"address"`
	Lat            *float64  `json:"lat,omitempty"`
	Lng            *float64  `json:"lng,omitempty"`
	AddonAmount    float64   `json:"addon_amount"`
	DiscountAmount float64   `json:"discount_amount"`
}

// BookingService orchestrates booking creation and lifecycle transitions.
// Every operation runs as an explicit actor; ownership and role checks
// happen here, at the service boundary, not in the pages that call it.
type BookingService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*models.Booking, error)
	Transition(ctx context.Context, actor domain.Actor, id string, action domain.BookingAction, reason string) (*models.Booking, error)
	// OverrideStatus is the direct administrative path into the statuses the
	// regular table never produces (provider_enroute, refund states).
	OverrideStatus(ctx context.Context, actor domain.Actor, id string, target domain.BookingStatus) (*models.Booking, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*models.Booking, error)
	ListForCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]models.Booking, error)
	ListForProvider(ctx context.Context, actor domain.Actor, providerID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo           bookingRepo.BookingRepository
	Catalog        catalogRepo.CatalogRepository
	Events         tasks.Publisher
	Logger         *zap.Logger
	CommissionRate float64
	TaxRate        float64
}
