package bookingRepo

import (
	"context"

	"sokoni/database"
	"sokoni/domain"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the typed persistence boundary for bookings. Status
// changes go through UpdateStatusCAS only; there is deliberately no
// operation that rewrites monetary fields after creation.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatusCAS moves the booking from the expected current status to
	// the new one, applying extra field updates in the same write. It
	// returns repository.ErrStaleStatus when no document matched, which
	// means the status changed concurrently or the booking is gone.
	UpdateStatusCAS(ctx context.Context, id string, from, to domain.BookingStatus, extra bson.M) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.DB().Collection("bookings")}
}
