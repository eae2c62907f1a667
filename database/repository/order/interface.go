package orderRepo

import (
	"context"

	"sokoni/database"
	"sokoni/domain"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderRepository is the typed persistence boundary for orders. Items are
// embedded in the order document, so an order and its lines are always
// written atomically; CreateWithStock additionally reserves product stock in
// the same MongoDB transaction.
type OrderRepository interface {
	CreateWithStock(ctx context.Context, order models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// UpdateStatusCAS moves the order from the expected current status to the
	// new one; a miss returns repository.ErrStaleStatus.
	UpdateStatusCAS(ctx context.Context, id string, from, to domain.OrderStatus, extra bson.M) error
	// RestockItems returns reserved stock to the catalog after a
	// cancellation.
	RestockItems(ctx context.Context, items []models.OrderItem) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error)
}

type mongoOrderRepo struct {
	orders   *mongo.Collection
	products *mongo.Collection
}

// NewMongoOrderRepo returns an OrderRepository backed by MongoDB.
func NewMongoOrderRepo() OrderRepository {
	db := database.DB()
	return &mongoOrderRepo{
		orders:   db.Collection("orders"),
		products: db.Collection("products"),
	}
}
