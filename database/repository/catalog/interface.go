package catalogRepo

import (
	"context"

	"sokoni/database"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository is the typed persistence boundary for services and
// products. Bookings and orders read prices through it at creation time
// only.
type CatalogRepository interface {
	CreateService(ctx context.Context, svc models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	UpdateService(ctx context.Context, svc models.Service) error
	ListServices(ctx context.Context, providerID string, activeOnly bool) ([]models.Service, error)

	CreateProduct(ctx context.Context, p models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) error
	ListProducts(ctx context.Context, sellerID string, activeOnly bool) ([]models.Product, error)
}

type mongoCatalogRepo struct {
	services *mongo.Collection
	products *mongo.Collection
}

// NewMongoCatalogRepo returns a CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &mongoCatalogRepo{
		services: db.Collection("services"),
		products: db.Collection("products"),
	}
}
