package catalog

import (
	"context"

	catalogRepo "sokoni/database/repository/catalog"
	"sokoni/domain"
	"sokoni/models"

	"go.uber.org/zap"
)

// ServiceInput carries the editable fields of a catalog service.
type ServiceInput struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Description     string  `json:"description,omitempty"`
	BasePrice       float64 `json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
	Active          *bool   `json:"active,omitempty"`
}

// ProductInput carries the editable fields of a catalog product.
type ProductInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	ImageURL string  `json:"image_url,omitempty"`
	Price    float64 `json:"price"`
	Stock    *int    `json:"stock,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// CatalogService manages the two catalog sides: provider services and seller
// products. Public browsing sees active entries only; owners and admins see
// everything of theirs.
type CatalogService interface {
	CreateService(ctx context.Context, actor domain.Actor, input ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, actor domain.Actor, id string, input ServiceInput) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	BrowseServices(ctx context.Context, providerID string) ([]models.Service, error)
	ListOwnServices(ctx context.Context, actor domain.Actor) ([]models.Service, error)

	CreateProduct(ctx context.Context, actor domain.Actor, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, id string, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	BrowseProducts(ctx context.Context, sellerID string) ([]models.Product, error)
	ListOwnProducts(ctx context.Context, actor domain.Actor) ([]models.Product, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Logger *zap.Logger
}
