package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateService lists a new service under the acting provider.
func (s *DefaultCatalogService) CreateService(ctx context.Context, actor domain.Actor, input ServiceInput) (*models.Service, error) {
	if actor.Role != domain.RoleProvider {
		return nil, fmt.Errorf("%w: only providers list services", ErrForbidden)
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	svc := models.Service{
		ID:              uuid.New().String(),
		ProviderID:      actor.ID,
		Name:            strings.TrimSpace(input.Name),
		Category:        strings.TrimSpace(input.Category),
		Description:     strings.TrimSpace(input.Description),
		BasePrice:       input.BasePrice,
		DurationMinutes: input.DurationMinutes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}
	if err := s.Repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to persist service: %w", err)
	}
	s.Logger.Info("service listed",
		zap.String("service", svc.ID),
		zap.String("provider", svc.ProviderID),
		zap.Float64("price", svc.BasePrice),
	)
	return &svc, nil
}

// UpdateService edits a service owned by the actor. Price edits only affect
// bookings created after the change.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, actor domain.Actor, id string, input ServiceInput) (*models.Service, error) {
	svc, err := s.loadService(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && svc.ProviderID != actor.ID {
		return nil, fmt.Errorf("%w: service %s belongs to another provider", ErrForbidden, id)
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	svc.Name = strings.TrimSpace(input.Name)
	svc.Category = strings.TrimSpace(input.Category)
	svc.Description = strings.TrimSpace(input.Description)
	svc.BasePrice = input.BasePrice
	svc.DurationMinutes = input.DurationMinutes
	if input.Active != nil {
		svc.Active = *input.Active
	}
	svc.UpdatedAt = time.Now()
	if err := s.Repo.UpdateService(ctx, *svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.loadService(ctx, id)
}

// BrowseServices is the public view: active services, optionally filtered by
// provider.
func (s *DefaultCatalogService) BrowseServices(ctx context.Context, providerID string) ([]models.Service, error) {
	return s.Repo.ListServices(ctx, providerID, true)
}

// ListOwnServices shows the acting provider everything of theirs, inactive
// entries included.
func (s *DefaultCatalogService) ListOwnServices(ctx context.Context, actor domain.Actor) ([]models.Service, error) {
	if actor.Role != domain.RoleProvider && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: provider only", ErrForbidden)
	}
	return s.Repo.ListServices(ctx, actor.ID, false)
}

// CreateProduct lists a new product under the acting seller.
func (s *DefaultCatalogService) CreateProduct(ctx context.Context, actor domain.Actor, input ProductInput) (*models.Product, error) {
	if actor.Role != domain.RoleSeller {
		return nil, fmt.Errorf("%w: only sellers list products", ErrForbidden)
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	p := models.Product{
		ID:        uuid.New().String(),
		SellerID:  actor.ID,
		Name:      strings.TrimSpace(input.Name),
		Category:  strings.TrimSpace(input.Category),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		Price:     input.Price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Active != nil {
		p.Active = *input.Active
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	s.Logger.Info("product listed",
		zap.String("product", p.ID),
		zap.String("seller", p.SellerID),
		zap.Float64("price", p.Price),
		zap.Int("stock", p.Stock),
	)
	return &p, nil
}

// UpdateProduct edits a product owned by the actor. Existing order items keep
// their checkout-time snapshot regardless.
func (s *DefaultCatalogService) UpdateProduct(ctx context.Context, actor domain.Actor, id string, input ProductInput) (*models.Product, error) {
	p, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && p.SellerID != actor.ID {
		return nil, fmt.Errorf("%w: product %s belongs to another seller", ErrForbidden, id)
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Category = strings.TrimSpace(input.Category)
	p.ImageURL = strings.TrimSpace(input.ImageURL)
	p.Price = input.Price
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Active != nil {
		p.Active = *input.Active
	}
	p.UpdatedAt = time.Now()
	if err := s.Repo.UpdateProduct(ctx, *p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

func (s *DefaultCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.loadProduct(ctx, id)
}

// BrowseProducts is the public view: active products, optionally filtered by
// seller.
func (s *DefaultCatalogService) BrowseProducts(ctx context.Context, sellerID string) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, sellerID, true)
}

// ListOwnProducts shows the acting seller everything of theirs.
func (s *DefaultCatalogService) ListOwnProducts(ctx context.Context, actor domain.Actor) ([]models.Product, error) {
	if actor.Role != domain.RoleSeller && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: seller only", ErrForbidden)
	}
	return s.Repo.ListProducts(ctx, actor.ID, false)
}

func (s *DefaultCatalogService) loadService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetService(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: service %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) loadProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return p, nil
}

func validateServiceInput(input ServiceInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.BasePrice <= 0 {
		return fmt.Errorf("%w: base price must be positive", ErrValidation)
	}
	if input.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrValidation)
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if input.Stock != nil && *input.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}
