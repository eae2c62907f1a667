package catalog

import (
	"context"
	"testing"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	services map[string]*models.Service
	products map[string]*models.Product
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		services: make(map[string]*models.Service),
		products: make(map[string]*models.Product),
	}
}

func (r *fakeCatalogRepo) CreateService(ctx context.Context, svc models.Service) error {
	r.services[svc.ID] = &svc
	return nil
}

func (r *fakeCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *svc
	return &copied, nil
}

func (r *fakeCatalogRepo) UpdateService(ctx context.Context, svc models.Service) error {
	r.services[svc.ID] = &svc
	return nil
}

func (r *fakeCatalogRepo) ListServices(ctx context.Context, providerID string, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		if providerID != "" && svc.ProviderID != providerID {
			continue
		}
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func (r *fakeCatalogRepo) CreateProduct(ctx context.Context, p models.Product) error {
	r.products[p.ID] = &p
	return nil
}

func (r *fakeCatalogRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeCatalogRepo) UpdateProduct(ctx context.Context, p models.Product) error {
	r.products[p.ID] = &p
	return nil
}

func (r *fakeCatalogRepo) ListProducts(ctx context.Context, sellerID string, activeOnly bool) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		if sellerID != "" && p.SellerID != sellerID {
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

var (
	provider = domain.Actor{ID: "prov-1", Role: domain.RoleProvider}
	seller   = domain.Actor{ID: "sell-1", Role: domain.RoleSeller}
	customer = domain.Actor{ID: "cust-1", Role: domain.RoleCustomer}
	admin    = domain.Actor{ID: "adm-1", Role: domain.RoleAdmin}
)

func newTestCatalogService() (*DefaultCatalogService, *fakeCatalogRepo) {
	repo := newFakeCatalogRepo()
	return &DefaultCatalogService{Repo: repo, Logger: zap.NewNop()}, repo
}

func TestServiceLifecycle(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, provider, ServiceInput{
		Name:            "Deep Cleaning",
		Category:        "cleaning",
		BasePrice:       500,
		DurationMinutes: 120,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "prov-1", created.ProviderID)
	assert.True(t, created.Active, "new listings go live unless told otherwise")

	updated, err := svc.UpdateService(ctx, provider, created.ID, ServiceInput{
		Name:      "Deep Cleaning",
		Category:  "cleaning",
		BasePrice: 650,
	})
	require.NoError(t, err)
	assert.Equal(t, 650.0, updated.BasePrice)

	got, err := svc.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 650.0, got.BasePrice)

	_, err = svc.GetService(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceAuthorization(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	_, err := svc.CreateService(ctx, customer, ServiceInput{Name: "x", BasePrice: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	created, err := svc.CreateService(ctx, provider, ServiceInput{Name: "Plumbing Call-out", BasePrice: 300})
	require.NoError(t, err)

	rival := domain.Actor{ID: "prov-2", Role: domain.RoleProvider}
	_, err = svc.UpdateService(ctx, rival, created.ID, ServiceInput{Name: "Hijacked", BasePrice: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins can edit anyone's listing.
	_, err = svc.UpdateService(ctx, admin, created.ID, ServiceInput{Name: "Plumbing Call-out", BasePrice: 350})
	assert.NoError(t, err)
}

func TestServiceValidation(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	_, err := svc.CreateService(ctx, provider, ServiceInput{Name: "  ", BasePrice: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateService(ctx, provider, ServiceInput{Name: "Free Lunch", BasePrice: 0})
	assert.ErrorIs(t, err, ErrValidation, "price must be positive")

	_, err = svc.CreateService(ctx, provider, ServiceInput{Name: "Time Travel", BasePrice: 10, DurationMinutes: -5})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBrowseHidesInactiveListings(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	live, err := svc.CreateService(ctx, provider, ServiceInput{Name: "Live", BasePrice: 100})
	require.NoError(t, err)

	inactive := false
	_, err = svc.CreateService(ctx, provider, ServiceInput{Name: "Draft", BasePrice: 100, Active: &inactive})
	require.NoError(t, err)

	public, err := svc.BrowseServices(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, live.ID, public[0].ID)

	own, err := svc.ListOwnServices(ctx, provider)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, err = svc.ListOwnServices(ctx, customer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProductLifecycle(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	stock := 20
	created, err := svc.CreateProduct(ctx, seller, ProductInput{
		Name:     "Bar Soap",
		Category: "household",
		Price:    3.5,
		Stock:    &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "sell-1", created.SellerID)
	assert.Equal(t, 20, created.Stock)

	restock := 35
	updated, err := svc.UpdateProduct(ctx, seller, created.ID, ProductInput{
		Name:  "Bar Soap",
		Price: 4.0,
		Stock: &restock,
	})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Stock)
	assert.Equal(t, 4.0, updated.Price)

	_, err = svc.CreateProduct(ctx, provider, ProductInput{Name: "x", Price: 1})
	assert.ErrorIs(t, err, ErrForbidden, "providers sell services, not products")

	negative := -1
	_, err = svc.CreateProduct(ctx, seller, ProductInput{Name: "x", Price: 1, Stock: &negative})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductBrowseAndOwnership(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, seller, ProductInput{Name: "Candles", Price: 8})
	require.NoError(t, err)

	off := false
	_, err = svc.UpdateProduct(ctx, seller, created.ID, ProductInput{Name: "Candles", Price: 8, Active: &off})
	require.NoError(t, err)

	public, err := svc.BrowseProducts(ctx, "sell-1")
	require.NoError(t, err)
	assert.Empty(t, public, "deactivated products disappear from the public view")

	own, err := svc.ListOwnProducts(ctx, seller)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	rival := domain.Actor{ID: "sell-2", Role: domain.RoleSeller}
	_, err = svc.UpdateProduct(ctx, rival, created.ID, ProductInput{Name: "Candles", Price: 1})
	assert.ErrorIs(t, err, ErrForbidden)
}
