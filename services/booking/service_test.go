package booking

import (
	"context"
	"testing"
	"time"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/services/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	// casErr forces the next UpdateStatusCAS to fail with this error.
	casErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking models.Booking) error {
	r.bookings[booking.ID] = &booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatusCAS(ctx context.Context, id string, from, to domain.BookingStatus, extra bson.M) error {
	if r.casErr != nil {
		err := r.casErr
		r.casErr = nil
		return err
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return repository.ErrStaleStatus
	}
	b.Status = to
	return nil
}

func (r *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	services map[string]*models.Service
	products map[string]*models.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: make(map[string]*models.Service),
		products: make(map[string]*models.Product),
	}
}

func (c *fakeCatalog) CreateService(ctx context.Context, svc models.Service) error {
	c.services[svc.ID] = &svc
	return nil
}

func (c *fakeCatalog) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *svc
	return &copied, nil
}

func (c *fakeCatalog) UpdateService(ctx context.Context, svc models.Service) error {
	c.services[svc.ID] = &svc
	return nil
}

func (c *fakeCatalog) ListServices(ctx context.Context, providerID string, activeOnly bool) ([]models.Service, error) {
	return nil, nil
}

func (c *fakeCatalog) CreateProduct(ctx context.Context, p models.Product) error {
	c.products[p.ID] = &p
	return nil
}

func (c *fakeCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (c *fakeCatalog) UpdateProduct(ctx context.Context, p models.Product) error {
	c.products[p.ID] = &p
	return nil
}

func (c *fakeCatalog) ListProducts(ctx context.Context, sellerID string, activeOnly bool) ([]models.Product, error) {
	return nil, nil
}

type fakePublisher struct {
	events []tasks.LifecycleEvent
}

func (p *fakePublisher) Publish(ctx context.Context, ev tasks.LifecycleEvent) {
	p.events = append(p.events, ev)
}

func newTestBookingService() (*DefaultBookingService, *fakeBookingRepo, *fakeCatalog, *fakePublisher) {
	repo := newFakeBookingRepo()
	cat := newFakeCatalog()
	pub := &fakePublisher{}
	svc := &DefaultBookingService{
		Repo:           repo,
		Catalog:        cat,
		Events:         pub,
		Logger:         zap.NewNop(),
		CommissionRate: 0.15,
		TaxRate:        0,
	}
	return svc, repo, cat, pub
}

func seedService(cat *fakeCatalog, price float64) models.Service {
	svc := models.Service{
		ID:         "svc-1",
		ProviderID: "prov-1",
		Name:       "Deep cleaning",
		BasePrice:  price,
		Active:     true,
	}
	cat.services[svc.ID] = &svc
	return svc
}

var (
	customer = domain.Actor{ID: "cust-1", Role: domain.RoleCustomer}
	provider = domain.Actor{ID: "prov-1", Role: domain.RoleProvider}
	admin    = domain.Actor{ID: "adm-1", Role: domain.RoleAdmin}
)

func TestCreateBookingPricesFromCatalog(t *testing.T) {
	svc, _, cat, pub := newTestBookingService()
	seedService(cat, 500)

	b, err := svc.Create(context.Background(), customer, CreateBookingInput{
		ServiceID:      "svc-1",
		ScheduledAt:    time.Now().Add(24 * time.Hour),
		Address:        "12 Riverside Drive",
		AddonAmount:    300,
		DiscountAmount: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, models.PaymentUnpaid, b.Payment)
	assert.InDelta(t, 500.0, b.Money.ServiceAmount, 0.001, "price comes from the catalog, not the client")
	assert.InDelta(t, 800.0, b.Money.TotalAmount, 0.001)
	assert.InDelta(t, b.Money.TotalAmount, b.CommissionAmount+b.ProviderEarnings, 0.001)
	assert.Equal(t, "prov-1", b.ProviderID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, tasks.EventBookingCreated, pub.events[0].Event)
}

func TestCreateBookingRejections(t *testing.T) {
	svc, repo, cat, _ := newTestBookingService()
	seedService(cat, 500)

	valid := CreateBookingInput{
		ServiceID:   "svc-1",
		ScheduledAt: time.Now().Add(time.Hour),
		Address:     "12 Riverside Drive",
	}

	_, err := svc.Create(context.Background(), provider, valid)
	assert.ErrorIs(t, err, ErrForbidden, "providers do not book themselves")

	missing := valid
	missing.ServiceID = "svc-unknown"
	_, err = svc.Create(context.Background(), customer, missing)
	assert.ErrorIs(t, err, ErrValidation)

	past := valid
	past.ScheduledAt = time.Now().Add(-time.Hour)
	_, err = svc.Create(context.Background(), customer, past)
	assert.ErrorIs(t, err, ErrValidation)

	inactive := *cat.services["svc-1"]
	inactive.Active = false
	cat.services["svc-1"] = &inactive
	_, err = svc.Create(context.Background(), customer, valid)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, repo.bookings, "nothing persisted on rejection")
}

func seedBooking(repo *fakeBookingRepo, status domain.BookingStatus) *models.Booking {
	b := &models.Booking{
		ID:         "bkg-1",
		Code:       "BKG-TEST01",
		CustomerID: "cust-1",
		ProviderID: "prov-1",
		Status:     status,
		Payment:    models.PaymentPaid,
	}
	repo.bookings[b.ID] = b
	return b
}

func TestTransitionFullLifecycle(t *testing.T) {
	svc, repo, _, pub := newTestBookingService()
	seedBooking(repo, domain.BookingPending)
	ctx := context.Background()

	b, err := svc.Transition(ctx, provider, "bkg-1", domain.BookingActionAccept, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	b, err = svc.Transition(ctx, provider, "bkg-1", domain.BookingActionEnroute, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingProviderEnroute, b.Status)

	b, err = svc.Transition(ctx, provider, "bkg-1", domain.BookingActionStart, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingInProgress, b.Status)

	b, err = svc.Transition(ctx, provider, "bkg-1", domain.BookingActionComplete, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	require.NotNil(t, b.CompletedAt)

	require.Len(t, pub.events, 4)
	last := pub.events[len(pub.events)-1]
	assert.Equal(t, tasks.EventBookingCompleted, last.Event)
	require.NotNil(t, last.Amounts, "completion carries the earnings split")

	_, err = svc.Transition(ctx, admin, "bkg-1", domain.BookingActionCancel, "")
	assert.ErrorIs(t, err, domain.ErrTerminalState)
}

func TestTransitionChecksParties(t *testing.T) {
	svc, repo, _, _ := newTestBookingService()
	seedBooking(repo, domain.BookingPending)

	stranger := domain.Actor{ID: "cust-2", Role: domain.RoleCustomer}
	_, err := svc.Transition(context.Background(), stranger, "bkg-1", domain.BookingActionCancel, "")
	assert.ErrorIs(t, err, ErrForbidden)

	otherProvider := domain.Actor{ID: "prov-2", Role: domain.RoleProvider}
	_, err = svc.Transition(context.Background(), otherProvider, "bkg-1", domain.BookingActionAccept, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransitionLostRaceSurfacesConflict(t *testing.T) {
	svc, repo, _, _ := newTestBookingService()
	seedBooking(repo, domain.BookingPending)
	repo.casErr = repository.ErrStaleStatus

	_, err := svc.Transition(context.Background(), provider, "bkg-1", domain.BookingActionAccept, "")
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestTransitionMissingBooking(t *testing.T) {
	svc, _, _, _ := newTestBookingService()
	_, err := svc.Transition(context.Background(), provider, "nope", domain.BookingActionAccept, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOverrideStatusRefund(t *testing.T) {
	svc, repo, _, _ := newTestBookingService()
	seedBooking(repo, domain.BookingInProgress)
	ctx := context.Background()

	_, err := svc.OverrideStatus(ctx, provider, "bkg-1", domain.BookingRefunded)
	assert.ErrorIs(t, err, domain.ErrActionForbidden, "only support overrides")

	b, err := svc.OverrideStatus(ctx, admin, "bkg-1", domain.BookingRefundRequested)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRefundRequested, b.Status)

	b, err = svc.OverrideStatus(ctx, admin, "bkg-1", domain.BookingRefunded)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRefunded, b.Status)
	assert.Equal(t, models.PaymentRefunded, b.Payment)

	_, err = svc.OverrideStatus(ctx, admin, "bkg-1", domain.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrTerminalState, "refunded is the end of the line")
}

func TestListOwnershipChecks(t *testing.T) {
	svc, repo, _, _ := newTestBookingService()
	seedBooking(repo, domain.BookingPending)
	ctx := context.Background()

	bookings, err := svc.ListForCustomer(ctx, customer, "cust-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = svc.ListForCustomer(ctx, customer, "cust-2")
	assert.ErrorIs(t, err, ErrForbidden)

	bookings, err = svc.ListForProvider(ctx, admin, "prov-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
