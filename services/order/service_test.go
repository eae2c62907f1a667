package order

import (
	"context"
	"errors"
	"testing"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/services/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders    map[string]*models.Order
	restocked []models.OrderItem
	createErr error
	casErr    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) CreateWithStock(ctx context.Context, order models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[order.ID] = &order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) UpdateStatusCAS(ctx context.Context, id string, from, to domain.OrderStatus, extra bson.M) error {
	if r.casErr != nil {
		err := r.casErr
		r.casErr = nil
		return err
	}
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return repository.ErrStaleStatus
	}
	o.Status = to
	return nil
}

func (r *fakeOrderRepo) RestockItems(ctx context.Context, items []models.OrderItem) error {
	r.restocked = append(r.restocked, items...)
	return nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		for _, s := range o.SellerIDs() {
			if s == sellerID {
				out = append(out, *o)
				break
			}
		}
	}
	return out, nil
}

type fakeCatalog struct {
	products map[string]*models.Product
}

func (c *fakeCatalog) CreateService(ctx context.Context, svc models.Service) error { return nil }
func (c *fakeCatalog) GetService(ctx context.Context, id string) (*models.Service, error) {
	return nil, repository.ErrNotFound
}
func (c *fakeCatalog) UpdateService(ctx context.Context, svc models.Service) error { return nil }
func (c *fakeCatalog) ListServices(ctx context.Context, providerID string, activeOnly bool) ([]models.Service, error) {
	return nil, nil
}
func (c *fakeCatalog) CreateProduct(ctx context.Context, p models.Product) error { return nil }
func (c *fakeCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}
func (c *fakeCatalog) UpdateProduct(ctx context.Context, p models.Product) error { return nil }
func (c *fakeCatalog) ListProducts(ctx context.Context, sellerID string, activeOnly bool) ([]models.Product, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user models.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (r *fakeUserRepo) Update(ctx context.Context, user models.User) error { return nil }
func (r *fakeUserRepo) SetAddresses(ctx context.Context, userID string, addresses []models.Address) error {
	return nil
}
func (r *fakeUserRepo) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListAll(ctx context.Context) ([]models.User, error) { return nil, nil }

type fakeCart struct {
	carts   map[string]*models.Cart
	cleared []string
}

func (c *fakeCart) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if cart, ok := c.carts[userID]; ok {
		copied := *cart
		return &copied, nil
	}
	return &models.Cart{UserID: userID}, nil
}
func (c *fakeCart) AddLine(ctx context.Context, userID string, line models.CartLine) (*models.Cart, error) {
	return nil, nil
}
func (c *fakeCart) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	return nil, nil
}
func (c *fakeCart) RemoveLine(ctx context.Context, userID, productID string) (*models.Cart, error) {
	return nil, nil
}
func (c *fakeCart) Clear(ctx context.Context, userID string) error {
	c.cleared = append(c.cleared, userID)
	delete(c.carts, userID)
	return nil
}

type fakePayments struct {
	refs int
	err  error
}

func (p *fakePayments) CreateIntent(amount float64, currency, orderCode string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.refs++
	return "pi_test_ref", nil
}

type fakePublisher struct {
	events []tasks.LifecycleEvent
}

func (p *fakePublisher) Publish(ctx context.Context, ev tasks.LifecycleEvent) {
	p.events = append(p.events, ev)
}

var (
	customer = domain.Actor{ID: "cust-1", Role: domain.RoleCustomer}
	seller   = domain.Actor{ID: "sell-1", Role: domain.RoleSeller}
	admin    = domain.Actor{ID: "adm-1", Role: domain.RoleAdmin}
)

type orderFixture struct {
	svc      *DefaultOrderService
	repo     *fakeOrderRepo
	catalog  *fakeCatalog
	cart     *fakeCart
	payments *fakePayments
	events   *fakePublisher
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		repo:     newFakeOrderRepo(),
		catalog:  &fakeCatalog{products: make(map[string]*models.Product)},
		cart:     &fakeCart{carts: make(map[string]*models.Cart)},
		payments: &fakePayments{},
		events:   &fakePublisher{},
	}
	f.svc = &DefaultOrderService{
		Repo:         f.repo,
		Catalog:      f.catalog,
		Users:        &fakeUserRepo{users: map[string]*models.User{"cust-1": testCustomer()}},
		Cart:         f.cart,
		Payments:     f.payments,
		Events:       f.events,
		Logger:       zap.NewNop(),
		TaxRate:      0,
		ShippingCost: 60,
	}
	return f
}

func testCustomer() *models.User {
	return &models.User{
		ID:   "cust-1",
		Role: domain.RoleCustomer,
		Addresses: []models.Address{
			{ID: "addr-1", Line: "12 Riverside Drive", City: "Nairobi", Phone: "0700000000"},
		},
	}
}

func (f *orderFixture) seedProduct(id string, price float64, stock int) {
	f.catalog.products[id] = &models.Product{
		ID:       id,
		SellerID: "sell-1",
		Name:     "Product " + id,
		Price:    price,
		Stock:    stock,
		Active:   true,
	}
}

func (f *orderFixture) seedCart(lines ...models.CartLine) {
	f.cart.carts["cust-1"] = &models.Cart{UserID: "cust-1", Lines: lines}
}

func TestCheckoutBuildsOrderFromCart(t *testing.T) {
	f := newOrderFixture()
	f.seedProduct("p1", 500, 10)
	f.seedProduct("p2", 300, 5)
	f.seedCart(
		models.CartLine{ProductID: "p1", Quantity: 2},
		models.CartLine{ProductID: "p2", Quantity: 1},
	)

	o, err := f.svc.Checkout(context.Background(), customer, CheckoutInput{
		AddressID:     "addr-1",
		PaymentMethod: PaymentMethodCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderProcessing, o.Status, "COD skips pending_payment")
	require.Len(t, o.Items, 2)
	assert.InDelta(t, 1000.0, o.Items[0].TotalPrice, 0.001)
	assert.InDelta(t, 300.0, o.Items[1].TotalPrice, 0.001)
	assert.InDelta(t, 1300.0, o.Money.Subtotal, 0.001)
	assert.InDelta(t, 60.0, o.Money.ShippingCost, 0.001)
	assert.InDelta(t, 1360.0, o.Money.TotalAmount, 0.001)
	assert.Equal(t, []string{"cust-1"}, f.cart.cleared, "cart cleared only after the order is durable")

	require.Len(t, f.events.events, 1)
	assert.Equal(t, tasks.EventOrderCreated, f.events.events[0].Event)
	assert.Equal(t, []string{"sell-1"}, f.events.events[0].PartyIDs)
}

func TestCheckoutCardStartsPendingPayment(t *testing.T) {
	f := newOrderFixture()
	f.seedProduct("p1", 500, 10)
	f.seedCart(models.CartLine{ProductID: "p1", Quantity: 1})

	o, err := f.svc.Checkout(context.Background(), customer, CheckoutInput{
		AddressID:     "addr-1",
		PaymentMethod: PaymentMethodCard,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPendingPayment, o.Status)
	assert.Equal(t, "pi_test_ref", o.PaymentRef)
	assert.Equal(t, 1, f.payments.refs)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Checkout(context.Background(), customer, CheckoutInput{
		AddressID:     "addr-1",
		PaymentMethod: PaymentMethodCOD,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.repo.orders, "no writes on an empty cart")
	assert.Empty(t, f.cart.cleared)
}

func TestCheckoutValidatesBeforePersisting(t *testing.T) {
	f := newOrderFixture()
	f.seedProduct("p1", 500, 1)
	ctx := context.Background()

	input := CheckoutInput{AddressID: "addr-1", PaymentMethod: PaymentMethodCOD}

	_, err := f.svc.Checkout(ctx, seller, input)
	assert.ErrorIs(t, err, ErrForbidden, "only customers check out")

	f.seedCart(models.CartLine{ProductID: "p1", Quantity: 3})
	_, err = f.svc.Checkout(ctx, customer, input)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	f.seedCart(models.CartLine{ProductID: "ghost", Quantity: 1})
	_, err = f.svc.Checkout(ctx, customer, input)
	assert.ErrorIs(t, err, ErrValidation)

	inactive := *f.catalog.products["p1"]
	inactive.Active = false
	f.catalog.products["p1"] = &inactive
	f.seedCart(models.CartLine{ProductID: "p1", Quantity: 1})
	_, err = f.svc.Checkout(ctx, customer, input)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Checkout(ctx, customer, CheckoutInput{AddressID: "addr-x", PaymentMethod: PaymentMethodCOD})
	assert.ErrorIs(t, err, ErrValidation, "address must be on the account")

	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.cart.cleared, "cart survives every failed checkout")
	assert.Empty(t, f.events.events)
}

func TestCheckoutKeepsCartWhenPersistenceFails(t *testing.T) {
	f := newOrderFixture()
	f.seedProduct("p1", 500, 10)
	f.seedCart(models.CartLine{ProductID: "p1", Quantity: 1})
	f.repo.createErr = errors.New("mongo down")

	_, err := f.svc.Checkout(context.Background(), customer, CheckoutInput{
		AddressID:     "addr-1",
		PaymentMethod: PaymentMethodCOD,
	})
	require.Error(t, err)
	assert.Empty(t, f.cart.cleared)
	assert.NotEmpty(t, f.cart.carts["cust-1"].Lines)
}

func seedOrder(f *orderFixture, status domain.OrderStatus, method string) *models.Order {
	o := &models.Order{
		ID:            "ord-1",
		Code:          "ORD-TEST01",
		CustomerID:    "cust-1",
		Status:        status,
		Payment:       models.PaymentUnpaid,
		PaymentMethod: method,
		Items: []models.OrderItem{
			{ProductID: "p1", SellerID: "sell-1", Quantity: 2},
		},
	}
	f.repo.orders[o.ID] = o
	return o
}

func TestTransitionFulfillmentPath(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, domain.OrderProcessing, PaymentMethodCOD)
	ctx := context.Background()

	o, err := f.svc.Transition(ctx, seller, "ord-1", TransitionInput{Target: domain.OrderPacked})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPacked, o.Status)

	o, err = f.svc.Transition(ctx, seller, "ord-1", TransitionInput{
		Target:          domain.OrderShipped,
		TrackingCarrier: "G4S",
		TrackingNumber:  "TRK123",
	})
	require.NoError(t, err)
	require.NotNil(t, o.Tracking)
	assert.Equal(t, "G4S", o.Tracking.Carrier)

	o, err = f.svc.Transition(ctx, seller, "ord-1", TransitionInput{Target: domain.OrderOutForDelivery})
	require.NoError(t, err)

	o, err = f.svc.Transition(ctx, seller, "ord-1", TransitionInput{Target: domain.OrderDelivered})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, o.Status)
	require.NotNil(t, o.DeliveredAt)
	assert.Equal(t, models.PaymentPaid, o.Payment, "cash on delivery settles at the door")

	_, err = f.svc.Transition(ctx, seller, "ord-1", TransitionInput{Target: domain.OrderReturned})
	assert.ErrorIs(t, err, domain.ErrTerminalState)
}

func TestTransitionCancelRestocks(t *testing.T) {
	f := newOrderFixture()
	o := seedOrder(f, domain.OrderProcessing, PaymentMethodCOD)

	got, err := f.svc.Transition(context.Background(), customer, "ord-1", TransitionInput{
		Target: domain.OrderCancelled,
		Reason: "changed my mind",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)
	assert.Equal(t, o.Items, f.repo.restocked, "cancelled stock goes back on the shelf")

	require.Len(t, f.events.events, 1)
	assert.Equal(t, tasks.EventOrderCancelled, f.events.events[0].Event)
}

func TestTransitionAuthorization(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, domain.OrderProcessing, PaymentMethodCOD)
	ctx := context.Background()

	otherSeller := domain.Actor{ID: "sell-2", Role: domain.RoleSeller}
	_, err := f.svc.Transition(ctx, otherSeller, "ord-1", TransitionInput{Target: domain.OrderPacked})
	assert.ErrorIs(t, err, ErrForbidden, "no items of theirs in the order")

	_, err = f.svc.Transition(ctx, customer, "ord-1", TransitionInput{Target: domain.OrderPacked})
	assert.ErrorIs(t, err, domain.ErrActionForbidden, "customers do not run fulfillment")

	_, err = f.svc.Transition(ctx, admin, "ord-1", TransitionInput{Target: domain.OrderPacked})
	assert.NoError(t, err)
}

func TestTransitionLostRaceSurfacesConflict(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, domain.OrderProcessing, PaymentMethodCOD)
	f.repo.casErr = repository.ErrStaleStatus

	_, err := f.svc.Transition(context.Background(), seller, "ord-1", TransitionInput{Target: domain.OrderPacked})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestListOwnership(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, domain.OrderProcessing, PaymentMethodCOD)
	ctx := context.Background()

	orders, err := f.svc.ListForCustomer(ctx, customer, "cust-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = f.svc.ListForSeller(ctx, seller, "sell-2")
	assert.ErrorIs(t, err, ErrForbidden)

	orders, err = f.svc.ListForSeller(ctx, admin, "sell-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
