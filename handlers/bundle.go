package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	// Auth endpoints.
	SignUpHandler  gin.HandlerFunc
	SignInHandler  gin.HandlerFunc
	SignOutHandler gin.HandlerFunc

	// Profile and address endpoints.
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	AddAddressHandler    gin.HandlerFunc
	UpdateAddressHandler gin.HandlerFunc
	RemoveAddressHandler gin.HandlerFunc

	// Catalog endpoints.
	CreateServiceHandler   gin.HandlerFunc
	UpdateServiceHandler   gin.HandlerFunc
	GetServiceHandler      gin.HandlerFunc
	BrowseServicesHandler  gin.HandlerFunc
	ListOwnServicesHandler gin.HandlerFunc
	CreateProductHandler   gin.HandlerFunc
	UpdateProductHandler   gin.HandlerFunc
	GetProductHandler      gin.HandlerFunc
	BrowseProductsHandler  gin.HandlerFunc
	ListOwnProductsHandler gin.HandlerFunc

	// Cart endpoints.
	GetCartHandler        gin.HandlerFunc
	AddCartLineHandler    gin.HandlerFunc
	UpdateCartLineHandler gin.HandlerFunc
	RemoveCartLineHandler gin.HandlerFunc
	ClearCartHandler      gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler     gin.HandlerFunc
	TransitionBookingHandler gin.HandlerFunc
	GetBookingHandler        gin.HandlerFunc
	ListBookingsHandler      gin.HandlerFunc

	// Order endpoints.
	CheckoutHandler        gin.HandlerFunc
	TransitionOrderHandler gin.HandlerFunc
	GetOrderHandler        gin.HandlerFunc
	ListOrdersHandler      gin.HandlerFunc

	// Quote endpoints.
	RequestQuoteHandler gin.HandlerFunc
	RespondQuoteHandler gin.HandlerFunc
	DecideQuoteHandler  gin.HandlerFunc
	GetQuoteHandler     gin.HandlerFunc
	ListQuotesHandler   gin.HandlerFunc

	// Notification endpoints.
	ListNotificationsHandler gin.HandlerFunc
	MarkNotificationHandler  gin.HandlerFunc

	// Admin endpoints.
	AdminListUsersHandler       gin.HandlerFunc
	AdminOverrideBookingHandler gin.HandlerFunc
	ListEarningsHandler         gin.HandlerFunc
}
