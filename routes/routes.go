package routes

import (
	"net/http"
	"time"

	"sokoni/domain"
	"sokoni/handlers"
	"sokoni/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/signin", hb.SignInHandler)
		api.POST("/signout", middleware.JWTAuthMiddleware(), hb.SignOutHandler)
	}
}

// RegisterUserRoutes registers profile and address endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.POST("/me/addresses", hb.AddAddressHandler)
		api.PUT("/me/addresses/:addressID", hb.UpdateAddressHandler)
		api.DELETE("/me/addresses/:addressID", hb.RemoveAddressHandler)
	}
}

// RegisterCatalogRoutes registers public browsing plus the owner-side
// catalog management endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		// Public browsing.
		api.GET("/services", hb.BrowseServicesHandler)
		api.GET("/services/:id", hb.GetServiceHandler)
		api.GET("/products", hb.BrowseProductsHandler)
		api.GET("/products/:id", hb.GetProductHandler)

		// Provider-side management.
		providers := api.Group("/manage/services")
		providers.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(domain.RoleProvider, domain.RoleAdmin))
		providers.GET("", hb.ListOwnServicesHandler)
		providers.POST("", hb.CreateServiceHandler)
		providers.PUT("/:id", hb.UpdateServiceHandler)

		// Seller-side management.
		sellers := api.Group("/manage/products")
		sellers.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(domain.RoleSeller, domain.RoleAdmin))
		sellers.GET("", hb.ListOwnProductsHandler)
		sellers.POST("", hb.CreateProductHandler)
		sellers.PUT("/:id", hb.UpdateProductHandler)
	}
}

// RegisterCartRoutes registers the server-side cart endpoints.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(domain.RoleCustomer))
		api.GET("", hb.GetCartHandler)
		api.POST("/lines", hb.AddCartLineHandler)
		api.PUT("/lines/:productID", hb.UpdateCartLineHandler)
		api.DELETE("/lines/:productID", hb.RemoveCartLineHandler)
		api.DELETE("", hb.ClearCartHandler)
	}
}

// RegisterBookingRoutes registers the service-booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("/:id/transition", hb.TransitionBookingHandler)
	}
}

// RegisterOrderRoutes registers checkout and fulfillment endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/checkout", hb.CheckoutHandler)
		api.GET("", hb.ListOrdersHandler)
		api.GET("/:id", hb.GetOrderHandler)
		api.POST("/:id/transition", hb.TransitionOrderHandler)
	}
}

// RegisterQuoteRoutes registers the custom-price quote endpoints.
func RegisterQuoteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/quotes")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.RequestQuoteHandler)
		api.GET("", hb.ListQuotesHandler)
		api.GET("/:id", hb.GetQuoteHandler)
		api.POST("/:id/respond", hb.RespondQuoteHandler)
		api.POST("/:id/decide", hb.DecideQuoteHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListNotificationsHandler)
		api.PUT("/:id/read", hb.MarkNotificationHandler)
	}
}

// RegisterAdminRoutes registers support and back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(domain.RoleAdmin))
		api.GET("/users", hb.AdminListUsersHandler)
		api.PUT("/bookings/:id/status", hb.AdminOverrideBookingHandler)
	}

	// Earnings are admin-or-owner; the handler does the ownership check.
	earnings := r.Group("/api/earnings")
	{
		earnings.Use(middleware.JWTAuthMiddleware())
		earnings.GET("/:providerID", hb.ListEarningsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Sokoni"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterQuoteRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
